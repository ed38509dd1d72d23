package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/service"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	summarySheet = "Summary"
	monthlySheet = "Monthly"
)

// FinancialReportMonthlyHeader is the header row of the Monthly sheet.
var FinancialReportMonthlyHeader = []string{
	"Month",
	"Revenue (KES)",
	"Expenses (KES)",
	"Net (KES)",
	"Expected (KES)",
	"Collected (KES)",
	"Collection Rate",
}

// FinancialReportFilename looks like financial-report-quarter-20240101.xlsx.
func FinancialReportFilename(period service.Period, from time.Time) string {
	return fmt.Sprintf("financial-report-%s-%s.xlsx", period, from.Format("20060102"))
}

// GenerateFinancialReport writes a two-sheet workbook: totals on Summary,
// one row per month on Monthly. Amounts are whole shillings.
func GenerateFinancialReport(fs *service.FinancialSummary, rc *service.RentCollectionReport) ([]byte, error) {
	if fs == nil || rc == nil {
		return nil, fmt.Errorf("financial summary and rent collection are required")
	}
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close is called explicitly on every path.

	summaryIdx, err := f.NewSheet(summarySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(monthlySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(summaryIdx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}

	// Summary: label / value pairs.
	summary := [][]any{
		{"Period", string(fs.Period)},
		{"From", fs.From.Format("2006-01-02")},
		{"To", fs.To.AddDate(0, 0, -1).Format("2006-01-02")},
		{"Total Revenue (KES)", fs.TotalRevenue},
		{"Pending Revenue (KES)", fs.PendingRevenue},
		{"Expected Rent (KES)", fs.ExpectedRent},
		{"Maintenance Expenses (KES)", fs.MaintenanceExpenses},
		{"Net Income (KES)", fs.NetIncome},
		{"Collection Rate", fs.CollectionRate},
		{"Outstanding Rent (KES)", rc.Outstanding},
		{"Paid Payments", rc.StatusCounts[domain.PaymentPaid]},
		{"Pending Payments", rc.StatusCounts[domain.PaymentPending]},
		{"Failed Payments", rc.StatusCounts[domain.PaymentFailed]},
	}
	for i, row := range summary {
		r := i + 1
		for c, v := range row {
			if err := setCellValue(f, summarySheet, c+1, r, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set summary cell at row %d: %w", r, err)
			}
		}
		if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set label style: %w", err)
		}
		if row[0] == "Collection Rate" {
			if err := f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), percentStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set percent style: %w", err)
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 30); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 18); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	// Monthly: header row then one row per month.
	for col, header := range FinancialReportMonthlyHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(monthlySheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(monthlySheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(monthlySheet, name, name, 16); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	collected := make(map[time.Time]service.MonthlyCollection, len(rc.Monthly))
	for _, m := range rc.Monthly {
		collected[m.Start] = m
	}
	for i, m := range fs.Monthly {
		row := i + 2
		c := collected[m.Start]
		values := []any{
			m.Start.Format("Jan 2006"),
			m.Revenue,
			m.Expenses,
			m.Net,
			c.Expected,
			c.Collected,
			c.CollectionRate,
		}
		for col, v := range values {
			if err := setCellValue(f, monthlySheet, col+1, row, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		rateCell := fmt.Sprintf("G%d", row)
		if err := f.SetCellStyle(monthlySheet, rateCell, rateCell, percentStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set percent style: %w", err)
		}
	}

	if err := f.SetPanes(monthlySheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
