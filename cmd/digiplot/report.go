package main

import (
	"fmt"
	"os"
	"path/filepath"

	httpapi "digiplot/internal/http"
	"digiplot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the landlord's financial report as an XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			periodFlag, _ := cmd.Flags().GetString("period")
			out, _ := cmd.Flags().GetString("out")
			email, _ := cmd.Flags().GetString("landlord-email")

			period, err := service.ParsePeriod(periodFlag)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			l, err := a.store.Landlords.GetLandlordByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("failed to find landlord %s: %w", email, err)
			}
			summary, err := a.landlords.FinancialSummary(ctx, l.ID, period)
			if err != nil {
				return err
			}
			collection, err := a.landlords.RentCollection(ctx, l.ID, period)
			if err != nil {
				return err
			}
			data, err := httpapi.GenerateFinancialReport(summary, collection)
			if err != nil {
				return err
			}
			if out == "" {
				out = httpapi.FinancialReportFilename(period, summary.From)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			abs, _ := filepath.Abs(out)
			a.logger.Info("Financial report written",
				zap.String("path", abs),
				zap.String("period", string(period)),
				zap.Int64("total_revenue", summary.TotalRevenue),
			)
			return nil
		},
	}
	cmd.Flags().String("period", "month", "month, quarter or year")
	cmd.Flags().String("out", "", "output file (default financial-report-<period>-<from>.xlsx)")
	cmd.Flags().String("landlord-email", service.DemoLandlordEmail, "landlord to report on")
	return cmd
}
