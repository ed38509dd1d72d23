// Package stats holds the aggregation helpers shared by the landlord and
// tenant services and by the report export.
package stats

import "time"

// Rate returns n/d, or 0 when d is not positive.
func Rate(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return n / d
}

// SameMonth reports whether t falls in the calendar month and year of ref,
// evaluated in ref's location.
func SameMonth(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// InMonth returns the items whose date falls in ref's month, in input order.
func InMonth[T any](items []T, date func(T) time.Time, ref time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if SameMonth(date(it), ref) {
			out = append(out, it)
		}
	}
	return out
}

// CountByStatus tallies items per status. Absent statuses read as 0.
func CountByStatus[T any, S comparable](items []T, status func(T) S) map[S]int {
	counts := make(map[S]int)
	for _, it := range items {
		counts[status(it)]++
	}
	return counts
}

// Sum adds up amount over items.
func Sum[T any](items []T, amount func(T) int64) int64 {
	var total int64
	for _, it := range items {
		total += amount(it)
	}
	return total
}

// MonthStart truncates t to midnight on the first of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthWindow returns the first day of n consecutive months ending with
// ref's month, oldest first.
func MonthWindow(ref time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := MonthStart(ref)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, i-(n-1), 0)
	}
	return out
}

// FirstOfNextMonth returns midnight on the first day of the month after ref.
func FirstOfNextMonth(ref time.Time) time.Time {
	return MonthStart(ref).AddDate(0, 1, 0)
}

// TrendPoint is one monthly bucket of a revenue series.
type TrendPoint struct {
	Month   string    `json:"month"` // "Jan".."Dec"
	Start   time.Time `json:"start"`
	Revenue int64     `json:"revenue"`
}

// RevenueTrend buckets amounts by month over the n months ending with ref's
// month. The result always has n points, oldest first.
func RevenueTrend[T any](items []T, date func(T) time.Time, amount func(T) int64, ref time.Time, n int) []TrendPoint {
	months := MonthWindow(ref, n)
	out := make([]TrendPoint, len(months))
	for i, m := range months {
		out[i] = TrendPoint{
			Month:   m.Format("Jan"),
			Start:   m,
			Revenue: Sum(InMonth(items, date, m), amount),
		}
	}
	return out
}
