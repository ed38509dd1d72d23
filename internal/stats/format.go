package stats

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var kesPrinter = message.NewPrinter(language.English)

// FormatKES renders an amount as whole shillings, e.g. 1234.5 -> "KES 1,235".
// Halves round away from zero.
func FormatKES(amount float64) string {
	return kesPrinter.Sprintf("KES %d", int64(math.Round(amount)))
}

// FormatDate renders t like "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
