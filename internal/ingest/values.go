package ingest

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// importDateLayouts are tried first, in order, when converting date columns.
var importDateLayouts = []string{
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// checkDateLayouts are accepted by the date type check and as a fallback
// during conversion. Day-first layouts come before month-first ones.
var checkDateLayouts = []string{
	"2006-01-02", "02-01-2006", "01-02-2006", "02/01/2006", "01/02/2006",
	"2006/01/02", "02.01.2006", "01.02.2006", "02 Jan 2006", "02 January 2006",
	"2006-01-02 15:04:05", "02/01/2006 15:04:05", "01-02-2006 03:04 PM",
	"2/1/2006", "2/1/06", time.RFC3339,
}

// ParseDate parses a cell with the import layouts, then the check layouts.
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layouts := range [][]string{importDateLayouts, checkDateLayouts} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a numeric cell.
func ParseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	return f, err == nil
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders f as 1,234,567.89.
func formatAmount(f float64) string {
	return amountPrinter.Sprintf("%.2f", f)
}
