package domain

import (
	"fmt"
	"strings"
	"time"
)

// PeriodCode is the granularity of a reporting period.
type PeriodCode string

const (
	PeriodMonthly   PeriodCode = "MONTHLY"
	PeriodQuarterly PeriodCode = "QUARTERLY"
	PeriodYearly    PeriodCode = "YEARLY"
)

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a day within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Period identifies a reporting period within a year.
type Period struct {
	Year  int
	Code  PeriodCode
	Value int
}

// NewPeriod parses and validates a reporting period. The code is case-insensitive.
func NewPeriod(year int, code string, value int) (Period, error) {
	p := Period{Year: year, Code: PeriodCode(strings.ToUpper(strings.TrimSpace(code))), Value: value}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("invalid report year %d", year)
	}
	switch p.Code {
	case PeriodMonthly:
		if value < 1 || value > 12 {
			return Period{}, fmt.Errorf("invalid month %d for MONTHLY period", value)
		}
	case PeriodQuarterly:
		if value < 1 || value > 4 {
			return Period{}, fmt.Errorf("invalid quarter %d for QUARTERLY period", value)
		}
	case PeriodYearly:
		if value != 1 {
			return Period{}, fmt.Errorf("YEARLY period only accepts value 1, got %d", value)
		}
	default:
		return Period{}, fmt.Errorf("unsupported period code %q", code)
	}
	return p, nil
}

func (p Period) months() (first, last time.Month) {
	switch p.Code {
	case PeriodMonthly:
		return time.Month(p.Value), time.Month(p.Value)
	case PeriodQuarterly:
		first = time.Month((p.Value-1)*3 + 1)
		return first, first + 2
	default:
		return time.January, time.December
	}
}

// Current is the range covered by the period itself.
func (p Period) Current() DateRange {
	first, last := p.months()
	start := time.Date(p.Year, first, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the following month is the last day of `last`
	end := time.Date(p.Year, last+1, 0, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: end}
}

// Accumulated is the year-to-date range ending with the period.
func (p Period) Accumulated() DateRange {
	cur := p.Current()
	return DateRange{Start: time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC), End: cur.End}
}

// Suffix renders the period as used in artifact names, e.g. "2024QUARTERLY2".
func (p Period) Suffix() string {
	return fmt.Sprintf("%d%s%d", p.Year, p.Code, p.Value)
}
