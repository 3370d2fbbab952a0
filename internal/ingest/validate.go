package ingest

import (
	"fmt"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// ColumnError names a column that failed one check.
type ColumnError struct {
	Column string `json:"column"`
	Error  string `json:"error"`
}

// ErrorDetails groups column errors by check.
type ErrorDetails struct {
	TypeCheck    []ColumnError `json:"type_check"`
	MissingCheck []ColumnError `json:"missing_check"`
	UnknownCheck []ColumnError `json:"unknown_check"`
	DupCheck     []ColumnError `json:"dup_check"`
}

// ColumnSummary describes one checked column.
type ColumnSummary struct {
	Column            string `json:"Column"`
	MissingCount      int    `json:"Missing Count"`
	MissingPercentage string `json:"Missing Percentage"`
	UnknownCount      int    `json:"Unknown Count"`
	UnknownPercentage string `json:"Unknown Percentage"`
	Type              string `json:"Type"`
	MinValue          string `json:"Min value"`
	MaxValue          string `json:"Max value"`
	AverageValue      string `json:"Average value"`
	Check             string `json:"Check"`
}

// ValidationReport is the outcome of the data checks.
type ValidationReport struct {
	Summary []ColumnSummary `json:"dataframe_summary"`
	Errors  ErrorDetails    `json:"error_details"`
}

const notAvailable = "N/A"

// Analyze runs the type, missing, unknown and duplicate checks on every INFO
// column of the settings.
func Analyze(t *MappedTable, settings []ColumnSetting, templateName string) *ValidationReport {
	report := &ValidationReport{
		Summary: []ColumnSummary{},
		Errors: ErrorDetails{
			TypeCheck:    []ColumnError{},
			MissingCheck: []ColumnError{},
			UnknownCheck: []ColumnError{},
			DupCheck:     []ColumnError{},
		},
	}
	for _, s := range settings {
		if s.VariableType != VariableTypeInfo {
			continue
		}
		cells, ok := t.Column(s.StandardName)
		if !ok {
			report.Summary = append(report.Summary, ColumnSummary{
				Column:            s.StandardName,
				MissingPercentage: notAvailable,
				UnknownPercentage: notAvailable,
				Type:              notAvailable,
				MinValue:          notAvailable,
				MaxValue:          notAvailable,
				AverageValue:      notAvailable,
				Check:             "Column not found",
			})
			continue
		}
		report.Summary = append(report.Summary, report.checkColumn(t, s, cells, templateName))
	}
	return report
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func (r *ValidationReport) checkColumn(t *MappedTable, s ColumnSetting, cells []string, templateName string) ColumnSummary {
	total := len(cells)
	missing, unknown := 0, 0
	for _, c := range cells {
		if IsNull(c) {
			missing++
		}
		if strings.HasPrefix(c, "Unknown") {
			unknown++
		}
	}
	missingPct, unknownPct := percent(missing, total), percent(unknown, total)

	typeOK := checkType(cells, s.DataType)
	if !typeOK {
		r.Errors.TypeCheck = append(r.Errors.TypeCheck, ColumnError{Column: s.StandardName, Error: "type failed"})
	}

	missingOK := s.NullAllowed() || (missing == 0 && total > 0)
	if !missingOK {
		msg := fmt.Sprintf("contains null values (%.2f%%)", missingPct)
		if total == 0 {
			msg = "must be not null or empty"
		}
		r.Errors.MissingCheck = append(r.Errors.MissingCheck, ColumnError{Column: s.StandardName, Error: msg})
	}

	if unknown > 0 {
		r.Errors.UnknownCheck = append(r.Errors.UnknownCheck, ColumnError{
			Column: s.StandardName,
			Error:  fmt.Sprintf("contains unknown values (%.2f%%)", unknownPct),
		})
	}

	dupOK := checkDuplicates(t, s.StandardName, templateName)
	if !dupOK {
		r.Errors.DupCheck = append(r.Errors.DupCheck, ColumnError{Column: s.StandardName, Error: "contains duplicate values"})
	}

	summary := ColumnSummary{
		Column:            s.StandardName,
		MissingCount:      missing,
		MissingPercentage: fmt.Sprintf("%.2f%%", missingPct),
		UnknownCount:      unknown,
		UnknownPercentage: fmt.Sprintf("%.2f%%", unknownPct),
		Type:              s.DataType,
		MinValue:          notAvailable,
		MaxValue:          notAvailable,
		AverageValue:      notAvailable,
		Check:             "Fail",
	}
	if typeOK && missingOK && unknown == 0 && dupOK {
		summary.Check = "Pass"
	}
	if dt := domain.ParseDataType(s.DataType); dt == domain.DataTypeDouble || dt == domain.DataTypeInteger {
		summary.MinValue, summary.MaxValue, summary.AverageValue = numericStats(cells)
	}
	return summary
}

// checkType: date columns must parse as dates and numeric columns as numbers,
// ignoring nulls; a column without rows fails.
func checkType(cells []string, declared string) bool {
	if len(cells) == 0 {
		return false
	}
	switch domain.ParseDataType(declared) {
	case domain.DataTypeDate:
		seen := false
		for _, c := range cells {
			if IsNull(c) {
				continue
			}
			for _, part := range strings.Split(c, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if _, ok := ParseDate(part); !ok {
					return false
				}
				seen = true
			}
		}
		return seen
	case domain.DataTypeDouble, domain.DataTypeInteger:
		for _, c := range cells {
			if IsNull(c) {
				continue
			}
			if _, ok := ParseNumber(c); !ok {
				return false
			}
		}
	}
	return true
}

// checkDuplicates enforces unique claim ids on claim templates and unique
// (POLICY_ID, CERTIFICATE_ID) pairs on premium templates.
func checkDuplicates(t *MappedTable, column, templateName string) bool {
	switch {
	case strings.Contains(templateName, "CLM") && column == "CLAIM_ID":
		return unique(t, "CLAIM_ID")
	case strings.Contains(templateName, "GWP") && (column == "POLICY_ID" || column == "CERTIFICATE_ID"):
		if _, ok := t.Column("POLICY_ID"); !ok {
			return true
		}
		if _, ok := t.Column("CERTIFICATE_ID"); !ok {
			return true
		}
		return unique(t, "POLICY_ID", "CERTIFICATE_ID")
	}
	return true
}

func unique(t *MappedTable, columns ...string) bool {
	seen := make(map[string]bool, t.Rows)
	for r := 0; r < t.Rows; r++ {
		parts := make([]string, len(columns))
		for i, c := range columns {
			parts[i] = t.Cells[c][r]
		}
		key := strings.Join(parts, "\x00")
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func numericStats(cells []string) (minV, maxV, avg string) {
	var lo, hi, sum float64
	n := 0
	for _, c := range cells {
		f, ok := ParseNumber(c)
		if !ok {
			continue
		}
		if n == 0 || f < lo {
			lo = f
		}
		if n == 0 || f > hi {
			hi = f
		}
		sum += f
		n++
	}
	if n == 0 {
		return notAvailable, notAvailable, notAvailable
	}
	return formatAmount(lo), formatAmount(hi), formatAmount(sum / float64(n))
}

// IsValid reports whether every check passed.
func (r *ValidationReport) IsValid() bool {
	e := r.Errors
	return len(e.TypeCheck) == 0 && len(e.MissingCheck) == 0 && len(e.UnknownCheck) == 0 && len(e.DupCheck) == 0
}

func joinErrors(errs []ColumnError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("{'column': '%s', 'error': '%s'}", e.Column, e.Error)
	}
	return strings.Join(parts, ", ")
}

// Message summarizes the outcome; on failure it names the first failing check.
func (r *ValidationReport) Message() string {
	if r.IsValid() {
		return "Data validation completed successfully"
	}
	msg := "Data validation failed !"
	switch e := r.Errors; {
	case len(e.TypeCheck) > 0:
		msg += "\n Due to wrong type: " + joinErrors(e.TypeCheck)
	case len(e.MissingCheck) > 0:
		msg += "\n Due to missing: " + joinErrors(e.MissingCheck)
	case len(e.UnknownCheck) > 0:
		msg += "\n Due to unknown: " + joinErrors(e.UnknownCheck)
	default:
		msg += "\n Due to duplicate: " + joinErrors(e.DupCheck)
	}
	return msg
}
