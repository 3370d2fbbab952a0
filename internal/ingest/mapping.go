package ingest

import (
	"sort"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// ColumnSetting maps one column of the uploaded file to a standard name.
type ColumnSetting struct {
	StandardName string `json:"standard_name" binding:"required"`
	ImportName   string `json:"import_name" binding:"required"`
	DataType     string `json:"data_type"`
	AllowNull    *bool  `json:"allow_null,omitempty"`
	VariableType string `json:"variable_type"`
}

// VariableTypeInfo marks the columns that the data checks inspect.
const VariableTypeInfo = "INFO"

// NullAllowed defaults to true when allow_null is absent.
func (s ColumnSetting) NullAllowed() bool {
	return s.AllowNull == nil || *s.AllowNull
}

// Type is the declared type; ledger columns always use their fixed type.
func (s ColumnSetting) Type() domain.DataType {
	if t, ok := domain.LedgerColumnTypes[s.StandardName]; ok {
		return t
	}
	return domain.ParseDataType(s.DataType)
}

// DuplicateImportNames lists import names mapped more than once, sorted.
func DuplicateImportNames(settings []ColumnSetting) []string {
	seen := make(map[string]int, len(settings))
	for _, s := range settings {
		seen[s.ImportName]++
	}
	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// MappedTable holds the mapped columns under their standard names.
type MappedTable struct {
	Names []string
	Cells map[string][]string
	Rows  int
}

// Column returns the cells of a mapped column.
func (t *MappedTable) Column(name string) ([]string, bool) {
	c, ok := t.Cells[name]
	return c, ok
}

// MapColumns renames file columns to standard names and drops every column
// the settings do not mention. Settings whose import name is absent from the
// file produce no column.
func MapColumns(raw *RawTable, settings []ColumnSetting) *MappedTable {
	t := &MappedTable{Cells: make(map[string][]string), Rows: len(raw.Rows)}
	for _, s := range settings {
		if _, dup := t.Cells[s.StandardName]; dup {
			continue
		}
		idx, ok := raw.ColumnIndex(strings.TrimSpace(s.ImportName))
		if !ok {
			continue
		}
		cells := make([]string, len(raw.Rows))
		for r, row := range raw.Rows {
			cells[r] = row[idx]
		}
		t.Names = append(t.Names, s.StandardName)
		t.Cells[s.StandardName] = cells
	}
	return t
}

var nullMarkers = map[string]bool{
	"": true, "NA": true, "N/A": true, "#N/A": true, "NaN": true, "nan": true,
	"NULL": true, "null": true, "None": true,
}

// IsNull reports whether a cell counts as missing.
func IsNull(cell string) bool {
	return nullMarkers[strings.TrimSpace(cell)]
}
