// Package ingest turns uploaded spreadsheets into typed datasets: it parses
// CSV and XLSX files, renames columns through the user's mapping, validates
// them and converts each column to its declared type.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/xuri/excelize/v2"
)

// RawTable is a parsed file before column mapping. Empty cells are "".
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Extension returns the lower-case extension of a file name or URL path.
func Extension(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(path.Ext(name))
}

// Parse reads a CSV or XLSX file. The first line of the file is a title row
// and is skipped; the second line is the header.
func Parse(data []byte, ext string) (*RawTable, error) {
	var records [][]string
	var err error
	switch ext {
	case ".csv":
		records, err = readCSV(data)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: Unsupported file format %q", apperrors.ErrValidation, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Error parsing file: %v", apperrors.ErrValidation, err)
	}
	return newRawTable(records)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func newRawTable(records [][]string) (*RawTable, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: Error parsing file: no header row after the title row", apperrors.ErrValidation)
	}
	header := make([]string, len(records[1]))
	for i, h := range records[1] {
		header[i] = strings.TrimSpace(h)
	}
	t := &RawTable{Header: header}
	for _, rec := range records[2:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(header))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ColumnIndex returns the position of the first header named name.
func (t *RawTable) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}
