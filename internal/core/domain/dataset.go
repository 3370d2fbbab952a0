package domain

import (
	"math"
	"strconv"
	"strings"
)

// DataType is the declared type of an imported column.
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeDouble  DataType = "double"
	DataTypeInteger DataType = "integer"
	DataTypeDate    DataType = "date"
)

// ParseDataType normalizes a declared column type. Unknown names are text.
func ParseDataType(s string) DataType {
	switch DataType(strings.ToLower(strings.TrimSpace(s))) {
	case DataTypeDouble:
		return DataTypeDouble
	case DataTypeInteger:
		return DataTypeInteger
	case DataTypeDate:
		return DataTypeDate
	default:
		return DataTypeText
	}
}

// Standard names of the general-ledger columns.
const (
	ColumnDebitAccount  = "DEBIT_ACC"
	ColumnCreditAccount = "CREDIT_ACC"
	ColumnDebitAmount   = "DEBIT_AMT"
	ColumnCreditAmount  = "CREDIT_AMT"
	ColumnInvoiceDate   = "INVOICE_DATE"
)

// LedgerColumnTypes fixes the storage type of the ledger columns whatever the
// import settings declare, so a ledger snapshot always decodes.
var LedgerColumnTypes = map[string]DataType{
	ColumnDebitAccount:  DataTypeText,
	ColumnCreditAccount: DataTypeText,
	ColumnDebitAmount:   DataTypeDouble,
	ColumnCreditAmount:  DataTypeDouble,
	ColumnInvoiceDate:   DataTypeDate,
}

// Column is one typed column. Values hold nil (null), string (text and date,
// formatted YYYY-MM-DD), float64 (double) or int64 (integer).
type Column struct {
	Name   string
	Type   DataType
	Values []any
}

// Dataset is an imported table after column mapping and type conversion.
type Dataset struct {
	Columns []Column
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil || len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// Column finds a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// Text returns cell i as trimmed text. Null cells report false.
func (c *Column) Text(i int) (string, bool) {
	if c == nil || i < 0 || i >= len(c.Values) {
		return "", false
	}
	switch v := c.Values[i].(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// Number returns cell i as a number. Null and non-numeric cells report false.
func (c *Column) Number(i int) (float64, bool) {
	if c == nil || i < 0 || i >= len(c.Values) {
		return 0, false
	}
	switch v := c.Values[i].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}
