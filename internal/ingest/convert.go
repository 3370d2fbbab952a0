package ingest

import (
	"fmt"
	"math"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UnknownText replaces null text cells.
const UnknownText = "Unknown"

const coverageIDColumn = "COVERAGE_ID"

// Convert types every mapped column according to its setting. Cells that do
// not convert become null; null text cells become UnknownText.
func Convert(t *MappedTable, settings []ColumnSetting) *domain.Dataset {
	byName := make(map[string]ColumnSetting, len(settings))
	for _, s := range settings {
		if _, ok := byName[s.StandardName]; !ok {
			byName[s.StandardName] = s
		}
	}

	ds := &domain.Dataset{Columns: make([]domain.Column, 0, len(t.Names))}
	for _, name := range t.Names {
		typ := byName[name].Type()
		cells := t.Cells[name]
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = convertCell(name, typ, c)
		}
		ds.Columns = append(ds.Columns, domain.Column{Name: name, Type: typ, Values: values})
	}
	return ds
}

func convertCell(column string, typ domain.DataType, cell string) any {
	null := IsNull(cell)
	switch typ {
	case domain.DataTypeDate:
		if null {
			return nil
		}
		if d, ok := ParseDate(cell); ok {
			return d.Format(time.DateOnly)
		}
		return nil
	case domain.DataTypeDouble:
		if f, ok := ParseNumber(cell); ok && !null {
			return f
		}
		return nil
	case domain.DataTypeInteger:
		if f, ok := ParseNumber(cell); ok && !null && f == math.Trunc(f) {
			return int64(f)
		}
		return nil
	default:
		if null {
			return UnknownText
		}
		cell = strings.TrimSpace(cell)
		if column == coverageIDColumn && !strings.HasPrefix(cell, "0") {
			cell = "0" + cell
		}
		return cell
	}
}

var importStampPattern = regexp.MustCompile(`_([0-9]{14})\.[^.]+$`)

// ImportTableName names the snapshot of an import. The timestamp comes from
// the uploaded file name when it carries one, otherwise from now.
func ImportTableName(userName, templateName, fileName string, now time.Time) string {
	stamp := now.Format("20060102150405")
	if m := importStampPattern.FindStringSubmatch(path.Base(fileName)); m != nil {
		stamp = m[1]
	}
	return fmt.Sprintf("%s_%s_IMPORT_%s", userName, templateName, stamp)
}

// LedgerFromDataset extracts ledger rows from a converted dataset. Missing
// amount cells are zero.
func LedgerFromDataset(ds *domain.Dataset) ([]domain.TransactionRow, error) {
	for name := range domain.LedgerColumnTypes {
		if _, ok := ds.Column(name); !ok {
			return nil, fmt.Errorf("ledger column %s is missing", name)
		}
	}
	debitAcc, _ := ds.Column(domain.ColumnDebitAccount)
	creditAcc, _ := ds.Column(domain.ColumnCreditAccount)
	debitAmt, _ := ds.Column(domain.ColumnDebitAmount)
	creditAmt, _ := ds.Column(domain.ColumnCreditAmount)
	date, _ := ds.Column(domain.ColumnInvoiceDate)

	rows := make([]domain.TransactionRow, ds.Len())
	for i := range rows {
		rows[i] = domain.TransactionRow{
			DebitAccount:  textValue(debitAcc.Values[i]),
			CreditAccount: textValue(creditAcc.Values[i]),
			DebitAmount:   amountValue(debitAmt.Values[i]),
			CreditAmount:  amountValue(creditAmt.Values[i]),
		}
		if d, ok := date.Values[i].(string); ok {
			rows[i].InvoiceDate, _ = time.Parse(time.DateOnly, d)
		}
	}
	return rows, nil
}

func textValue(v any) string {
	s, _ := v.(string)
	if s == UnknownText {
		return ""
	}
	return strings.TrimSpace(s)
}

func amountValue(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}
