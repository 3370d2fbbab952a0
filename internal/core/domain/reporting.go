package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TrialBalanceKey identifies a trial balance line.
type TrialBalanceKey struct {
	Account      string `json:"account"`
	Subledger    string `json:"agCode"`
	BalanceSheet string `json:"bsCode"`
	ProfitLoss   string `json:"plCode"`
}

// Less orders keys field by field.
func (k TrialBalanceKey) Less(o TrialBalanceKey) bool {
	if k.Account != o.Account {
		return k.Account < o.Account
	}
	if k.Subledger != o.Subledger {
		return k.Subledger < o.Subledger
	}
	if k.BalanceSheet != o.BalanceSheet {
		return k.BalanceSheet < o.BalanceSheet
	}
	return k.ProfitLoss < o.ProfitLoss
}

// TrialBalanceLine is one aggregated line of the trial balance.
type TrialBalanceLine struct {
	TrialBalanceKey
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
	ClosingNet    decimal.Decimal `json:"closingNet"`
}

// TrialBalance is the account-level aggregation for one run.
type TrialBalance struct {
	Lines []TrialBalanceLine `json:"lines"`
}

// ClosingNetTotal sums ClosingNet over all lines.
func (tb *TrialBalance) ClosingNetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range tb.Lines {
		total = total.Add(l.ClosingNet)
	}
	return total
}

// ReportKind names one of the derived statements.
type ReportKind string

const (
	ReportTrialBalance ReportKind = "TRIAL_BALANCE"
	ReportBalanceSheet ReportKind = "BALANCE_SHEET"
	ReportPL01         ReportKind = "PL01"
	ReportPL02         ReportKind = "PL02"
	ReportCF01         ReportKind = "CF01"
	ReportCF02         ReportKind = "CF02"
)

// TemplateKinds lists the report kinds backed by a template, in build order.
var TemplateKinds = []ReportKind{ReportBalanceSheet, ReportPL01, ReportPL02, ReportCF01, ReportCF02}

// ArtifactType is the lower-case type name used in saved-file listings.
func (k ReportKind) ArtifactType() string {
	return strings.ToLower(string(k))
}

// TemplateLine is one declarative line of a report template.
type TemplateLine struct {
	LineCode           string `json:"lineCode" yaml:"line_code"`
	LineName           string `json:"lineName" yaml:"line_name"`
	Code               string `json:"code" yaml:"code"`
	IsTotalLine        bool   `json:"isTotalLine" yaml:"is_total_line"`
	CalculationFormula string `json:"calculationFormula" yaml:"formula"`
	NoteRef            string `json:"noteRef" yaml:"note_ref"`
}

// NumericLineCode parses LineCode as a number; ok is false when it is not numeric.
func (t TemplateLine) NumericLineCode() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.LineCode), 64)
	return v, err == nil
}

// NumericCode parses Code as a number; ok is false when it is not numeric.
func (t TemplateLine) NumericCode() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Code), 64)
	return v, err == nil
}

// ReportLine is a template line with its computed amounts.
type ReportLine struct {
	TemplateLine
	CurrentAmount     decimal.Decimal  `json:"currentAmount"`
	AccumulatedAmount *decimal.Decimal `json:"accumulatedAmount,omitempty"`
}

// Report is a finished statement.
type Report struct {
	Kind  ReportKind   `json:"kind"`
	Lines []ReportLine `json:"lines"`
}

// Amount sums CurrentAmount over lines whose code equals code.
func (r *Report) Amount(code string) decimal.Decimal {
	return r.sum(code, false)
}

// AccumulatedAmount sums AccumulatedAmount over lines whose code equals code.
func (r *Report) AccumulatedAmount(code string) decimal.Decimal {
	return r.sum(code, true)
}

func (r *Report) sum(code string, accumulated bool) decimal.Decimal {
	total := decimal.Zero
	if r == nil {
		return total
	}
	for _, l := range r.Lines {
		if l.Code != code {
			continue
		}
		if accumulated {
			if l.AccumulatedAmount != nil {
				total = total.Add(*l.AccumulatedAmount)
			}
			continue
		}
		total = total.Add(l.CurrentAmount)
	}
	return total
}

// Len returns the number of lines, tolerating nil.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Lines)
}

// Templates holds one template per report kind.
type Templates map[ReportKind][]TemplateLine

// GenerateInput is everything the derivation pipeline needs for one run.
type GenerateInput struct {
	Transactions   []TransactionRow
	Chart          []ChartOfAccountsEntry
	CompanyType    string
	Period         Period
	OpeningBalance []TrialBalanceLine
}

// FinancialStatements is the full derived statement set.
type FinancialStatements struct {
	TrialBalance *TrialBalance
	BalanceSheet *Report
	PL01         *Report
	PL02         *Report
	CF01         *Report
	CF02         *Report
}

// SavedFile describes one persisted artifact.
type SavedFile struct {
	Type     string `json:"type"`
	FileName string `json:"file_name"`
	Key      string `json:"s3_key"`
}

// RunSummary holds per-report row counts.
type RunSummary struct {
	TrialBalanceRecords int  `json:"trial_balance_records"`
	BalanceSheetRecords int  `json:"balance_sheet_records"`
	PL01Records         int  `json:"pl01_records"`
	PL02Records         int  `json:"pl02_records"`
	CF01Records         int  `json:"cf01_records"`
	CF02Records         int  `json:"cf02_records"`
	HasOpeningBalance   bool `json:"has_opening_balance"`
}

// ReportRun is the outcome of a persisted run.
type ReportRun struct {
	Bucket     string
	SavedFiles []SavedFile
	Summary    RunSummary
	Statements *FinancialStatements
}
