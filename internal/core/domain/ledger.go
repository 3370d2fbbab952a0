package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingAccountCode is the income-summary account through which profit and loss is closed.
const ClosingAccountCode = "911"

// TransactionRow is one line of the general-ledger export.
// The export lists each posting once per account leg: DebitAccount is the
// account the line belongs to and CreditAccount is its contra account.
type TransactionRow struct {
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
}

// Net returns DebitAmount - CreditAmount.
func (r TransactionRow) Net() decimal.Decimal {
	return r.DebitAmount.Sub(r.CreditAmount)
}

// ChartOfAccountsEntry maps a raw account code to its classification codes.
type ChartOfAccountsEntry struct {
	AccountCode      string `json:"code" yaml:"code"`
	SubledgerCode    string `json:"accountSM" yaml:"account_sm"`
	BalanceSheetCode string `json:"accountBS" yaml:"account_bs"`
	ProfitLossCode   string `json:"accountPL" yaml:"account_pl"`
}

// Classification holds the codes resolved for one side of a transaction.
// Matched is false when the account is absent from the chart; the codes are then empty.
type Classification struct {
	Subledger    string `json:"subledger"`
	BalanceSheet string `json:"balanceSheet"`
	ProfitLoss   string `json:"profitLoss"`
	Matched      bool   `json:"matched"`
}

// MappedTransaction is a TransactionRow annotated with both sides' classification codes.
type MappedTransaction struct {
	TransactionRow
	Debit  Classification `json:"debit"`
	Credit Classification `json:"credit"`
}
