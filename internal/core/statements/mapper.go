// Package statements derives the MOF statement set (trial balance, balance
// sheet, profit and loss, cash flow) from mapped general-ledger rows.
package statements

import (
	"fmt"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// ChartIndex resolves account codes against a chart of accounts.
type ChartIndex map[string]domain.ChartOfAccountsEntry

// NewChartIndex indexes the chart by account code. Identical duplicate rows are
// tolerated; two rows classifying the same account differently are rejected.
func NewChartIndex(chart []domain.ChartOfAccountsEntry) (ChartIndex, error) {
	idx := make(ChartIndex, len(chart))
	for _, e := range chart {
		e.AccountCode = strings.TrimSpace(e.AccountCode)
		if e.AccountCode == "" {
			continue
		}
		if prev, ok := idx[e.AccountCode]; ok && prev != e {
			return nil, fmt.Errorf("%w: chart of accounts classifies account %s twice", apperrors.ErrPrecondition, e.AccountCode)
		}
		idx[e.AccountCode] = e
	}
	return idx, nil
}

// Classify returns the classification for account, with Matched=false when unknown.
func (c ChartIndex) Classify(account string) domain.Classification {
	e, ok := c[strings.TrimSpace(account)]
	if !ok {
		return domain.Classification{}
	}
	return domain.Classification{
		Subledger:    strings.TrimSpace(e.SubledgerCode),
		BalanceSheet: strings.TrimSpace(e.BalanceSheetCode),
		ProfitLoss:   strings.TrimSpace(e.ProfitLossCode),
		Matched:      true,
	}
}

// MapAccounts attaches debit-side and credit-side classification codes to every row.
//
// The whole batch is rejected when no row touches the 911 closing account, or
// when any row is dated outside the year-to-date range of period. Rows whose
// accounts are not in the chart are kept with empty codes.
func MapAccounts(rows []domain.TransactionRow, chart []domain.ChartOfAccountsEntry, period domain.Period) ([]domain.MappedTransaction, error) {
	if !touchesClosingAccount(rows) {
		return nil, apperrors.ErrMissingClosingAccount
	}

	ytd := period.Accumulated()
	invalid := 0
	for _, r := range rows {
		if r.InvoiceDate.IsZero() || !ytd.Contains(r.InvoiceDate) {
			invalid++
		}
	}
	if invalid > 0 {
		return nil, &apperrors.InvalidRecordsError{Count: invalid}
	}

	idx, err := NewChartIndex(chart)
	if err != nil {
		return nil, err
	}

	mapped := make([]domain.MappedTransaction, len(rows))
	for i, r := range rows {
		r.DebitAccount = strings.TrimSpace(r.DebitAccount)
		r.CreditAccount = strings.TrimSpace(r.CreditAccount)
		mapped[i] = domain.MappedTransaction{
			TransactionRow: r,
			Debit:          idx.Classify(r.DebitAccount),
			Credit:         idx.Classify(r.CreditAccount),
		}
	}
	return mapped, nil
}

func touchesClosingAccount(rows []domain.TransactionRow) bool {
	for _, r := range rows {
		if strings.TrimSpace(r.DebitAccount) == domain.ClosingAccountCode || strings.TrimSpace(r.CreditAccount) == domain.ClosingAccountCode {
			return true
		}
	}
	return false
}

// FilterByRange keeps the rows dated within r.
func FilterByRange(mapped []domain.MappedTransaction, r domain.DateRange) []domain.MappedTransaction {
	out := make([]domain.MappedTransaction, 0, len(mapped))
	for _, m := range mapped {
		if r.Contains(m.InvoiceDate) {
			out = append(out, m)
		}
	}
	return out
}

// UnmatchedAccounts lists the distinct account codes absent from the chart.
func UnmatchedAccounts(mapped []domain.MappedTransaction) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(code string) {
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	for _, m := range mapped {
		if !m.Debit.Matched {
			add(m.DebitAccount)
		}
		if !m.Credit.Matched {
			add(m.CreditAccount)
		}
	}
	return out
}
