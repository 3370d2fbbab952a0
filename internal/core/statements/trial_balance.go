package statements

import (
	"sort"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ZeroSumTolerance bounds how far the closing balances may sum away from zero.
var ZeroSumTolerance = decimal.New(1, -6)

type movement struct {
	openingDebit, openingCredit decimal.Decimal
	periodDebit, periodCredit   decimal.Decimal
}

// DebitSideKey is the grouping key of a mapped row. Both the debit and the
// credit amount of a row are aggregated under its debit-side classification.
func DebitSideKey(m domain.MappedTransaction) domain.TrialBalanceKey {
	return domain.TrialBalanceKey{
		Account:      m.DebitAccount,
		Subledger:    m.Debit.Subledger,
		BalanceSheet: m.Debit.BalanceSheet,
		ProfitLoss:   m.Debit.ProfitLoss,
	}
}

// BuildTrialBalance aggregates mapped rows into trial balance lines, seeds
// opening amounts from the prior period's closing balances and derives the
// closing side of each line. It fails when the closing balances do not net to zero.
func BuildTrialBalance(mapped []domain.MappedTransaction, opening []domain.TrialBalanceLine) (*domain.TrialBalance, error) {
	groups := make(map[domain.TrialBalanceKey]*movement)
	get := func(k domain.TrialBalanceKey) *movement {
		m, ok := groups[k]
		if !ok {
			m = &movement{}
			groups[k] = m
		}
		return m
	}

	for _, m := range mapped {
		g := get(DebitSideKey(m))
		g.periodDebit = g.periodDebit.Add(m.DebitAmount)
		g.periodCredit = g.periodCredit.Add(m.CreditAmount)
	}
	for _, o := range opening {
		g := get(o.TrialBalanceKey)
		g.openingDebit = g.openingDebit.Add(o.ClosingDebit)
		g.openingCredit = g.openingCredit.Add(o.ClosingCredit)
	}

	lines := make([]domain.TrialBalanceLine, 0, len(groups))
	for k, g := range groups {
		lines = append(lines, closeLine(k, g))
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].TrialBalanceKey.Less(lines[j].TrialBalanceKey) })

	tb := &domain.TrialBalance{Lines: lines}
	if total := tb.ClosingNetTotal(); total.Abs().GreaterThan(ZeroSumTolerance) {
		return nil, &apperrors.ReconciliationError{
			Check:       "trial_balance",
			Discrepancy: total,
			Detail:      "Bảng cân đối phát sinh không cân: tổng số dư cuối kỳ = " + total.String(),
		}
	}
	return tb, nil
}

func closeLine(k domain.TrialBalanceKey, g *movement) domain.TrialBalanceLine {
	net := g.openingDebit.Add(g.periodDebit).Sub(g.openingCredit).Sub(g.periodCredit)
	closingDebit := decimal.Max(net, decimal.Zero)
	closingCredit := decimal.Max(net.Neg(), decimal.Zero)
	return domain.TrialBalanceLine{
		TrialBalanceKey: k,
		OpeningDebit:    g.openingDebit,
		OpeningCredit:   g.openingCredit,
		PeriodDebit:     g.periodDebit,
		PeriodCredit:    g.periodCredit,
		ClosingDebit:    closingDebit,
		ClosingCredit:   closingCredit,
		ClosingNet:      closingDebit.Sub(closingCredit),
	}
}
