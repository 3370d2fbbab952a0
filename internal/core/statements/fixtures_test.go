package statements_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// legs returns the two export lines of one posting: one per account.
func legs(debit, credit, amount string, on time.Time) []domain.TransactionRow {
	return []domain.TransactionRow{
		{DebitAccount: debit, CreditAccount: credit, DebitAmount: dec(amount), CreditAmount: decimal.Zero, InvoiceDate: on},
		{DebitAccount: credit, CreditAccount: debit, DebitAmount: decimal.Zero, CreditAmount: dec(amount), InvoiceDate: on},
	}
}

func march2024(t *testing.T) domain.Period {
	t.Helper()
	p, err := domain.NewPeriod(2024, "MONTHLY", 3)
	require.NoError(t, err)
	return p
}

func sampleChart() []domain.ChartOfAccountsEntry {
	return []domain.ChartOfAccountsEntry{
		{AccountCode: "111", SubledgerCode: "111", BalanceSheetCode: "110"},
		{AccountCode: "131", SubledgerCode: "131", BalanceSheetCode: "130"},
		{AccountCode: "411", SubledgerCode: "411", BalanceSheetCode: "411"},
		{AccountCode: "421", SubledgerCode: "421", BalanceSheetCode: "421"},
		{AccountCode: "511", SubledgerCode: "511", ProfitLossCode: "01"},
		{AccountCode: "642", SubledgerCode: "642", ProfitLossCode: "02"},
		{AccountCode: "911", SubledgerCode: "911"},
	}
}

// sampleLedger: capital 1000 in January; in March a 500 credit sale, 200 cash
// expense and the closing entries through 911 into retained earnings.
func sampleLedger() []domain.TransactionRow {
	var rows []domain.TransactionRow
	rows = append(rows, legs("111", "411", "1000", day(2024, time.January, 10))...)
	rows = append(rows, legs("131", "511", "500", day(2024, time.March, 5))...)
	rows = append(rows, legs("642", "111", "200", day(2024, time.March, 6))...)
	rows = append(rows, legs("511", "911", "500", day(2024, time.March, 31))...)
	rows = append(rows, legs("911", "642", "200", day(2024, time.March, 31))...)
	rows = append(rows, legs("911", "421", "300", day(2024, time.March, 31))...)
	return rows
}

func sampleTemplates() domain.Templates {
	return domain.Templates{
		domain.ReportBalanceSheet: {
			{LineCode: "8", Code: "440", LineName: "Tổng nguồn vốn", IsTotalLine: true, CalculationFormula: "[400]"},
			{LineCode: "1", Code: "110", LineName: "Tiền", CalculationFormula: "DUNO(110)"},
			{LineCode: "2", Code: "130", LineName: "Phải thu", CalculationFormula: "DUNO(130)+DUCO(130)"},
			{LineCode: "3", Code: "100", LineName: "Tài sản ngắn hạn", IsTotalLine: true, CalculationFormula: "[110]+[130]"},
			{LineCode: "4", Code: "270", LineName: "Tổng tài sản", IsTotalLine: true, CalculationFormula: "[100]"},
			{LineCode: "5", Code: "411", LineName: "Vốn góp", CalculationFormula: "-DUCO(411)"},
			{LineCode: "6", Code: "421", LineName: "Lợi nhuận chưa phân phối", CalculationFormula: "-DUNO(421)-DUCO(421)"},
			{LineCode: "7", Code: "400", LineName: "Vốn chủ sở hữu", IsTotalLine: true, CalculationFormula: "[411]+[421]"},
		},
		domain.ReportPL01: {
			{LineCode: "1", Code: "01", LineName: "Doanh thu", CalculationFormula: "-PhatSinhCO", NoteRef: "VI.1"},
			{LineCode: "2", Code: "02", LineName: "Chi phí", CalculationFormula: "-PhatSinhNO"},
			{LineCode: "3", Code: "50", LineName: "Lợi nhuận", IsTotalLine: true, CalculationFormula: "[01]-[02]"},
		},
		domain.ReportPL02: {
			{LineCode: "1", Code: "10", CalculationFormula: "[01]"},
			{LineCode: "2", Code: "20", CalculationFormula: "[02]"},
			{LineCode: "3", Code: "60", IsTotalLine: true, CalculationFormula: "[10]-[20]"},
		},
		domain.ReportCF01: {
			{LineCode: "1", Code: "01", CalculationFormula: "PL(50)"},
			{LineCode: "2", Code: "02", CalculationFormula: "PhatSinhNO(11/411)"},
			{LineCode: "3", Code: "03", CalculationFormula: "PhatSinhCO(11/642)"},
			{LineCode: "4", Code: "20", IsTotalLine: true, CalculationFormula: "[01]+[02]+[03]"},
		},
		domain.ReportCF02: {
			{LineCode: "1", Code: "01", CalculationFormula: "PhatSinhNO(11/411) + PhatSinhCO(11/642)"},
			{LineCode: "2", Code: "50", IsTotalLine: true, CalculationFormula: "[01]"},
		},
	}
}
