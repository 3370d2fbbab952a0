package statements_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/SscSPs/mof_report_service/internal/core/statements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(r *domain.Report) map[string]string {
	out := make(map[string]string, len(r.Lines))
	for _, l := range r.Lines {
		out[l.Code] = l.CurrentAmount.String()
	}
	return out
}

func TestEngine_Generate(t *testing.T) {
	engine := statements.NewEngine()
	in := domain.GenerateInput{
		Transactions: sampleLedger(),
		Chart:        sampleChart(),
		CompanyType:  "DN",
		Period:       march2024(t),
	}

	fs, err := engine.Generate(in, sampleTemplates())
	require.NoError(t, err)

	assert.Len(t, fs.TrialBalance.Lines, 7)

	assert.Equal(t, map[string]string{
		"110": "800", "130": "500", "100": "1300", "270": "1300",
		"411": "1000", "421": "300", "400": "1300", "440": "1300",
	}, amounts(fs.BalanceSheet))
	assert.Equal(t, "110", fs.BalanceSheet.Lines[0].Code, "lines are ordered by lineCode")
	assert.True(t, fs.BalanceSheet.Amount("270").Equal(fs.BalanceSheet.Amount("440")))

	assert.Equal(t, map[string]string{"01": "500", "02": "200", "50": "300"}, amounts(fs.PL01))
	assertDecimal(t, "300", fs.PL01.AccumulatedAmount("50"))
	assert.Equal(t, "VI.1", fs.PL01.Lines[0].NoteRef)

	assert.Equal(t, map[string]string{"10": "500", "20": "200", "60": "300"}, amounts(fs.PL02))
	assertDecimal(t, "300", fs.PL02.AccumulatedAmount("60"))

	assert.Equal(t, map[string]string{"01": "300", "02": "1000", "03": "-200", "20": "1100"}, amounts(fs.CF01))
	assert.Equal(t, map[string]string{"01": "800", "50": "800"}, amounts(fs.CF02))
}

func TestEngine_Generate_CurrentVersusAccumulated(t *testing.T) {
	// a February sale of 40, closed to retained earnings the same month
	ledger := append(sampleLedger(), legs("131", "511", "40", day(2024, 2, 20))...)
	ledger = append(ledger, legs("511", "911", "40", day(2024, 2, 28))...)
	ledger = append(ledger, legs("911", "421", "40", day(2024, 2, 28))...)

	fs, err := statements.NewEngine().Generate(domain.GenerateInput{
		Transactions: ledger, Chart: sampleChart(), Period: march2024(t),
	}, sampleTemplates())
	require.NoError(t, err)

	assertDecimal(t, "500", fs.PL01.Amount("01"))
	assertDecimal(t, "540", fs.PL01.AccumulatedAmount("01"))
	assertDecimal(t, "340", fs.PL01.AccumulatedAmount("50"))
}

func TestEngine_Generate_FailureNamesStage(t *testing.T) {
	templates := sampleTemplates()
	templates[domain.ReportBalanceSheet] = []domain.TemplateLine{
		{LineCode: "1", Code: "110", CalculationFormula: "DUNO(110)"},
		{LineCode: "2", Code: "411", CalculationFormula: "-DUCO(411)"},
		{LineCode: "3", Code: "270", IsTotalLine: true, CalculationFormula: "[110]"},
		{LineCode: "4", Code: "440", IsTotalLine: true, CalculationFormula: "[411]"},
	}

	_, err := statements.NewEngine().Generate(domain.GenerateInput{
		Transactions: sampleLedger(), Chart: sampleChart(), Period: march2024(t),
	}, templates)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "balance sheet: "))
	assert.ErrorIs(t, err, apperrors.ErrReconciliation)

	var rec *apperrors.ReconciliationError
	require.True(t, errors.As(err, &rec))
	assertDecimal(t, "-200", rec.Discrepancy)
}

func TestEngine_Generate_MappingFailure(t *testing.T) {
	_, err := statements.NewEngine().Generate(domain.GenerateInput{
		Transactions: legs("111", "411", "1", day(2024, 3, 1)), Chart: sampleChart(), Period: march2024(t),
	}, sampleTemplates())
	assert.ErrorIs(t, err, apperrors.ErrMissingClosingAccount)
	assert.True(t, strings.HasPrefix(err.Error(), "account mapping: "))
}

func TestBuildBalanceSheet_ClosingNetFallback(t *testing.T) {
	tb := &domain.TrialBalance{Lines: []domain.TrialBalanceLine{
		{TrialBalanceKey: domain.TrialBalanceKey{Account: "131", BalanceSheet: "131"}, ClosingDebit: dec("90"), ClosingNet: dec("90")},
		{TrialBalanceKey: domain.TrialBalanceKey{Account: "331", BalanceSheet: "311"}, ClosingCredit: dec("90"), ClosingNet: dec("-90")},
	}}
	tmpl := []domain.TemplateLine{
		{LineCode: "1", Code: "131"},
		{LineCode: "2", Code: "270", IsTotalLine: true, CalculationFormula: "[131]"},
		{LineCode: "3", Code: "311"},
		{LineCode: "4", Code: "440", IsTotalLine: true, CalculationFormula: "[311]"},
	}

	bs, err := statements.NewEngine(statements.WithClosingNetDetails(true)).BuildBalanceSheet(tmpl, tb)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"131": "90", "270": "90", "311": "90", "440": "90"}, amounts(bs))
}

func TestBuildBalanceSheet_EmptyDetailFormulaIsZero(t *testing.T) {
	tb := &domain.TrialBalance{Lines: []domain.TrialBalanceLine{
		{TrialBalanceKey: domain.TrialBalanceKey{Account: "131", BalanceSheet: "131"}, ClosingDebit: dec("90"), ClosingNet: dec("90")},
		{TrialBalanceKey: domain.TrialBalanceKey{Account: "331", BalanceSheet: "311"}, ClosingCredit: dec("90"), ClosingNet: dec("-90")},
	}}
	tmpl := []domain.TemplateLine{
		{LineCode: "1", Code: "131"},
		{LineCode: "2", Code: "132", CalculationFormula: "DUNO(131)"},
		{LineCode: "3", Code: "270", IsTotalLine: true, CalculationFormula: "[131]+[132]"},
		{LineCode: "4", Code: "311", CalculationFormula: "   "},
		{LineCode: "5", Code: "312", CalculationFormula: "-DUCO(311)"},
		{LineCode: "6", Code: "440", IsTotalLine: true, CalculationFormula: "[311]+[312]"},
	}

	bs, err := statements.NewEngine().BuildBalanceSheet(tmpl, tb)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"131": "0", "132": "90", "270": "90", "311": "0", "312": "90", "440": "90"}, amounts(bs))
	assertDecimal(t, "0", statements.EvaluateBalanceSheet("", tb))
}

func TestBuildBalanceSheet_TotalsOrdering(t *testing.T) {
	tb := &domain.TrialBalance{Lines: []domain.TrialBalanceLine{
		{TrialBalanceKey: domain.TrialBalanceKey{Account: "111", BalanceSheet: "110"}, ClosingDebit: dec("800")},
	}}
	tmpl := []domain.TemplateLine{
		{LineCode: "1", Code: "110", CalculationFormula: "DUNO(110)"},
		{LineCode: "2", Code: "150", IsTotalLine: true, CalculationFormula: "[110]"},
		{LineCode: "3", Code: "160", IsTotalLine: true, CalculationFormula: "[150]"},
		{LineCode: "4", Code: "270", IsTotalLine: true, CalculationFormula: "[160]"},
		{LineCode: "5", Code: "440", IsTotalLine: true, CalculationFormula: "[270]"},
	}

	// higher codes first within a tier: 160 and 440 run before what they reference
	priority, err := statements.NewEngine().BuildBalanceSheet(tmpl, tb)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"110": "800", "150": "800", "160": "0", "270": "0", "440": "0"}, amounts(priority))

	topo, err := statements.NewEngine(statements.WithOrdering(statements.OrderingTopological)).BuildBalanceSheet(tmpl, tb)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"110": "800", "150": "800", "160": "800", "270": "800", "440": "800"}, amounts(topo))
}

func TestBuildBalanceSheet_TopologicalCycle(t *testing.T) {
	tmpl := []domain.TemplateLine{
		{LineCode: "1", Code: "150", IsTotalLine: true, CalculationFormula: "[160]"},
		{LineCode: "2", Code: "160", IsTotalLine: true, CalculationFormula: "[150]"},
	}
	_, err := statements.NewEngine(statements.WithOrdering(statements.OrderingTopological)).BuildBalanceSheet(tmpl, &domain.TrialBalance{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "150, 160")

	_, err = statements.NewEngine().BuildBalanceSheet(tmpl, &domain.TrialBalance{})
	assert.NoError(t, err)
}

func TestBuildPL02_FromPL01(t *testing.T) {
	acc := dec("1500")
	pl01 := &domain.Report{Kind: domain.ReportPL01, Lines: []domain.ReportLine{
		{TemplateLine: domain.TemplateLine{Code: "50"}, CurrentAmount: dec("500"), AccumulatedAmount: &acc},
	}}
	tmpl := []domain.TemplateLine{{LineCode: "1", Code: "60", CalculationFormula: "[50]"}}

	pl02, err := statements.NewEngine().BuildPL02(tmpl, pl01)
	require.NoError(t, err)
	require.Len(t, pl02.Lines, 1)
	assertDecimal(t, "500", pl02.Lines[0].CurrentAmount)
	require.NotNil(t, pl02.Lines[0].AccumulatedAmount)
	assertDecimal(t, "1500", *pl02.Lines[0].AccumulatedAmount)
}

func TestBuild_BracketRoundTrip(t *testing.T) {
	acc := dec("0")
	pl01 := &domain.Report{Lines: []domain.ReportLine{
		{TemplateLine: domain.TemplateLine{Code: "100"}, CurrentAmount: dec("123.45"), AccumulatedAmount: &acc},
	}}
	tmpl := []domain.TemplateLine{
		{LineCode: "1", Code: "100", CalculationFormula: "[100]"},
		{LineCode: "2", Code: "200", IsTotalLine: true, CalculationFormula: "[100]"},
	}
	out, err := statements.NewEngine().BuildPL02(tmpl, pl01)
	require.NoError(t, err)
	assertDecimal(t, "123.45", out.Amount("100"))
	assertDecimal(t, "123.45", out.Amount("200"))
}

func TestBuildCashFlow_RejectsOtherKinds(t *testing.T) {
	_, err := statements.NewEngine().BuildCashFlow(domain.ReportPL01, nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSortTemplate(t *testing.T) {
	in := []domain.TemplateLine{{LineCode: "10"}, {LineCode: "x"}, {LineCode: "1.1"}, {LineCode: "2"}, {LineCode: "1"}, {LineCode: ""}}
	got := statements.SortTemplate(in)
	var codes []string
	for _, l := range got {
		codes = append(codes, l.LineCode)
	}
	assert.Equal(t, []string{"1", "1.1", "2", "10", "x", ""}, codes)
	assert.Equal(t, "10", in[0].LineCode, "input is not modified")
}

func TestParseOrdering(t *testing.T) {
	o, err := statements.ParseOrdering("")
	require.NoError(t, err)
	assert.Equal(t, statements.OrderingPriority, o)

	o, err = statements.ParseOrdering(" Topological ")
	require.NoError(t, err)
	assert.Equal(t, statements.OrderingTopological, o)

	_, err = statements.ParseOrdering("alphabetical")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
