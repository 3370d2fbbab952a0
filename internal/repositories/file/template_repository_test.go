package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/SscSPs/mof_report_service/internal/repositories/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
templates:
  INSURANCE:
    BALANCE_SHEET:
      - line_code: "1"
        line_name: Tiền
        code: "110"
        formula: DUNO(110)
      - line_code: "2"
        line_name: Tổng tài sản
        code: "270"
        is_total_line: true
        formula: "[110]"
    PL02:
      - line_code: "1"
        code: "10"
        formula: "[01]"
        note_ref: VI.25
charts:
  u-1:
    - code: "111"
      account_sm: "111"
      account_bs: "110"
`

func TestYAMLTemplateRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	repo, err := file.LoadTemplateRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	bs, err := repo.FindTemplate(ctx, domain.ReportBalanceSheet, "INSURANCE")
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, domain.TemplateLine{LineCode: "2", LineName: "Tổng tài sản", Code: "270", IsTotalLine: true, CalculationFormula: "[110]"}, bs[1])

	pl02, err := repo.FindTemplate(ctx, domain.ReportPL02, "INSURANCE")
	require.NoError(t, err)
	assert.Equal(t, "VI.25", pl02[0].NoteRef)

	none, err := repo.FindTemplate(ctx, domain.ReportCF01, "BANK")
	require.NoError(t, err)
	assert.Empty(t, none)

	chart, err := repo.FindChartOfAccounts(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ChartOfAccountsEntry{{AccountCode: "111", SubledgerCode: "111", BalanceSheetCode: "110"}}, chart)
}

func TestYAMLTemplateRepositoryTrimsCodes(t *testing.T) {
	doc := `
templates:
  INSURANCE:
    BALANCE_SHEET:
      - {line_code: " 1 ", code: " 110 ", formula: " DUNO(110) "}
      - {line_code: "2", code: "270 ", is_total_line: true, formula: "[110]"}
charts:
  u-1:
    - {code: " 111", account_sm: "111 ", account_bs: " 110 "}
`
	repo, err := file.NewTemplateRepository([]byte(doc))
	require.NoError(t, err)
	ctx := context.Background()

	bs, err := repo.FindTemplate(ctx, domain.ReportBalanceSheet, "INSURANCE")
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, domain.TemplateLine{LineCode: "1", Code: "110", CalculationFormula: "DUNO(110)"}, bs[0])
	assert.Equal(t, "270", bs[1].Code)

	// a padded code still resolves when totals look it up
	report := &domain.Report{Lines: []domain.ReportLine{{TemplateLine: bs[0], CurrentAmount: decimal.NewFromInt(5)}}}
	assert.True(t, report.Amount("110").Equal(decimal.NewFromInt(5)))

	chart, err := repo.FindChartOfAccounts(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ChartOfAccountsEntry{{AccountCode: "111", SubledgerCode: "111", BalanceSheetCode: "110"}}, chart)
}

func TestYAMLTemplateRepositoryRejectsBadDocuments(t *testing.T) {
	_, err := file.NewTemplateRepository([]byte("templates:\n  X:\n    PL03: []\n"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = file.NewTemplateRepository([]byte("charts:\n  u: [{code: '1', colour: red}]\n"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = file.LoadTemplateRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
