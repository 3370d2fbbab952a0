package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/mof_report_service/internal/adapters/storage/localstore"
	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/core/services"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/repositories/snapshot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindTemplate(ctx context.Context, kind domain.ReportKind, companyType string) ([]domain.TemplateLine, error) {
	args := m.Called(ctx, kind, companyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TemplateLine), args.Error(1)
}

func (m *MockTemplateRepository) FindChartOfAccounts(ctx context.Context, userID string) ([]domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccountsEntry), args.Error(1)
}

var _ portsrepo.TemplateRepositoryFacade = (*MockTemplateRepository)(nil)

// --- Fixtures ---

func legs(debit, credit string, amount int64, on time.Time) []domain.TransactionRow {
	return []domain.TransactionRow{
		{DebitAccount: debit, CreditAccount: credit, DebitAmount: decimal.NewFromInt(amount), InvoiceDate: on},
		{DebitAccount: credit, CreditAccount: debit, CreditAmount: decimal.NewFromInt(amount), InvoiceDate: on},
	}
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

// ledger: capital in January, a credit sale and a cash expense in March, then
// the closing entries through 911.
func ledger() []domain.TransactionRow {
	var rows []domain.TransactionRow
	rows = append(rows, legs("111", "411", 1000, day(time.January, 10))...)
	rows = append(rows, legs("131", "511", 500, day(time.March, 5))...)
	rows = append(rows, legs("642", "111", 200, day(time.March, 6))...)
	rows = append(rows, legs("511", "911", 500, day(time.March, 31))...)
	rows = append(rows, legs("911", "642", 200, day(time.March, 31))...)
	rows = append(rows, legs("911", "421", 300, day(time.March, 31))...)
	return rows
}

func chart() []domain.ChartOfAccountsEntry {
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

func templates() domain.Templates {
	return domain.Templates{
		domain.ReportBalanceSheet: {
			{LineCode: "1", Code: "110", CalculationFormula: "DUNO(110)"},
			{LineCode: "2", Code: "130", CalculationFormula: "DUNO(130)+DUCO(130)"},
			{LineCode: "3", Code: "270", IsTotalLine: true, CalculationFormula: "[110]+[130]"},
			{LineCode: "4", Code: "411", CalculationFormula: "-DUCO(411)"},
			{LineCode: "5", Code: "421", CalculationFormula: "-DUNO(421)-DUCO(421)"},
			{LineCode: "6", Code: "440", IsTotalLine: true, CalculationFormula: "[411]+[421]"},
		},
		domain.ReportPL01: {
			{LineCode: "1", Code: "01", CalculationFormula: "-PhatSinhCO"},
			{LineCode: "2", Code: "02", CalculationFormula: "-PhatSinhNO"},
			{LineCode: "3", Code: "50", IsTotalLine: true, CalculationFormula: "[01]-[02]"},
		},
		domain.ReportPL02: {
			{LineCode: "1", Code: "60", IsTotalLine: true, CalculationFormula: "[01]-[02]"},
		},
		domain.ReportCF01: {
			{LineCode: "1", Code: "01", CalculationFormula: "PL(50)"},
		},
		domain.ReportCF02: {},
	}
}

const (
	glKey      = "report-software/mof/acme/analysis_data/acme_GL_IMPORT_20240401000000.parquet"
	openingKey = "report-software/mof/acme/financial_reports/acme_BCTC_2023YEARLY1_TRIAL_BALANCE.parquet"
)

// --- Test Suite ---
type FinancialReportServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockTemplate *MockTemplateRepository
	snapshots    portsrepo.SnapshotRepositoryFacade
	service      portssvc.FinancialReportSvcFacade
}

func (suite *FinancialReportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store, err := localstore.New(filepath.Join(suite.T().TempDir(), "reports"))
	suite.Require().NoError(err)
	suite.snapshots = snapshot.NewSnapshotRepository(store)
	suite.Require().NoError(suite.snapshots.SaveLedger(suite.ctx, glKey, ledger()))

	suite.mockTemplate = new(MockTemplateRepository)
	suite.service = services.NewFinancialReportService(suite.mockTemplate, suite.snapshots)
}

func TestFinancialReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialReportServiceTestSuite))
}

func (suite *FinancialReportServiceTestSuite) expectTemplates() {
	for kind, lines := range templates() {
		suite.mockTemplate.On("FindTemplate", mock.Anything, kind, "NONLIFE").Return(lines, nil).Once()
	}
}

func request() dto.FinancialStatementRequest {
	return dto.FinancialStatementRequest{
		UserID:            "u-1",
		UserName:          "acme",
		ReportCode:        "BCTC",
		ReportYear:        2024,
		ReportPeriodCode:  "MONTHLY",
		ReportPeriodValue: 3,
		TypeCompany:       "NONLIFE",
		GLDataSettings: dto.GLDataSettings{
			TableName:   "https://s3.example.com/reports/" + glKey,
			ValidStatus: dto.StatusValidated,
			SettingCols: dto.SettingCols{VarSingleSettings: []dto.SingleVariableSetting{{
				DebitAccount:  []dto.AccountColumnSetting{{ValidMapping: dto.StatusValidated}},
				CreditAccount: []dto.AccountColumnSetting{{ValidStatus: dto.StatusValidated}},
			}}},
		},
	}
}

func (suite *FinancialReportServiceTestSuite) TestRun_Success() {
	suite.expectTemplates()
	suite.mockTemplate.On("FindChartOfAccounts", mock.Anything, "u-1").Return(chart(), nil).Once()

	run, err := suite.service.Run(suite.ctx, request())

	suite.Require().NoError(err)
	suite.Equal("reports", run.Bucket)
	suite.False(run.Summary.HasOpeningBalance)
	suite.Equal(6, run.Summary.BalanceSheetRecords)
	suite.Equal(0, run.Summary.CF02Records)

	// CF02 has no lines and is not stored
	types := make([]string, len(run.SavedFiles))
	for i, f := range run.SavedFiles {
		types[i] = f.Type
	}
	suite.Equal([]string{"trial_balance", "balance_sheet", "pl01", "pl02", "cf01"}, types)
	suite.Equal("acme_BCTC_2024MONTHLY3_BALANCE_SHEET.parquet", run.SavedFiles[1].FileName)
	suite.Equal("report-software/mof/acme/financial_reports/acme_BCTC_2024MONTHLY3_BALANCE_SHEET.parquet", run.SavedFiles[1].Key)

	// the stored trial balance reads back as an opening balance
	lines, err := suite.snapshots.LoadTrialBalance(suite.ctx, run.SavedFiles[0].Key)
	suite.Require().NoError(err)
	suite.Len(lines, run.Summary.TrialBalanceRecords)

	suite.True(decimal.NewFromInt(300).Equal(run.Statements.PL01.Amount("50")))
	suite.mockTemplate.AssertExpectations(suite.T())
}

func (suite *FinancialReportServiceTestSuite) TestRun_WithOpeningBalance() {
	opening := &domain.TrialBalance{Lines: []domain.TrialBalanceLine{{
		TrialBalanceKey: domain.TrialBalanceKey{Account: "111", Subledger: "111", BalanceSheet: "110"},
		ClosingDebit:    decimal.NewFromInt(50),
		ClosingNet:      decimal.NewFromInt(50),
	}, {
		TrialBalanceKey: domain.TrialBalanceKey{Account: "411", Subledger: "411", BalanceSheet: "411"},
		ClosingCredit:   decimal.NewFromInt(50),
		ClosingNet:      decimal.NewFromInt(-50),
	}}}
	suite.Require().NoError(suite.snapshots.SaveTrialBalance(suite.ctx, openingKey, opening))
	suite.expectTemplates()
	suite.mockTemplate.On("FindChartOfAccounts", mock.Anything, "u-1").Return(chart(), nil).Once()

	req := request()
	req.BeginingTrialBalance = &dto.OpeningBalanceSettings{TableName: openingKey, ValidStatus: dto.StatusCompleted}
	run, err := suite.service.Run(suite.ctx, req)

	suite.Require().NoError(err)
	suite.True(run.Summary.HasOpeningBalance)
	suite.True(decimal.NewFromInt(850).Equal(run.Statements.BalanceSheet.Amount("110")))
}

func (suite *FinancialReportServiceTestSuite) TestRun_MissingOpeningSnapshotContinues() {
	suite.expectTemplates()
	suite.mockTemplate.On("FindChartOfAccounts", mock.Anything, "u-1").Return(chart(), nil).Once()

	req := request()
	req.BeginingTrialBalance = &dto.OpeningBalanceSettings{TableName: "missing.parquet", ValidStatus: dto.StatusCompleted}
	run, err := suite.service.Run(suite.ctx, req)

	suite.Require().NoError(err)
	suite.False(run.Summary.HasOpeningBalance)
}

func (suite *FinancialReportServiceTestSuite) TestRun_Preconditions() {
	cases := []struct {
		name   string
		mutate func(*dto.FinancialStatementRequest)
		target error
		msg    string
	}{
		{"gl not validated", func(r *dto.FinancialStatementRequest) { r.GLDataSettings.ValidStatus = "Draft" }, apperrors.ErrPrecondition, "GL_DATA needs to be validated before processing"},
		{"no mapping settings", func(r *dto.FinancialStatementRequest) { r.GLDataSettings.SettingCols.VarSingleSettings = nil }, apperrors.ErrPrecondition, "GL_DATA mapping settings are required"},
		{"debit not validated", func(r *dto.FinancialStatementRequest) {
			r.GLDataSettings.SettingCols.VarSingleSettings[0].DebitAccount[0].ValidMapping = ""
		}, apperrors.ErrPrecondition, "DEBIT_ACC mapping must be validated before processing Trial Balance"},
		{"credit missing", func(r *dto.FinancialStatementRequest) {
			r.GLDataSettings.SettingCols.VarSingleSettings[0].CreditAccount = nil
		}, apperrors.ErrPrecondition, "CREDIT_ACC mapping must be validated before processing Trial Balance"},
		{"opening not completed", func(r *dto.FinancialStatementRequest) {
			r.BeginingTrialBalance = &dto.OpeningBalanceSettings{TableName: openingKey, ValidStatus: "dang_xu_ly"}
		}, apperrors.ErrPrecondition, "Beginning Trial Balance data needs to be completed before processing"},
		{"bad period", func(r *dto.FinancialStatementRequest) { r.ReportPeriodValue = 13 }, apperrors.ErrValidation, "invalid month 13"},
		{"missing snapshot", func(r *dto.FinancialStatementRequest) { r.GLDataSettings.TableName = "nope.parquet" }, apperrors.ErrPrecondition, "was not found"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			req := request()
			tc.mutate(&req)

			_, err := suite.service.Run(suite.ctx, req)

			suite.Require().Error(err)
			suite.True(errors.Is(err, tc.target), err.Error())
			suite.Contains(err.Error(), tc.msg)
		})
	}
	suite.mockTemplate.AssertNotCalled(suite.T(), "FindChartOfAccounts", mock.Anything, mock.Anything)
}

func (suite *FinancialReportServiceTestSuite) TestRun_EmptyChart() {
	suite.mockTemplate.On("FindChartOfAccounts", mock.Anything, "u-1").Return([]domain.ChartOfAccountsEntry{}, nil).Once()

	_, err := suite.service.Run(suite.ctx, request())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPrecondition)
}

func (suite *FinancialReportServiceTestSuite) TestGenerate_TemplateFailure() {
	suite.mockTemplate.On("FindTemplate", mock.Anything, domain.ReportBalanceSheet, "LIFE").Return(nil, errors.New("db down")).Once()

	period, err := domain.NewPeriod(2024, "MONTHLY", 3)
	suite.Require().NoError(err)
	_, err = suite.service.Generate(suite.ctx, domain.GenerateInput{Transactions: ledger(), Chart: chart(), CompanyType: "LIFE", Period: period})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "db down")
}

func (suite *FinancialReportServiceTestSuite) TestGenerate_Unbalanced() {
	bad := templates()
	bad[domain.ReportBalanceSheet] = []domain.TemplateLine{
		{LineCode: "1", Code: "110", CalculationFormula: "DUNO(110)"},
		{LineCode: "2", Code: "270", IsTotalLine: true, CalculationFormula: "[110]"},
		{LineCode: "3", Code: "440", IsTotalLine: true, CalculationFormula: ""},
	}
	for kind, lines := range bad {
		suite.mockTemplate.On("FindTemplate", mock.Anything, kind, "NONLIFE").Return(lines, nil).Once()
	}

	period, err := domain.NewPeriod(2024, "MONTHLY", 3)
	suite.Require().NoError(err)
	_, err = suite.service.Generate(suite.ctx, domain.GenerateInput{Transactions: ledger(), Chart: chart(), CompanyType: "NONLIFE", Period: period})

	var recon *apperrors.ReconciliationError
	suite.Require().ErrorAs(err, &recon)
	suite.Equal("balance_sheet", recon.Check)
	suite.ErrorIs(err, apperrors.ErrReconciliation)
}
