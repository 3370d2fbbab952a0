package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/SscSPs/mof_report_service/internal/adapters/storage"
	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/core/statements"
	"github.com/SscSPs/mof_report_service/internal/dto"
)

// DefaultStoragePrefix is the root of every object the service writes.
const DefaultStoragePrefix = "report-software/mof"

// financialReportService implements portssvc.FinancialReportSvcFacade
type financialReportService struct {
	BaseService
	templateRepo  portsrepo.TemplateRepositoryFacade
	snapshotRepo  portsrepo.SnapshotRepositoryFacade
	ordering          statements.Ordering
	closingNetDetails bool
	storagePrefix     string
}

// FinancialReportServiceOption is a functional option for configuring the financial report service
type FinancialReportServiceOption func(*financialReportService)

// WithOrdering sets how total lines are sequenced.
func WithOrdering(o statements.Ordering) FinancialReportServiceOption {
	return func(s *financialReportService) {
		s.ordering = o
	}
}

// WithBalanceSheetClosingNet makes balance sheet detail lines without
// DUNO/DUCO terms take the closing net of their code.
func WithBalanceSheetClosingNet(enabled bool) FinancialReportServiceOption {
	return func(s *financialReportService) {
		s.closingNetDetails = enabled
	}
}

// WithStoragePrefix sets the key prefix for persisted reports.
func WithStoragePrefix(prefix string) FinancialReportServiceOption {
	return func(s *financialReportService) {
		if prefix != "" {
			s.storagePrefix = prefix
		}
	}
}

// NewFinancialReportService creates a new financial report service with the provided options
func NewFinancialReportService(templateRepo portsrepo.TemplateRepositoryFacade, snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...FinancialReportServiceOption) portssvc.FinancialReportSvcFacade {
	svc := &financialReportService{
		templateRepo:  templateRepo,
		snapshotRepo:  snapshotRepo,
		ordering:      statements.OrderingPriority,
		storagePrefix: DefaultStoragePrefix,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FinancialReportSvcFacade = (*financialReportService)(nil)

func (s *financialReportService) loadTemplates(ctx context.Context, companyType string) (domain.Templates, error) {
	templates := make(domain.Templates, len(domain.TemplateKinds))
	for _, kind := range domain.TemplateKinds {
		lines, err := s.templateRepo.FindTemplate(ctx, kind, companyType)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s template for company type %s: %w", kind, companyType, err)
		}
		if len(lines) == 0 {
			s.LogWarn(ctx, "Report template is empty", slog.String("report", string(kind)), slog.String("company_type", companyType))
		}
		templates[kind] = lines
	}
	return templates, nil
}

// Generate loads the templates for the input's company type and derives the statements.
func (s *financialReportService) Generate(ctx context.Context, in domain.GenerateInput) (*domain.FinancialStatements, error) {
	started := time.Now()
	templates, err := s.loadTemplates(ctx, in.CompanyType)
	if err != nil {
		s.LogError(ctx, err, "Failed to load report templates", slog.String("company_type", in.CompanyType))
		return nil, err
	}
	s.LogStage(ctx, "load_templates", started)

	started = time.Now()
	engine := statements.NewEngine(
		statements.WithOrdering(s.ordering),
		statements.WithClosingNetDetails(s.closingNetDetails),
		statements.WithLogger(s.GetLogger(ctx)))
	fs, err := engine.Generate(in, templates)
	if err != nil {
		s.LogError(ctx, err, "Failed to derive financial statements", slog.String("period", in.Period.Suffix()))
		return nil, err
	}
	s.LogStage(ctx, "derive_statements", started,
		slog.Int("transactions", len(in.Transactions)),
		slog.Int("trial_balance_lines", len(fs.TrialBalance.Lines)))
	return fs, nil
}

// checkRequest enforces the request preconditions before anything is loaded.
func checkRequest(req dto.FinancialStatementRequest) (domain.Period, error) {
	period, err := domain.NewPeriod(req.ReportYear, req.ReportPeriodCode, req.ReportPeriodValue)
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	gl := req.GLDataSettings
	if gl.ValidStatus != dto.StatusValidated {
		return domain.Period{}, fmt.Errorf("%w: GL_DATA needs to be validated before processing", apperrors.ErrPrecondition)
	}
	if len(gl.SettingCols.VarSingleSettings) == 0 {
		return domain.Period{}, fmt.Errorf("%w: GL_DATA mapping settings are required", apperrors.ErrPrecondition)
	}

	debitValidated, creditValidated := false, false
	for _, v := range gl.SettingCols.VarSingleSettings {
		if len(v.DebitAccount) > 0 && v.DebitAccount[0].Validated() {
			debitValidated = true
		}
		if len(v.CreditAccount) > 0 && v.CreditAccount[0].Validated() {
			creditValidated = true
		}
	}
	if !debitValidated {
		return domain.Period{}, fmt.Errorf("%w: DEBIT_ACC mapping must be validated before processing Trial Balance", apperrors.ErrPrecondition)
	}
	if !creditValidated {
		return domain.Period{}, fmt.Errorf("%w: CREDIT_ACC mapping must be validated before processing Trial Balance", apperrors.ErrPrecondition)
	}

	if ob := req.BeginingTrialBalance; ob != nil && ob.ValidStatus != dto.StatusCompleted {
		return domain.Period{}, fmt.Errorf("%w: Beginning Trial Balance data needs to be completed before processing", apperrors.ErrPrecondition)
	}
	return period, nil
}

// Run checks the request, loads the GL snapshot and the optional opening
// balance, derives the statements and stores every non-empty report.
func (s *financialReportService) Run(ctx context.Context, req dto.FinancialStatementRequest) (*domain.ReportRun, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("user_name", req.UserName),
		slog.String("report_code", req.ReportCode),
		slog.String("company_type", req.TypeCompany))

	period, err := checkRequest(req)
	if err != nil {
		logger.Warn("Financial statement request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	bucket := s.snapshotRepo.Bucket()
	started := time.Now()
	glKey := storage.ExtractKey(req.GLDataSettings.TableName, bucket)
	rows, err := s.snapshotRepo.LoadLedger(ctx, glKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to load GL snapshot", slog.String("key", glKey))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: GL_DATA snapshot %s was not found", apperrors.ErrPrecondition, glKey)
		}
		return nil, fmt.Errorf("failed to load GL snapshot: %w", err)
	}
	s.LogStage(ctx, "load_gl", started, slog.Int("rows", len(rows)))

	var opening []domain.TrialBalanceLine
	if ob := req.BeginingTrialBalance; ob != nil {
		started = time.Now()
		key := storage.ExtractKey(ob.TableName, bucket)
		opening, err = s.snapshotRepo.LoadTrialBalance(ctx, key)
		if err != nil {
			// the run continues without an opening balance
			logger.Warn("Could not load opening balance data", slog.String("key", key), slog.String("error", err.Error()))
			opening = nil
		} else {
			s.LogStage(ctx, "load_opening_balance", started, slog.Int("lines", len(opening)))
		}
	}

	started = time.Now()
	chart, err := s.templateRepo.FindChartOfAccounts(ctx, req.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	if len(chart) == 0 {
		return nil, fmt.Errorf("%w: no chart of accounts is configured for user %s", apperrors.ErrPrecondition, req.UserID)
	}
	s.LogStage(ctx, "load_chart", started, slog.Int("accounts", len(chart)))

	fs, err := s.Generate(ctx, domain.GenerateInput{
		Transactions:   rows,
		Chart:          chart,
		CompanyType:    req.TypeCompany,
		Period:         period,
		OpeningBalance: opening,
	})
	if err != nil {
		return nil, err
	}

	started = time.Now()
	run, err := s.persist(ctx, req, fs)
	if err != nil {
		s.LogError(ctx, err, "Failed to store financial reports")
		return nil, err
	}
	run.Summary.HasOpeningBalance = opening != nil
	s.LogStage(ctx, "persist", started, slog.Int("files", len(run.SavedFiles)))

	logger.Info("Financial reports processed", slog.String("period", period.Suffix()))
	return run, nil
}

func (s *financialReportService) persist(ctx context.Context, req dto.FinancialStatementRequest, fs *domain.FinancialStatements) (*domain.ReportRun, error) {
	base := fmt.Sprintf("%s_%s_%d%s%d", req.UserName, req.ReportCode, req.ReportYear, req.ReportPeriodCode, req.ReportPeriodValue)
	dir := path.Join(s.storagePrefix, req.UserName, "financial_reports")
	run := &domain.ReportRun{
		Bucket:     s.snapshotRepo.Bucket(),
		SavedFiles: []domain.SavedFile{},
		Statements: fs,
		Summary: domain.RunSummary{
			TrialBalanceRecords: len(fs.TrialBalance.Lines),
			BalanceSheetRecords: fs.BalanceSheet.Len(),
			PL01Records:         fs.PL01.Len(),
			PL02Records:         fs.PL02.Len(),
			CF01Records:         fs.CF01.Len(),
			CF02Records:         fs.CF02.Len(),
		},
	}

	record := func(kind domain.ReportKind, save func(key string) error) error {
		fileName := fmt.Sprintf("%s_%s.parquet", base, kind)
		key := path.Join(dir, fileName)
		if err := save(key); err != nil {
			return fmt.Errorf("failed to store %s: %w", kind, err)
		}
		run.SavedFiles = append(run.SavedFiles, domain.SavedFile{Type: kind.ArtifactType(), FileName: fileName, Key: key})
		return nil
	}

	if len(fs.TrialBalance.Lines) > 0 {
		if err := record(domain.ReportTrialBalance, func(key string) error {
			return s.snapshotRepo.SaveTrialBalance(ctx, key, fs.TrialBalance)
		}); err != nil {
			return nil, err
		}
	}
	for _, report := range []*domain.Report{fs.BalanceSheet, fs.PL01, fs.PL02, fs.CF01, fs.CF02} {
		if report.Len() == 0 {
			continue
		}
		if err := record(report.Kind, func(key string) error {
			return s.snapshotRepo.SaveReport(ctx, key, report)
		}); err != nil {
			return nil, err
		}
	}
	return run, nil
}
