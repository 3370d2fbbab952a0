package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/ingest"
	"github.com/shopspring/decimal"
)

// FileFetcher downloads an uploaded file.
type FileFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*ingest.File, error)
}

// dataImportService implements portssvc.DataImportSvcFacade
type dataImportService struct {
	BaseService
	snapshotRepo  portsrepo.SnapshotRepositoryFacade
	fetcher       FileFetcher
	storagePrefix string
	now           func() time.Time
}

// DataImportServiceOption is a functional option for configuring the data import service
type DataImportServiceOption func(*dataImportService)

// WithFileFetcher replaces the HTTP downloader.
func WithFileFetcher(f FileFetcher) DataImportServiceOption {
	return func(s *dataImportService) {
		s.fetcher = f
	}
}

// WithImportStoragePrefix sets the key prefix for imported snapshots.
func WithImportStoragePrefix(prefix string) DataImportServiceOption {
	return func(s *dataImportService) {
		if prefix != "" {
			s.storagePrefix = prefix
		}
	}
}

// WithClock sets the time source used to stamp imports.
func WithClock(now func() time.Time) DataImportServiceOption {
	return func(s *dataImportService) {
		s.now = now
	}
}

// NewDataImportService creates a new data import service with the provided options
func NewDataImportService(snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...DataImportServiceOption) portssvc.DataImportSvcFacade {
	svc := &dataImportService{
		snapshotRepo:  snapshotRepo,
		fetcher:       ingest.NewDownloader(ingest.DefaultDownloadTimeout),
		storagePrefix: DefaultStoragePrefix,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DataImportSvcFacade = (*dataImportService)(nil)

// load downloads, parses and maps the uploaded file.
func (s *dataImportService) load(ctx context.Context, settings dto.ImportSettings) (*ingest.File, *ingest.MappedTable, error) {
	if strings.TrimSpace(settings.URL) == "" {
		return nil, nil, fmt.Errorf("%w: url is required", apperrors.ErrValidation)
	}

	started := time.Now()
	file, err := s.fetcher.Fetch(ctx, settings.URL)
	if err != nil {
		s.LogError(ctx, err, "Failed to download uploaded file")
		return nil, nil, err
	}
	s.LogStage(ctx, "download", started, slog.String("file", file.Name), slog.Int("bytes", len(file.Data)))

	started = time.Now()
	raw, err := ingest.Parse(file.Data, file.Ext)
	if err != nil {
		s.LogError(ctx, err, "Failed to parse uploaded file", slog.String("file", file.Name))
		return nil, nil, err
	}
	mapped := ingest.MapColumns(raw, settings.SettingCols)
	s.LogStage(ctx, "parse", started, slog.Int("rows", mapped.Rows), slog.Int("columns", len(mapped.Names)))
	return file, mapped, nil
}

// ValidateData runs the data checks on the INFO columns of an uploaded file.
func (s *dataImportService) ValidateData(ctx context.Context, req dto.ImportDataRequest) (*ingest.ValidationReport, error) {
	settings := req.JSONSettings
	_, mapped, err := s.load(ctx, settings)
	if err != nil {
		return nil, err
	}

	report := ingest.Analyze(mapped, settings.SettingCols, settings.TemplateName)
	s.LogInfo(ctx, "Data validation finished",
		slog.String("user_name", settings.UserName),
		slog.String("template", settings.TemplateName),
		slog.Bool("valid", report.IsValid()))
	return report, nil
}

// ImportData converts an uploaded file with its column settings and stores
// it as a parquet snapshot.
func (s *dataImportService) ImportData(ctx context.Context, req dto.ImportDataRequest) (*dto.ImportResult, error) {
	settings := req.JSONSettings
	if settings.ValidStatus == dto.StatusValidated {
		return nil, fmt.Errorf("%w: Data has been validated", apperrors.ErrValidation)
	}
	if dups := ingest.DuplicateImportNames(settings.SettingCols); len(dups) > 0 {
		return nil, fmt.Errorf("%w: Vui lòng không nhập trùng tên (dòng 2): %s", apperrors.ErrDuplicate, strings.Join(dups, ", "))
	}
	if len(settings.SettingCols) == 0 {
		return nil, fmt.Errorf("%w: Vui lòng lưu thiết lập đã chuẩn hoá trước khi import", apperrors.ErrPrecondition)
	}

	file, mapped, err := s.load(ctx, settings)
	if err != nil {
		return nil, err
	}
	if len(mapped.Names) == 0 {
		return nil, fmt.Errorf("%w: none of the mapped columns were found in %s", apperrors.ErrValidation, file.Name)
	}

	started := time.Now()
	ds := ingest.Convert(mapped, settings.SettingCols)
	tableName := ingest.ImportTableName(settings.UserName, settings.TemplateName, file.Name, s.now())
	fileName := tableName + ".parquet"
	key := path.Join(s.storagePrefix, settings.UserName, "analysis_data", fileName)
	if err := s.snapshotRepo.SaveDataset(ctx, key, ds); err != nil {
		s.LogError(ctx, err, "Failed to store imported data", slog.String("key", key))
		return nil, fmt.Errorf("failed to store imported data: %w", err)
	}
	s.LogStage(ctx, "store", started, slog.String("key", key), slog.Int("rows", ds.Len()))
	s.logLedgerTotals(ctx, ds)

	return &dto.ImportResult{
		TableName: tableName,
		S3Bucket:  s.snapshotRepo.Bucket(),
		S3Key:     key,
		FileName:  fileName,
		Rows:      ds.Len(),
	}, nil
}

// logLedgerTotals logs the debit and credit totals of a GL import so an
// unbalanced upload shows up before any statement run.
func (s *dataImportService) logLedgerTotals(ctx context.Context, ds *domain.Dataset) {
	rows, err := ingest.LedgerFromDataset(ds)
	if err != nil {
		return
	}
	debit, credit := decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.DebitAmount)
		credit = credit.Add(r.CreditAmount)
	}
	if !debit.Equal(credit) {
		s.LogWarn(ctx, "Imported ledger does not balance",
			slog.String("total_debit", debit.StringFixed(2)),
			slog.String("total_credit", credit.StringFixed(2)))
		return
	}
	s.LogDebug(ctx, "Imported ledger balances", slog.String("total", debit.StringFixed(2)))
}
