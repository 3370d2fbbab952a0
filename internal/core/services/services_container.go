package services

import (
	"time"

	"github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/core/statements"
	"github.com/SscSPs/mof_report_service/internal/ingest"
	"github.com/SscSPs/mof_report_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos repositories.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	ordering, err := statements.ParseOrdering(cfg.TotalsOrdering)
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}
	container.FinancialReport = NewFinancialReportService(
		repos.TemplateRepo,
		repos.SnapshotRepo,
		WithOrdering(ordering),
		WithBalanceSheetClosingNet(cfg.BalanceSheetClosingNet),
		WithStoragePrefix(cfg.StoragePrefix),
	)
	container.DataImport = NewDataImportService(
		repos.SnapshotRepo,
		WithFileFetcher(ingest.NewDownloader(time.Duration(cfg.DownloadTimeoutSeconds)*time.Second)),
		WithImportStoragePrefix(cfg.StoragePrefix),
	)
	container.PNT11 = NewPNT11Service(
		repos.SnapshotRepo,
		WithPNT11StoragePrefix(cfg.StoragePrefix),
	)
	return container, nil
}
