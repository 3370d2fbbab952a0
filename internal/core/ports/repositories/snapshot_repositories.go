package repositories

import (
	"context"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// SnapshotReader loads columnar snapshots from the blob store.
type SnapshotReader interface {
	LoadLedger(ctx context.Context, key string) ([]domain.TransactionRow, error)
	LoadTrialBalance(ctx context.Context, key string) ([]domain.TrialBalanceLine, error)
	// LoadDataset reads any flat snapshot with its columns as stored.
	LoadDataset(ctx context.Context, key string) (*domain.Dataset, error)
}

// SnapshotWriter persists columnar snapshots and derived reports.
type SnapshotWriter interface {
	SaveLedger(ctx context.Context, key string, rows []domain.TransactionRow) error
	SaveDataset(ctx context.Context, key string, ds *domain.Dataset) error
	SaveTrialBalance(ctx context.Context, key string, tb *domain.TrialBalance) error
	SaveReport(ctx context.Context, key string, report *domain.Report) error
	SavePNT11(ctx context.Context, key string, rows []domain.PNT11Row) error
}

// SnapshotRepositoryFacade combines snapshot reads and writes.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
	// Bucket names the blob container behind the snapshots.
	Bucket() string
}
