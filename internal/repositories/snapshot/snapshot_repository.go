// Package snapshot stores ledgers, datasets, trial balances and reports as parquet
// objects in a blob store.
package snapshot

import (
	"context"
	"fmt"

	"github.com/SscSPs/mof_report_service/internal/adapters/parquetio"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
)

type snapshotRepository struct {
	store portsrepo.BlobStore
}

// NewSnapshotRepository wraps store with the parquet codec.
func NewSnapshotRepository(store portsrepo.BlobStore) portsrepo.SnapshotRepositoryFacade {
	return &snapshotRepository{store: store}
}

var _ portsrepo.SnapshotRepositoryFacade = (*snapshotRepository)(nil)

func (r *snapshotRepository) Bucket() string { return r.store.Bucket() }

func (r *snapshotRepository) LoadLedger(ctx context.Context, key string) ([]domain.TransactionRow, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rows, err := parquetio.DecodeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return rows, nil
}

func (r *snapshotRepository) LoadTrialBalance(ctx context.Context, key string) ([]domain.TrialBalanceLine, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	lines, err := parquetio.DecodeTrialBalance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return lines, nil
}

func (r *snapshotRepository) LoadDataset(ctx context.Context, key string) (*domain.Dataset, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	ds, err := parquetio.DecodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return ds, nil
}

func (r *snapshotRepository) put(ctx context.Context, key string, data []byte, err error) error {
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Put(ctx, key, data, parquetio.ContentType)
}

func (r *snapshotRepository) SaveLedger(ctx context.Context, key string, rows []domain.TransactionRow) error {
	data, err := parquetio.EncodeLedger(rows)
	return r.put(ctx, key, data, err)
}

func (r *snapshotRepository) SaveDataset(ctx context.Context, key string, ds *domain.Dataset) error {
	data, err := parquetio.EncodeDataset(ds)
	return r.put(ctx, key, data, err)
}

func (r *snapshotRepository) SaveTrialBalance(ctx context.Context, key string, tb *domain.TrialBalance) error {
	data, err := parquetio.EncodeTrialBalance(tb)
	return r.put(ctx, key, data, err)
}

func (r *snapshotRepository) SaveReport(ctx context.Context, key string, report *domain.Report) error {
	data, err := parquetio.EncodeReport(report)
	return r.put(ctx, key, data, err)
}

func (r *snapshotRepository) SavePNT11(ctx context.Context, key string, rows []domain.PNT11Row) error {
	data, err := parquetio.EncodePNT11(rows)
	return r.put(ctx, key, data, err)
}
