package pgsql

import (
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	"github.com/SscSPs/mof_report_service/internal/repositories/snapshot"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres template repository with the
// snapshot repository over store.
func NewRepositoryProvider(dbPool *pgxpool.Pool, store portsrepo.BlobStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TemplateRepo: newPgxTemplateRepository(dbPool),
		SnapshotRepo: snapshot.NewSnapshotRepository(store),
	}
}
