// Package bootstrap builds the storage and repository layer shared by the
// HTTP server and the command-line tool.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mof_report_service/internal/adapters/storage/localstore"
	"github.com/SscSPs/mof_report_service/internal/adapters/storage/s3store"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	"github.com/SscSPs/mof_report_service/internal/platform/config"
	"github.com/SscSPs/mof_report_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/mof_report_service/internal/repositories/file"
	"github.com/SscSPs/mof_report_service/internal/repositories/snapshot"
	"github.com/SscSPs/mof_report_service/pkg/database"
)

// NewBlobStore returns the S3 store when a bucket is configured and a local
// directory store otherwise.
func NewBlobStore(ctx context.Context, cfg *config.Config) (portsrepo.BlobStore, error) {
	if cfg.S3Bucket != "" {
		return s3store.New(ctx, s3store.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return localstore.New(cfg.LocalStoreDir)
}

// NewRepositoryProvider wires the template and snapshot repositories. Templates
// come from TEMPLATES_FILE when it is set and from Postgres otherwise. The
// returned func releases the database pool, if any.
func NewRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	noop := func() {}

	store, err := NewBlobStore(ctx, cfg)
	if err != nil {
		return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	logger.Info("Blob store ready", slog.String("bucket", store.Bucket()))

	if cfg.TemplatesFile != "" {
		templates, err := file.LoadTemplateRepository(cfg.TemplatesFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		logger.Info("Report templates loaded from file", slog.String("path", cfg.TemplatesFile))
		return portsrepo.RepositoryProvider{
			TemplateRepo: templates,
			SnapshotRepo: snapshot.NewSnapshotRepository(store),
		}, noop, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, noop, err
		}
	}

	return pgsql.NewRepositoryProvider(dbPool, store), func() { database.ClosePgxPool(dbPool) }, nil
}
