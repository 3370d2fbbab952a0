package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	"github.com/SscSPs/mof_report_service/internal/models"
	"github.com/SscSPs/mof_report_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema holds the report templates and the per-user charts of accounts.
const Schema = "frrs"

// templateTables maps each report kind to its template table.
var templateTables = map[domain.ReportKind]string{
	domain.ReportBalanceSheet: "mof_balance_sheet",
	domain.ReportPL01:         "mof_pl_01",
	domain.ReportPL02:         "mof_pl_02",
	domain.ReportCF01:         "mof_cf_01",
	domain.ReportCF02:         "mof_cf_02",
}

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for templates and charts of accounts.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// FindTemplate retrieves the template lines of one report for a company type.
func (r *PgxTemplateRepository) FindTemplate(ctx context.Context, kind domain.ReportKind, companyType string) ([]domain.TemplateLine, error) {
	table, ok := templateTables[kind]
	if !ok {
		return nil, fmt.Errorf("no template table for report kind %s", kind)
	}
	// table comes from the fixed map above, never from input
	query := fmt.Sprintf(`
		SELECT "lineCode"::text, "lineName", code::text, "isTotalLine"::text, "calculationFormula", "noteRef", type
		FROM %s.%s
		WHERE type = $1
		ORDER BY "lineCode";
	`, Schema, table)

	rows, err := r.Pool.Query(ctx, query, companyType)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s template: %w", kind, err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TemplateLine, error) {
		var line models.TemplateLine
		err := row.Scan(
			&line.LineCode,
			&line.LineName,
			&line.Code,
			&line.IsTotalLine,
			&line.CalculationFormula,
			&line.NoteRef,
			&line.Type,
		)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s template: %w", kind, err)
	}

	return mapping.ToDomainTemplateLineSlice(modelLines), nil
}

// FindChartOfAccounts retrieves the chart of accounts created by userID.
func (r *PgxTemplateRepository) FindChartOfAccounts(ctx context.Context, userID string) ([]domain.ChartOfAccountsEntry, error) {
	query := `
		SELECT code::text, "accountSM", "accountBS", "accountPL", "createdBy", "createdAt"
		FROM frrs.mof_gl_companies
		WHERE "createdBy" = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart of accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChartOfAccountsEntry, error) {
		var entry models.ChartOfAccountsEntry
		err := row.Scan(
			&entry.Code,
			&entry.AccountSM,
			&entry.AccountBS,
			&entry.AccountPL,
			&entry.CreatedBy,
			&entry.CreatedAt,
		)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan chart of accounts for user %s: %w", userID, err)
	}

	return mapping.ToDomainChartOfAccounts(modelEntries), nil
}
