package repositories

import (
	"context"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// TemplateReader defines read operations for report templates.
type TemplateReader interface {
	// FindTemplate returns the lines of one report template for a company type.
	// A kind without any line for the company type returns an empty slice.
	FindTemplate(ctx context.Context, kind domain.ReportKind, companyType string) ([]domain.TemplateLine, error)
}

// ChartOfAccountsReader defines read operations for the chart of accounts.
type ChartOfAccountsReader interface {
	// FindChartOfAccounts returns the chart owned by userID.
	FindChartOfAccounts(ctx context.Context, userID string) ([]domain.ChartOfAccountsEntry, error)
}

// TemplateRepositoryFacade combines template and chart access.
type TemplateRepositoryFacade interface {
	TemplateReader
	ChartOfAccountsReader
}
