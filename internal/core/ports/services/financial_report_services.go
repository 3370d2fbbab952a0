package services

import (
	"context"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/SscSPs/mof_report_service/internal/dto"
)

// StatementGeneratorSvc derives the statement set from loaded inputs.
type StatementGeneratorSvc interface {
	// Generate fetches the templates and chart for the input and runs the
	// pipeline without touching storage.
	Generate(ctx context.Context, in domain.GenerateInput) (*domain.FinancialStatements, error)
}

// FinancialReportRunnerSvc runs a complete request: load snapshots, derive,
// persist the reports.
type FinancialReportRunnerSvc interface {
	Run(ctx context.Context, req dto.FinancialStatementRequest) (*domain.ReportRun, error)
}

// FinancialReportSvcFacade combines the financial report operations.
type FinancialReportSvcFacade interface {
	StatementGeneratorSvc
	FinancialReportRunnerSvc
}
