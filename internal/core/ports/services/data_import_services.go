package services

import (
	"context"

	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/ingest"
)

// DataValidatorSvc checks an uploaded file against its column settings.
type DataValidatorSvc interface {
	ValidateData(ctx context.Context, req dto.ImportDataRequest) (*ingest.ValidationReport, error)
}

// DataImporterSvc converts an uploaded file and stores it as a snapshot.
type DataImporterSvc interface {
	ImportData(ctx context.Context, req dto.ImportDataRequest) (*dto.ImportResult, error)
}

// DataImportSvcFacade combines the upload operations.
type DataImportSvcFacade interface {
	DataValidatorSvc
	DataImporterSvc
}
