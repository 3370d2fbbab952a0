package services

import (
	"context"

	"github.com/SscSPs/mof_report_service/internal/dto"
)

// PNT11SummarizerSvc builds the PNT-11 motor portfolio summary from imported
// premium, claim and reserve snapshots.
type PNT11SummarizerSvc interface {
	SummarizePNT11(ctx context.Context, req dto.PNT11Request) (*dto.ImportResult, error)
}

// PNT11SvcFacade combines the PNT-11 operations.
type PNT11SvcFacade interface {
	PNT11SummarizerSvc
}
