package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/SscSPs/mof_report_service/internal/adapters/storage"
	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/core/statements"
	"github.com/SscSPs/mof_report_service/internal/dto"
)

// pnt11Service implements portssvc.PNT11SvcFacade
type pnt11Service struct {
	BaseService
	snapshotRepo  portsrepo.SnapshotRepositoryFacade
	storagePrefix string
}

// PNT11ServiceOption is a functional option for configuring the PNT-11 service
type PNT11ServiceOption func(*pnt11Service)

// WithPNT11StoragePrefix sets the key prefix for stored summaries.
func WithPNT11StoragePrefix(prefix string) PNT11ServiceOption {
	return func(s *pnt11Service) {
		if prefix != "" {
			s.storagePrefix = prefix
		}
	}
}

// NewPNT11Service creates a new PNT-11 service with the provided options
func NewPNT11Service(snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...PNT11ServiceOption) portssvc.PNT11SvcFacade {
	svc := &pnt11Service{
		snapshotRepo:  snapshotRepo,
		storagePrefix: DefaultStoragePrefix,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PNT11SvcFacade = (*pnt11Service)(nil)

// pnt11Upload is one of the premium, claim and reserve inputs.
type pnt11Upload struct {
	label    string
	settings dto.PNTJsonSettings
	mapping  domain.PNT11Mapping
}

// pnt11Mapping builds the classification of one upload. The last setting
// given for a variable wins.
func pnt11Mapping(cols dto.PNTSettingCols) (domain.PNT11Mapping, error) {
	var coverage []dto.CoverageSetting
	var vehicles []dto.VehicleTypeSetting
	var ages *dto.AgeGroupSetting
	for _, v := range cols.VarSingleSettings {
		if v.CoverageID != nil {
			coverage = v.CoverageID
		}
		if v.TypeVehicle != nil {
			vehicles = v.TypeVehicle
		}
	}
	for _, v := range cols.VarCateSettings {
		if v.VehicleAgeGroup != nil {
			ages = v.VehicleAgeGroup
		}
	}

	switch {
	case coverage == nil:
		return domain.PNT11Mapping{}, fmt.Errorf("%w: Thiếu cấu hình mapping cho %s", apperrors.ErrPrecondition, domain.ColumnCoverageID)
	case vehicles == nil:
		return domain.PNT11Mapping{}, fmt.Errorf("%w: Thiếu cấu hình mapping cho %s", apperrors.ErrPrecondition, domain.ColumnTypeVehicle)
	case ages == nil:
		return domain.PNT11Mapping{}, fmt.Errorf("%w: Thiếu cấu hình mapping cho %s", apperrors.ErrPrecondition, domain.ColumnVehicleAgeGroup)
	}

	bands, err := statements.NewAgeBands(ages.Edges(), ages.Unit)
	if err != nil {
		return domain.PNT11Mapping{}, err
	}
	m := domain.PNT11Mapping{
		Products:     make(map[string]domain.ProductMapping, len(coverage)),
		VehicleTypes: make(map[string]domain.VehicleTypeMapping, len(vehicles)),
		AgeBands:     bands,
	}
	for _, c := range coverage {
		m.Products[c.Cols] = domain.ProductMapping{Code: c.ProdMofCode, Name: c.ProdMofName}
	}
	for _, v := range vehicles {
		m.VehicleTypes[v.Cols] = domain.VehicleTypeMapping{
			Code: v.PNT11Code, Name: v.PNT11Name, SubCode: v.SubPNT11Code, SubName: v.SubPNT11Name,
		}
	}
	return m, nil
}

// checkPNT11Request enforces the request preconditions before anything is
// loaded and returns the premium, claim and reserve uploads in that order.
func checkPNT11Request(req dto.PNT11Request) ([]pnt11Upload, error) {
	uploads := []pnt11Upload{
		{label: "GWP", settings: req.GWPSettings},
		{label: "CLM", settings: req.ClaimSettings},
		{label: "RES", settings: req.ReserveSettings},
	}
	for i := range uploads {
		u := &uploads[i]
		if u.settings.ValidStatus != dto.StatusValidated {
			return nil, fmt.Errorf("%w: Data in %s needs to be validated before processing", apperrors.ErrPrecondition, u.label)
		}
		m, err := pnt11Mapping(u.settings.SettingCols)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.label, err)
		}
		u.mapping = m
	}

	beg := req.BeginingReport
	if beg != nil && beg.ValidStatus != dto.StatusCompleted {
		return nil, fmt.Errorf("%w: Data in BEG_REPORT needs to be completed before processing", apperrors.ErrPrecondition)
	}
	if beg == nil && req.ReserveSettings.TemplateName != domain.ReserveTemplateWithOpening {
		return nil, fmt.Errorf("%w: Vui lòng sử dụng mẫu %s để có số liệu đầu kỳ!", apperrors.ErrPrecondition, domain.ReserveTemplateWithOpening)
	}
	return uploads, nil
}

// loadDataset reads an imported snapshot; a missing one fails the
// precondition of the run.
func (s *pnt11Service) loadDataset(ctx context.Context, label, table string) (*domain.Dataset, error) {
	started := time.Now()
	key := storage.ExtractKey(table, s.snapshotRepo.Bucket())
	ds, err := s.snapshotRepo.LoadDataset(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot", slog.String("upload", label), slog.String("key", key))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s snapshot %s was not found", apperrors.ErrPrecondition, label, key)
		}
		return nil, fmt.Errorf("failed to load %s snapshot: %w", label, err)
	}
	s.LogStage(ctx, "load_"+label, started, slog.Int("rows", ds.Len()))
	return ds, nil
}

// summarize loads and classifies one upload and sums it per key.
func (s *pnt11Service) summarize(ctx context.Context, u pnt11Upload, withOpening bool) (statements.PNT11Summary, error) {
	ds, err := s.loadDataset(ctx, u.label, u.settings.TableName)
	if err != nil {
		return nil, err
	}
	keys, err := statements.ClassifyPNT11(ds, u.mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u.label, err)
	}

	var summary statements.PNT11Summary
	switch u.label {
	case "GWP":
		summary, err = statements.SummarizePremiums(ds, keys)
	case "CLM":
		summary, err = statements.SummarizeClaims(ds, keys)
	default:
		summary, err = statements.SummarizeReserves(ds, keys, withOpening)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u.label, err)
	}
	return summary, nil
}

// SummarizePNT11 builds the motor portfolio summary by product line, vehicle
// group and age band and stores it as a parquet snapshot.
func (s *pnt11Service) SummarizePNT11(ctx context.Context, req dto.PNT11Request) (*dto.ImportResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("user_name", req.UserName),
		slog.String("report_code", req.ReportCode))

	uploads, err := checkPNT11Request(req)
	if err != nil {
		logger.Warn("PNT-11 request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	// the reserve upload supplies opening reserves only without a previous report
	withOpening := req.BeginingReport == nil && req.ReserveSettings.TemplateName == domain.ReserveTemplateWithOpening
	summaries := make([]statements.PNT11Summary, len(uploads))
	for i, u := range uploads {
		if summaries[i], err = s.summarize(ctx, u, withOpening); err != nil {
			return nil, err
		}
	}

	var opening statements.PNT11Summary
	if beg := req.BeginingReport; beg != nil {
		ds, err := s.loadDataset(ctx, "BEG_REPORT", beg.TableName)
		if err != nil {
			return nil, err
		}
		if opening, err = statements.SummarizeOpeningReport(ds); err != nil {
			return nil, fmt.Errorf("BEG_REPORT: %w", err)
		}
	}

	started := time.Now()
	rows := statements.CombinePNT11(summaries[0], summaries[1], summaries[2], opening)
	if len(rows) == 0 {
		logger.Warn("PNT-11 summary is empty; no key is shared by every upload")
	}

	tableName := req.TableName()
	fileName := tableName + ".parquet"
	key := path.Join(s.storagePrefix, req.UserName, "analysis_data", fileName)
	if err := s.snapshotRepo.SavePNT11(ctx, key, rows); err != nil {
		s.LogError(ctx, err, "Failed to store PNT-11 summary", slog.String("key", key))
		return nil, fmt.Errorf("failed to store PNT-11 summary: %w", err)
	}
	s.LogStage(ctx, "store", started, slog.String("key", key), slog.Int("rows", len(rows)))

	return &dto.ImportResult{
		TableName: tableName,
		S3Bucket:  s.snapshotRepo.Bucket(),
		S3Key:     key,
		FileName:  fileName,
		Rows:      len(rows),
	}, nil
}
