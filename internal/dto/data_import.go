package dto

import (
	"github.com/SscSPs/mof_report_service/internal/ingest"
)

// ImportSettings describes an uploaded file and how its columns map to
// standard names.
type ImportSettings struct {
	URL          string                 `json:"url" binding:"required"`
	NameFunc     string                 `json:"nameFunc" binding:"required"`
	UserName     string                 `json:"userName" binding:"required"`
	NameProduct  string                 `json:"nameProduct"`
	TemplateName string                 `json:"templateName"`
	ValidStatus  string                 `json:"validStatus"`
	SettingCols  []ingest.ColumnSetting `json:"setting_cols" binding:"dive"`
}

// ImportDataRequest is the body of the validation and import endpoints.
type ImportDataRequest struct {
	JSONSettings ImportSettings `json:"json_settings" binding:"required"`
}

// ValidationData carries the per-column checks.
type ValidationData struct {
	DataframeSummary []ingest.ColumnSummary `json:"dataframe_summary"`
	ErrorDetails     ingest.ErrorDetails    `json:"error_details"`
}

// ValidationResponse is returned by the validation endpoint.
type ValidationResponse struct {
	IsValidated bool           `json:"isValidated"`
	TimesRun    float64        `json:"times_run"`
	Message     string         `json:"message"`
	Data        ValidationData `json:"data"`
}

// ToValidationResponse converts a validation report.
func ToValidationResponse(r *ingest.ValidationReport, timesRun float64) ValidationResponse {
	return ValidationResponse{
		IsValidated: r.IsValid(),
		TimesRun:    timesRun,
		Message:     r.Message(),
		Data: ValidationData{
			DataframeSummary: r.Summary,
			ErrorDetails:     r.Errors,
		},
	}
}

// ImportResult describes a stored import snapshot.
type ImportResult struct {
	TableName string `json:"-"`
	S3Bucket  string `json:"s3_bucket"`
	S3Key     string `json:"s3_key"`
	FileName  string `json:"file_name"`
	Rows      int    `json:"-"`
}

// ImportResponse is returned by the import endpoint.
type ImportResponse struct {
	Status   bool         `json:"status"`
	TimesRun float64      `json:"times_run"`
	Message  string       `json:"message"`
	Data     ImportResult `json:"data"`
}

// ToImportResponse converts a stored import.
func ToImportResponse(r *ImportResult, timesRun float64) ImportResponse {
	return ImportResponse{
		Status:   true,
		TimesRun: timesRun,
		Message:  "Table '" + r.TableName + "' created and data inserted successfully",
		Data:     *r,
	}
}
