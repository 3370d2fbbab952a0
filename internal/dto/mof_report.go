package dto

import (
	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// Status values the client attaches to uploaded data.
const (
	StatusValidated = "Validated"
	StatusCompleted = "hoan_thanh"
)

// AccountColumnSetting describes the mapping of DEBIT_ACC or CREDIT_ACC.
type AccountColumnSetting struct {
	Cols         string `json:"cols"`
	ValidMapping string `json:"valid_mapping"`
	ValidStatus  string `json:"validStatus"`
}

// Validated reports whether the account mapping was confirmed by the user.
func (s AccountColumnSetting) Validated() bool {
	return s.ValidMapping == StatusValidated || s.ValidStatus == StatusValidated
}

// SingleVariableSetting groups the account column mappings of a GL upload.
type SingleVariableSetting struct {
	DebitAccount  []AccountColumnSetting `json:"DEBIT_ACC"`
	CreditAccount []AccountColumnSetting `json:"CREDIT_ACC"`
}

// SettingCols holds the column settings of a GL upload.
type SettingCols struct {
	VarSingleSettings []SingleVariableSetting `json:"var_single_settings"`
	VarCateSettings   []map[string]any        `json:"var_cate_settings,omitempty"`
}

// GLDataSettings points at an imported general-ledger snapshot.
type GLDataSettings struct {
	TableName    string      `json:"tableName" binding:"required"`
	TemplateName string      `json:"templateName"`
	ValidStatus  string      `json:"validStatus"`
	SettingCols  SettingCols `json:"setting_cols"`
}

// OpeningBalanceSettings points at the closing trial balance of the previous period.
type OpeningBalanceSettings struct {
	TableName   string `json:"tableName" binding:"required"`
	ValidStatus string `json:"validStatus"`
}

// FinancialStatementRequest is the body of a financial statement run.
type FinancialStatementRequest struct {
	UserID               string                  `json:"userID" binding:"required"`
	UserName             string                  `json:"userName" binding:"required"`
	ReportCode           string                  `json:"reportCode" binding:"required"`
	ReportYear           int                     `json:"reportYear" binding:"required"`
	ReportPeriodCode     string                  `json:"reportPeriodCode" binding:"required,period_code"`
	ReportPeriodValue    int                     `json:"reportPeriodValue" binding:"required"`
	TypeCompany          string                  `json:"typeCOMPANY" binding:"required"`
	GLDataSettings       GLDataSettings          `json:"gl_data_settings" binding:"required"`
	BeginingTrialBalance *OpeningBalanceSettings `json:"begining_trial_balance,omitempty"`
}

// FinancialStatementData is the payload of a successful run.
type FinancialStatementData struct {
	S3Bucket   string             `json:"s3_bucket"`
	SavedFiles []domain.SavedFile `json:"saved_files"`
	Summary    domain.RunSummary  `json:"summary"`
}

// FinancialStatementResponse is returned by a financial statement run.
type FinancialStatementResponse struct {
	Status   bool                   `json:"status"`
	TimesRun float64                `json:"times_run"`
	Message  string                 `json:"message"`
	Data     FinancialStatementData `json:"data"`
}

// ToFinancialStatementResponse converts a finished run.
func ToFinancialStatementResponse(run *domain.ReportRun, timesRun float64) FinancialStatementResponse {
	return FinancialStatementResponse{
		Status:   true,
		TimesRun: timesRun,
		Message:  "Financial reports processed successfully",
		Data: FinancialStatementData{
			S3Bucket:   run.Bucket,
			SavedFiles: run.SavedFiles,
			Summary:    run.Summary,
		},
	}
}
