package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/middleware"
	"github.com/SscSPs/mof_report_service/internal/utils"
	"github.com/gin-gonic/gin"
)

// financialReportHandler handles HTTP requests related to financial statement runs.
type financialReportHandler struct {
	reportService portssvc.FinancialReportSvcFacade
	posthog       *utils.PosthogClientWrapper
}

// newFinancialReportHandler creates a new financialReportHandler.
func newFinancialReportHandler(rs portssvc.FinancialReportSvcFacade, ph *utils.PosthogClientWrapper) *financialReportHandler {
	return &financialReportHandler{
		reportService: rs,
		posthog:       ph,
	}
}

// registerFinancialReportRoutes registers the statement run route.
func registerFinancialReportRoutes(rg *gin.RouterGroup, reportService portssvc.FinancialReportSvcFacade, ph *utils.PosthogClientWrapper) {
	h := newFinancialReportHandler(reportService, ph)
	rg.POST("/mof-pnt-bctcq/", h.runFinancialStatements)
}

// runFinancialStatements godoc
// @Summary Derive the MOF financial statements
// @Description Loads a validated GL snapshot and an optional opening trial balance, derives the trial balance, balance sheet, PL01, PL02, CF01 and CF02, and stores each report as parquet.
// @Tags mof-report
// @Accept  json
// @Produce  json
// @Param   request body dto.FinancialStatementRequest true "Run settings"
// @Success 200 {object} dto.FinancialStatementResponse
// @Failure 400 {object} map[string]string "Invalid request format or period"
// @Failure 409 {object} map[string]string "Inputs not validated, snapshot missing or books do not reconcile"
// @Failure 500 {object} map[string]string "Failed to process financial reports"
// @Security BearerAuth
// @Router /mof-report/mof-pnt-bctcq/ [post]
func (h *financialReportHandler) runFinancialStatements(c *gin.Context) {
	start := time.Now()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FinancialStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for financial statement run", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("user_name", req.UserName), slog.String("report_code", req.ReportCode))
	logger.Info("Received request to run financial statements",
		slog.Int("report_year", req.ReportYear),
		slog.String("period_code", req.ReportPeriodCode),
		slog.Int("period_value", req.ReportPeriodValue))

	run, err := h.reportService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, http.StatusConflict, "Failed to process financial reports")
		return
	}

	elapsed := time.Since(start).Seconds()
	middleware.PosthogEvent(c, h.posthog, "financial_reports_generated", map[string]any{
		"report_code":         req.ReportCode,
		"company_type":        req.TypeCompany,
		"saved_files":         len(run.SavedFiles),
		"has_opening_balance": run.Summary.HasOpeningBalance,
		"times_run":           elapsed,
	})
	logger.Info("Financial reports processed successfully", slog.Int("saved_files", len(run.SavedFiles)))
	c.JSON(http.StatusOK, dto.ToFinancialStatementResponse(run, elapsed))
}
