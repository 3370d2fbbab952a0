package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dataImportHandler handles HTTP requests related to uploaded data files.
type dataImportHandler struct {
	importService portssvc.DataImportSvcFacade
}

// newDataImportHandler creates a new dataImportHandler.
func newDataImportHandler(is portssvc.DataImportSvcFacade) *dataImportHandler {
	return &dataImportHandler{importService: is}
}

// registerDataImportRoutes registers the validation and import routes.
func registerDataImportRoutes(rg *gin.RouterGroup, importService portssvc.DataImportSvcFacade) {
	h := newDataImportHandler(importService)
	rg.POST("/mof-valid-data/", h.validateData)
	rg.POST("/mof-import-data-after-mapping/", h.importData)
}

func bindImportRequest(c *gin.Context, logger *slog.Logger) (dto.ImportDataRequest, bool) {
	var req dto.ImportDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for data import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return req, false
	}
	return req, true
}

// validateData godoc
// @Summary Validate an uploaded file
// @Description Downloads a CSV or XLSX file, maps its columns and runs the type, missing, unknown and duplicate checks on every INFO column.
// @Tags mof-report
// @Accept  json
// @Produce  json
// @Param   request body dto.ImportDataRequest true "File and column settings"
// @Success 200 {object} dto.ValidationResponse
// @Failure 400 {object} map[string]string "Invalid request, unreachable file or unsupported format"
// @Failure 500 {object} map[string]string "Failed to validate data"
// @Failure 502 {object} map[string]string "File server answered with an error"
// @Security BearerAuth
// @Router /mof-report/mof-valid-data/ [post]
func (h *dataImportHandler) validateData(c *gin.Context) {
	start := time.Now()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := bindImportRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_name", req.JSONSettings.UserName), slog.String("template", req.JSONSettings.TemplateName))
	logger.Info("Received request to validate data")

	report, err := h.importService.ValidateData(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, http.StatusNotFound, "Failed to validate data")
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationResponse(report, time.Since(start).Seconds()))
}

// importData godoc
// @Summary Import an uploaded file
// @Description Converts every mapped column to its declared type and stores the table as a parquet snapshot.
// @Tags mof-report
// @Accept  json
// @Produce  json
// @Param   request body dto.ImportDataRequest true "File and column settings"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Invalid request, already validated data or unsupported format"
// @Failure 409 {object} map[string]string "Duplicate import names or missing settings"
// @Failure 500 {object} map[string]string "Failed to import data"
// @Failure 502 {object} map[string]string "File server answered with an error"
// @Security BearerAuth
// @Router /mof-report/mof-import-data-after-mapping/ [post]
func (h *dataImportHandler) importData(c *gin.Context) {
	start := time.Now()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := bindImportRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_name", req.JSONSettings.UserName), slog.String("template", req.JSONSettings.TemplateName))
	logger.Info("Received request to import data", slog.Int("columns", len(req.JSONSettings.SettingCols)))

	result, err := h.importService.ImportData(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, http.StatusNotFound, "Failed to import data")
		return
	}

	logger.Info("Data imported", slog.String("key", result.S3Key), slog.Int("rows", result.Rows))
	c.JSON(http.StatusOK, dto.ToImportResponse(result, time.Since(start).Seconds()))
}
