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

// pnt11Handler handles the PNT-11 motor portfolio summary.
type pnt11Handler struct {
	pnt11Service portssvc.PNT11SvcFacade
}

func newPNT11Handler(ps portssvc.PNT11SvcFacade) *pnt11Handler {
	return &pnt11Handler{pnt11Service: ps}
}

func registerPNT11Routes(rg *gin.RouterGroup, pnt11Service portssvc.PNT11SvcFacade) {
	h := newPNT11Handler(pnt11Service)
	rg.POST("/mof-pnt-11/", h.summarize)
}

// summarize godoc
// @Summary Build the PNT-11 motor portfolio summary
// @Description Maps the validated premium, claim and reserve uploads to MOF product lines, vehicle groups and age bands, joins their totals and stores the summary as a parquet snapshot.
// @Tags mof-report
// @Accept  json
// @Produce  json
// @Param   request body dto.PNT11Request true "Uploads and mapping settings"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Invalid request or age bins"
// @Failure 409 {object} map[string]string "Unvalidated data, missing mapping, missing field or opening reserves"
// @Failure 500 {object} map[string]string "Failed to build PNT-11 summary"
// @Security BearerAuth
// @Router /mof-report/mof-pnt-11/ [post]
func (h *pnt11Handler) summarize(c *gin.Context) {
	start := time.Now()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PNT11Request
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PNT-11 summary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("user_name", req.UserName), slog.String("report_code", req.ReportCode))
	logger.Info("Received request to build PNT-11 summary")

	result, err := h.pnt11Service.SummarizePNT11(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, http.StatusConflict, "Failed to build PNT-11 summary")
		return
	}

	logger.Info("PNT-11 summary stored", slog.String("key", result.S3Key), slog.Int("rows", result.Rows))
	c.JSON(http.StatusOK, dto.ToImportResponse(result, time.Since(start).Seconds()))
}
