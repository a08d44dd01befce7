package handler

import (
	"log/slog"

	"github.com/fintrack-ledger/internal/api/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles HTTP requests for dashboard and trend reports
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Dashboard returns the balance total plus income and expense sums for the
// requested range
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var params DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	start, err := parseOptionalDate(params.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date")
		return
	}
	end, err := parseOptionalDate(params.EndDate)
	if err != nil {
		RespondBadRequest(c, "Invalid end_date")
		return
	}

	stats, err := h.reportService.Dashboard(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("Failed to build dashboard stats", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, stats)
}

// MonthlyTrend returns per-month income and expense totals, oldest first
func (h *ReportHandler) MonthlyTrend(c *gin.Context) {
	buckets, err := h.reportService.MonthlyTrend(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build monthly trend", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, buckets)
}
