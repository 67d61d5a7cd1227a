package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/integrity", h.getIntegrity)
	}
}

// bindReportParams parses from/to. It writes a 400 and returns false on bad input.
func bindReportParams(c *gin.Context, logger *slog.Logger) (dto.ReportParams, bool) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid report query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return params, false
	}
	return params, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Per-account debit and credit totals with a balanced flag
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ReportEnvelope[domain.TrialBalanceReport]
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	window, err := params.ToWindow()
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), window)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.NewReportEnvelope(params, report))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Revenue and expense accounts with net profit for the window
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ReportEnvelope[domain.PAndLReport]
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	window, err := params.ToWindow()
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), window)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.NewReportEnvelope(params, report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets against liabilities plus equity, with retained earnings folded into equity
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ReportEnvelope[domain.BalanceSheetReport]
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	window, err := params.ToWindow()
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet report")
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), window)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet report")
		return
	}
	c.JSON(http.StatusOK, dto.NewReportEnvelope(params, report))
}

// getIntegrity godoc
// @Summary Check ledger integrity
// @Description Verifies that total debits equal total credits and lists any stored entry that does not balance
// @Tags reports
// @Produce json
// @Success 200 {object} domain.IntegrityReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to check integrity"
// @Security BearerAuth
// @Router /reports/integrity [get]
func (h *reportingHandler) getIntegrity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.IntegrityCheck(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to check integrity")
		return
	}
	if !report.IsBalanced {
		logger.Warn("Ledger integrity check failed", slog.Int("unbalanced_entries", len(report.UnbalancedEntries)))
	}
	c.JSON(http.StatusOK, report)
}
