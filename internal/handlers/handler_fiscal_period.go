package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{periodService: ps}
}

func registerFiscalPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(periodService)

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.POST("/:id/close", h.closePeriod)
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Periods may not overlap. New periods start open.
// @Tags fiscal-periods
// @Accept json
// @Produce json
// @Param period body dto.CreateFiscalPeriodRequest true "Fiscal period"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or overlapping period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create fiscal period"
// @Security BearerAuth
// @Router /fiscal-periods [post]
func (h *fiscalPeriodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create fiscal period")
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Tags fiscal-periods
// @Produce json
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fiscal periods"
// @Security BearerAuth
// @Router /fiscal-periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list fiscal periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses(periods))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closing is one-way. Postings dated inside a closed period are rejected.
// @Tags fiscal-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Failed to close fiscal period"
// @Security BearerAuth
// @Router /fiscal-periods/{id}/close [post]
func (h *fiscalPeriodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("period_id", periodID))

	period, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close fiscal period")
		return
	}

	logger.Info("Fiscal period closed")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
