package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// getLedger godoc
// @Summary Get an account ledger
// @Description Every line posted to the account, oldest first, with a running debit-minus-credit balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")
	logger = logger.With(slog.String("account_id", accountID))

	lines, err := h.ledgerService.GetLedger(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(accountID, lines))
}
