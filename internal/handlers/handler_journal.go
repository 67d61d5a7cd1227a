package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Posts a balanced double-entry journal entry atomically. Rows with no account or no amount are ignored.
// @Description An Idempotency-Key header (or body field) makes retries return the original entry.
// @Tags journal
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param entry body dto.PostEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse "Posted"
// @Success 200 {object} dto.JournalEntryResponse "Replayed"
// @Failure 400 {object} map[string]string "Invalid input or fewer than two lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Entry date in a closed fiscal period"
// @Failure 422 {object} map[string]string "Unbalanced entry or inactive account"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if key := c.GetHeader(idempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to post journal entry",
		slog.String("entry_date", req.EntryDate),
		slog.Int("line_count", len(req.Lines)))

	result, err := h.journalService.PostEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal entry")
		return
	}

	if result.Replayed {
		c.Header(replayedHeader, "true")
		c.JSON(http.StatusOK, dto.ToJournalEntryResponse(result.Entry))
		return
	}
	logger.Info("Journal entry posted", slog.String("entry_id", result.Entry.EntryID), slog.String("entry_number", result.Entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(result.Entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Newest entry date first, using token-based pagination
// @Tags journal
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(page))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts an offsetting entry that swaps every debit and credit. An entry can be reversed once.
// @Tags journal
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest false "Optional reversal date"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Already reversed, a reversal itself, or closed period"
// @Failure 422 {object} map[string]string "An account of the entry is inactive"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	var req dto.ReverseEntryRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
