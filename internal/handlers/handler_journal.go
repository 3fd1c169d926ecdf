package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// journalHandler handles HTTP requests for the journal posting engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.POST("/sale", h.postSaleJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
	}
}

func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	logger.Info("Received request to post journal", slog.Int("lines", len(req.Lines)))

	entry, err := h.journalService.CreateJournal(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to post journal")
		return
	}

	// A nil entry with a nil error means every line sanitized away and
	// nothing was written.
	if entry == nil {
		logger.Info("Journal posting was a no-op after line sanitation")
		c.JSON(http.StatusOK, dto.ToPostJournalResponse(nil))
		return
	}

	logger.Info("Journal posted successfully", slog.String("journal_number", entry.Number))
	c.JSON(http.StatusCreated, dto.ToPostJournalResponse(entry))
}

func (h *journalHandler) postSaleJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaleJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	logger.Info("Received request to post sale journal", slog.String("method", string(req.Method)))

	entry, err := h.journalService.PostSaleJournal(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to post sale journal")
		return
	}

	if entry == nil {
		logger.Info("Sale journal posting was a no-op after line sanitation")
		c.JSON(http.StatusOK, dto.ToPostJournalResponse(nil))
		return
	}

	logger.Info("Sale journal posted successfully", slog.String("journal_number", entry.Number))
	c.JSON(http.StatusCreated, dto.ToPostJournalResponse(entry))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params, ok := parseListJournalsParams(c, logger)
	if !ok {
		return
	}

	entries, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journals")
		return
	}

	responses := make([]dto.JournalResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalResponse(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"journals": responses})
}

func parseListJournalsParams(c *gin.Context, logger *slog.Logger) (dto.ListJournalsParams, bool) {
	params := dto.ListJournalsParams{}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if status := c.Query("status"); status != "" {
		s := domain.JournalStatus(status)
		params.Status = &s
	}
	if from, ok := parseDateQuery(c, logger, "from"); !ok {
		return params, false
	} else {
		params.From = from
	}
	if to, ok := parseDateQuery(c, logger, "to"); !ok {
		return params, false
	} else {
		params.To = to
	}
	return params, true
}

// parseDateQuery reads an optional RFC 3339 or YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, logger *slog.Logger, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	logger.Warn("Invalid date query parameter", slog.String("param", name), slog.String("value", raw))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, want RFC 3339 or YYYY-MM-DD"})
	return nil, false
}
