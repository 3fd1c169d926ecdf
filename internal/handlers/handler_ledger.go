package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// ledgerHandler handles HTTP requests for the general ledger projection.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the general ledger route.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	rg.GET("/ledger/:accountID", h.getGeneralLedger)
}

func (h *ledgerHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	from, ok := parseDateQuery(c, logger, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, logger, "to")
	if !ok {
		return
	}

	var dateRange *domain.DateRange
	if from != nil || to != nil {
		dateRange = &domain.DateRange{From: from, To: to}
	}

	lines, err := h.ledgerService.GetGeneralLedger(c.Request.Context(), accountID, dateRange)
	if err != nil {
		respondError(c, logger, err, "Failed to project general ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(accountID, lines))
}
