package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// savingsHandler handles HTTP requests for the savings ledger.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

func newSavingsHandler(ss portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: ss}
}

// registerSavingsRoutes registers routes related to customer savings.
func registerSavingsRoutes(rg *gin.RouterGroup, savingsService portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(savingsService)

	savings := rg.Group("/savings")
	{
		savings.POST("/deposits", h.deposit)
		savings.POST("/withdrawals", h.withdraw)
		savings.POST("/receivable-payments", h.payReceivable)
		savings.GET("/:customerID/balance", h.balance)
		savings.GET("/:customerID/transactions", h.listTransactions)
	}
}

func (h *savingsHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SavingsTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.savingsService.Deposit(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to record deposit")
		return
	}

	logger.Info("Deposit recorded", slog.String("customer_id", req.CustomerID), slog.String("amount", req.Amount.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToSavingsTransactionResponse(txn))
}

func (h *savingsHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SavingsTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.savingsService.Withdraw(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to record withdrawal")
		return
	}

	logger.Info("Withdrawal recorded", slog.String("customer_id", req.CustomerID), slog.String("amount", req.Amount.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToSavingsTransactionResponse(txn))
}

func (h *savingsHandler) payReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SavingsTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.savingsService.PayReceivableFromSavings(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to settle receivable from savings")
		return
	}

	logger.Info("Receivable settled from savings", slog.String("customer_id", req.CustomerID), slog.String("amount", req.Amount.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToSavingsTransactionResponse(txn))
}

func (h *savingsHandler) balance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	balance, err := h.savingsService.Balance(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to derive savings balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customerID": customerID, "balance": balance})
}

func (h *savingsHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

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

	txns, err := h.savingsService.ListTransactions(c.Request.Context(), customerID, dateRange)
	if err != nil {
		respondError(c, logger, err, "Failed to list savings transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToSavingsTransactionResponses(txns)})
}
