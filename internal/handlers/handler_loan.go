package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// loanHandler handles HTTP requests for loan accounts and repayments.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/position", h.getPosition)
		loans.POST("/:id/interest", h.accrueInterest)
		loans.POST("/:id/repayments", h.recordRepayment)
	}
	rg.GET("/customers/:customerID/loans", h.listLoansByCustomer)
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	logger.Info("Received request to create loan", slog.String("customer_id", req.CustomerID))

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create loan")
		return
	}

	logger.Info("Loan created and disbursed", slog.String("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	loan, err := h.loanService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) listLoansByCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	loans, err := h.loanService.ListLoansByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"loans": dto.ToLoanResponses(loans)})
}

func (h *loanHandler) getPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	position, err := h.loanService.GetPosition(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger, err, "Failed to derive loan position")
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *loanHandler) accrueInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.AccrueInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.loanService.AccrueInterest(c.Request.Context(), loanID, req.Amount, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to accrue interest")
		return
	}

	logger.Info("Interest accrued", slog.String("loan_id", loanID), slog.String("amount", req.Amount.StringFixed(2)))
	c.JSON(http.StatusCreated, txn)
}

func (h *loanHandler) recordRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	req.LoanID = c.Param("id")

	logger.Info("Received repayment request",
		slog.String("loan_id", req.LoanID),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("source", req.Source))

	result, err := h.loanService.RecordRepayment(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to record repayment")
		return
	}

	logger.Info("Repayment recorded",
		slog.String("loan_id", req.LoanID),
		slog.String("journal_number", result.JournalNumber),
		slog.String("status", result.Status))
	c.JSON(http.StatusCreated, result)
}
