package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// JournalLineRequest is one debit or credit leg of a posting request. Lines
// reference accounts by chart code; the posting engine resolves them to IDs.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalRequest defines the payload for posting a journal entry.
type CreateJournalRequest struct {
	EntryDate time.Time            `json:"entryDate" binding:"required"`
	Memo      string               `json:"memo"`
	Reference string               `json:"reference"`
	Lines     []JournalLineRequest `json:"lines" binding:"required"`
}

// SalePaymentMethod selects the funding account of a sale recipe.
type SalePaymentMethod string

const (
	SalePaidCash       SalePaymentMethod = "CASH"
	SalePaidQRIS       SalePaymentMethod = "QRIS"
	SalePaidDebitCard  SalePaymentMethod = "DEBIT_CARD"
	SalePaidReceivable SalePaymentMethod = "RECEIVABLE"
)

// SaleJournalRequest defines the payload for the fixed sale posting recipe.
type SaleJournalRequest struct {
	EntryDate time.Time         `json:"entryDate" binding:"required"`
	Subtotal  decimal.Decimal   `json:"subtotal" binding:"required"`
	Discount  decimal.Decimal   `json:"discount"`
	Tax       decimal.Decimal   `json:"tax"`
	Method    SalePaymentMethod `json:"method" binding:"required,oneof=CASH QRIS DEBIT_CARD RECEIVABLE"`
	Reference string            `json:"reference"`
	Memo      string            `json:"memo"`
}

// ListJournalsParams holds filters for listing journal entries.
type ListJournalsParams struct {
	Status *domain.JournalStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Sequence    int             `json:"sequence"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID string                `json:"journalID"`
	Number    string                `json:"number"`
	EntryDate time.Time             `json:"entryDate"`
	Memo      string                `json:"memo"`
	Reference string                `json:"reference,omitempty"`
	Status    string                `json:"status"`
	PostedAt  time.Time             `json:"postedAt"`
	CreatedBy string                `json:"createdBy"`
	Lines     []JournalLineResponse `json:"lines,omitempty"`
}

// PostJournalResponse wraps a posting result. Noop is true when the request
// sanitized down to fewer than two lines and nothing was written.
type PostJournalResponse struct {
	Noop    bool             `json:"noop"`
	Journal *JournalResponse `json:"journal,omitempty"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID: e.JournalID,
		Number:    e.Number,
		EntryDate: e.EntryDate,
		Memo:      e.Memo,
		Reference: e.Reference,
		Status:    string(e.Status),
		PostedAt:  e.PostedAt,
		CreatedBy: e.CreatedBy,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Sequence:    line.Sequence,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return resp
}

// ToPostJournalResponse wraps a posting engine result, flagging the no-op case.
func ToPostJournalResponse(e *domain.JournalEntry) PostJournalResponse {
	if e == nil {
		return PostJournalResponse{Noop: true}
	}
	resp := ToJournalResponse(e)
	return PostJournalResponse{Journal: &resp}
}
