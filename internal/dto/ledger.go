package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// GeneralLedgerLineResponse is one ledger row with its running balance.
type GeneralLedgerLineResponse struct {
	LineID         string          `json:"lineID"`
	JournalID      string          `json:"journalID"`
	JournalNumber  string          `json:"journalNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Sequence       int             `json:"sequence"`
	Memo           string          `json:"memo"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse is the ledger projection for one account.
type GeneralLedgerResponse struct {
	AccountID string                      `json:"accountID"`
	Lines     []GeneralLedgerLineResponse `json:"lines"`
}

// ToGeneralLedgerResponse converts projected ledger lines for an account.
func ToGeneralLedgerResponse(accountID string, lines []domain.GeneralLedgerLine) GeneralLedgerResponse {
	resp := GeneralLedgerResponse{AccountID: accountID, Lines: []GeneralLedgerLineResponse{}}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, GeneralLedgerLineResponse{
			LineID:         line.LineID,
			JournalID:      line.JournalID,
			JournalNumber:  line.JournalNumber,
			EntryDate:      line.EntryDate,
			Sequence:       line.Sequence,
			Memo:           line.Memo,
			Description:    line.Description,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: line.RunningBalance,
		})
	}
	return resp
}
