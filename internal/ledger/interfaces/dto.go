package interfaces

import (
	"time"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

const dateLayout = "2006-01-02"

type transactionResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Amount     string          `json:"amount"`
	Date       string          `json:"date"`
	Concept    string          `json:"concept"`
	Notes      string          `json:"notes"`
	Status     string          `json:"status"`
	CategoryID *string         `json:"category_id,omitempty"`
	IsSplit    bool            `json:"is_split"`
	TransferID *string         `json:"transfer_id,omitempty"`
	Splits     []splitResponse `json:"splits,omitempty"`
}

type splitResponse struct {
	ID                  string  `json:"id"`
	Status              string  `json:"status"`
	CategoryID          *string `json:"category_id,omitempty"`
	Amount              string  `json:"amount"`
	Notes               string  `json:"notes"`
	TargetAccountID     *string `json:"target_account_id,omitempty"`
	MirrorTransactionID *string `json:"mirror_transaction_id,omitempty"`
}

func toTransactionResponse(transaction domain.Transaction) transactionResponse {
	response := transactionResponse{
		ID:         transaction.ID,
		AccountID:  transaction.AccountID,
		Amount:     transaction.Amount.StringFixed(2),
		Date:       transaction.Date.Format(dateLayout),
		Concept:    transaction.Concept,
		Notes:      transaction.Notes,
		Status:     string(transaction.Assignment.Status),
		IsSplit:    transaction.IsSplit,
		TransferID: transaction.TransferID,
	}
	if transaction.Assignment.Status == domain.StatusAssigned {
		categoryID := transaction.Assignment.CategoryID
		response.CategoryID = &categoryID
	}
	for _, split := range transaction.Splits {
		response.Splits = append(response.Splits, toSplitResponse(split))
	}
	return response
}

func toSplitResponse(split domain.TransactionSplit) splitResponse {
	response := splitResponse{
		ID:                  split.ID,
		Status:              string(split.Assignment.Status),
		Amount:              split.Amount.StringFixed(2),
		Notes:               split.Notes,
		TargetAccountID:     split.TargetAccountID,
		MirrorTransactionID: split.MirrorTransactionID,
	}
	if split.Assignment.Status == domain.StatusAssigned {
		categoryID := split.Assignment.CategoryID
		response.CategoryID = &categoryID
	}
	return response
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
