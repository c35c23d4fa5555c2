package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/application"
	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type TransactionServiceInterface interface {
	UpdateTransactionCategory(transactionID, categoryID string) (*domain.Transaction, error)
	SplitTransaction(transactionID string, inputs []application.SplitInput) error
	RemoveSplits(transactionID string) error
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type updateCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

func (h *TransactionHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionID")
	var request updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.UpdateTransactionCategory(transactionID, request.CategoryID)
	if err != nil {
		respondEngineError(h.respondError, w, err, "Failed to update transaction category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction category updated.",
		"data":    toTransactionResponse(*transaction),
	})
}

type splitRequestItem struct {
	CategoryID      string          `json:"category_id"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	Transfer        bool            `json:"transfer"`
	TargetAccountID *string         `json:"target_account_id"`
}

type splitRequest struct {
	Splits []splitRequestItem `json:"splits"`
}

func (h *TransactionHandler) Split(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionID")
	var request splitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inputs := make([]application.SplitInput, 0, len(request.Splits))
	for _, item := range request.Splits {
		input := application.SplitInput{
			Amount:          item.Amount,
			Notes:           item.Notes,
			TargetAccountID: item.TargetAccountID,
		}
		if item.Transfer {
			input.Assignment = domain.TransferAssignment()
		} else {
			input.Assignment = domain.AssignedTo(item.CategoryID)
		}
		inputs = append(inputs, input)
	}

	if err := h.service.SplitTransaction(transactionID, inputs); err != nil {
		respondEngineError(h.respondError, w, err, "Failed to split transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully split.",
	})
}

func (h *TransactionHandler) RemoveSplits(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionID")

	if err := h.service.RemoveSplits(transactionID); err != nil {
		respondEngineError(h.respondError, w, err, "Failed to remove splits")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction splits removed.",
	})
}
