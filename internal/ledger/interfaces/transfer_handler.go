package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type TransferServiceInterface interface {
	FindMirrorCandidates(amount decimal.Decimal, date time.Time, excludeTransactionID string) ([]domain.Transaction, error)
	ReconcileTransactions(sourceID, targetID string) error
	CreateMirrorTransfer(sourceID, targetAccountID string) (string, error)
}

type TransferHandler struct {
	service      TransferServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransferHandler(
	service TransferServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransferHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransferHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransferHandler) FindCandidates(w http.ResponseWriter, r *http.Request) {
	amountParam := r.URL.Query().Get("amount")
	dateParam := r.URL.Query().Get("date")
	excludeID := r.URL.Query().Get("exclude_id")

	amount, err := decimal.NewFromString(amountParam)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	date, err := parseDate(dateParam)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	candidates, err := h.service.FindMirrorCandidates(amount, date, excludeID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to search for candidates")
		return
	}

	responses := make([]transactionResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, toTransactionResponse(candidate))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

type reconcileRequest struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

func (h *TransferHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var request reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ReconcileTransactions(request.SourceID, request.TargetID); err != nil {
		respondEngineError(h.respondError, w, err, "Failed to reconcile transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions linked as a transfer.",
	})
}

type mirrorRequest struct {
	SourceID        string `json:"source_id"`
	TargetAccountID string `json:"target_account_id"`
}

func (h *TransferHandler) CreateMirror(w http.ResponseWriter, r *http.Request) {
	var request mirrorRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mirrorID, err := h.service.CreateMirrorTransfer(request.SourceID, request.TargetAccountID)
	if err != nil {
		respondEngineError(h.respondError, w, err, "Failed to create mirror transfer")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Mirror transfer created.",
		"data":    map[string]string{"transaction_id": mirrorID},
	})
}
