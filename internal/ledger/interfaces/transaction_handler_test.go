package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

func TestUpdateCategory_Success(t *testing.T) {
	transaction := &domain.Transaction{
		ID:         "tx-1",
		AccountID:  "acc-1",
		Amount:     decimal.RequireFromString("-23.50"),
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Concept:    "COMPRA MERCADONA 1234",
		Assignment: domain.AssignedTo("cat-1"),
	}
	mockService := &MockTransactionService{Transaction: transaction}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-1/category", strings.NewReader(`{"category_id":"cat-1"}`))
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()
	handler.UpdateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "tx-1", mockService.LastTransactionID)
	assert.Equal(t, "cat-1", mockService.LastCategoryID)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "cat-1", data["category_id"])
	assert.Equal(t, "assigned", data["status"])
}

func TestUpdateCategory_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-1/category", strings.NewReader("not json"))
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()
	handler.UpdateCategory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	mockService := &MockTransactionService{Err: ledgerErrors.NewNotFoundError("transaction", "tx-404")}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-404/category", strings.NewReader(`{"category_id":"cat-1"}`))
	req.SetPathValue("transactionID", "tx-404")
	w := httptest.NewRecorder()
	handler.UpdateCategory(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestSplit_MapsTransferSplits(t *testing.T) {
	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	body := `{"splits":[
		{"category_id":"cat-1","amount":"50.00","notes":"food"},
		{"transfer":true,"amount":"30.00","target_account_id":"acc-2"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-1/splits", strings.NewReader(body))
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()
	handler.Split(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Len(t, mockService.LastSplits, 2)
	assert.Equal(t, domain.AssignedTo("cat-1"), mockService.LastSplits[0].Assignment)
	assert.True(t, mockService.LastSplits[0].Amount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, mockService.LastSplits[1].Assignment.IsTransfer())
	assert.Equal(t, "acc-2", *mockService.LastSplits[1].TargetAccountID)
}

func TestSplit_UnbalancedMapsToBadRequest(t *testing.T) {
	mockService := &MockTransactionService{
		Err: ledgerErrors.NewUnbalancedSplitError(decimal.RequireFromString("10.00")),
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-1/splits", strings.NewReader(`{"splits":[{"category_id":"cat-1","amount":"1.00"}]}`))
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()
	handler.Split(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Contains(t, response["message"], "remaining")
}

func TestRemoveSplits_Success(t *testing.T) {
	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/tx-1/splits", nil)
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()
	handler.RemoveSplits(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "tx-1", mockService.LastTransactionID)
}
