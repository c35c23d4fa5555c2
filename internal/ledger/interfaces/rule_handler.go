package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type RuleServiceInterface interface {
	CreateRule(pattern, categoryID string) (*domain.Rule, error)
	ApplyRuleRetroactively(ruleID string) (int, error)
	GetAllRules() ([]domain.Rule, error)
	PatternExists(concept string) (bool, error)
}

type RuleHandler struct {
	service      RuleServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewRuleHandler(
	service RuleServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *RuleHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &RuleHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type createRuleRequest struct {
	Pattern    string `json:"pattern"`
	CategoryID string `json:"category_id"`
}

func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var request createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.service.CreateRule(request.Pattern, request.CategoryID)
	if err != nil {
		respondEngineError(h.respondError, w, err, "Failed to create rule")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Rule successfully created.",
		"data": map[string]string{
			"id":          rule.ID,
			"pattern":     rule.Pattern,
			"category_id": rule.CategoryID,
		},
	})
}

func (h *RuleHandler) ApplyRetroactively(w http.ResponseWriter, r *http.Request) {
	ruleID := r.PathValue("ruleID")

	count, err := h.service.ApplyRuleRetroactively(ruleID)
	if err != nil {
		respondEngineError(h.respondError, w, err, "Failed to apply rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Rule applied to historical transactions.",
		"data":    map[string]int{"count": count},
	})
}

func (h *RuleHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.GetAllRules()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve rules")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   rules,
	})
}

// CheckPattern tells the caller whether a concept is already covered by a
// rule, so the UI can offer rule creation after a manual categorization.
func (h *RuleHandler) CheckPattern(w http.ResponseWriter, r *http.Request) {
	concept := r.URL.Query().Get("concept")
	if concept == "" {
		h.respondError(w, http.StatusBadRequest, "Missing concept query parameter")
		return
	}

	exists, err := h.service.PatternExists(concept)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to check pattern")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]bool{"exists": exists},
	})
}
