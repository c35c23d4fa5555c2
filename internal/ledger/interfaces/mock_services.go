package interfaces

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/application"
	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

// Handler-level service doubles. Each returns Err when set, otherwise the
// canned values, and records the arguments of the last call.

type MockTransactionService struct {
	Err         error
	Transaction *domain.Transaction

	LastTransactionID string
	LastCategoryID    string
	LastSplits        []application.SplitInput
}

func (m *MockTransactionService) UpdateTransactionCategory(transactionID, categoryID string) (*domain.Transaction, error) {
	m.LastTransactionID = transactionID
	m.LastCategoryID = categoryID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transaction, nil
}

func (m *MockTransactionService) SplitTransaction(transactionID string, inputs []application.SplitInput) error {
	m.LastTransactionID = transactionID
	m.LastSplits = inputs
	return m.Err
}

func (m *MockTransactionService) RemoveSplits(transactionID string) error {
	m.LastTransactionID = transactionID
	return m.Err
}

type MockRuleService struct {
	Err    error
	Rule   *domain.Rule
	Count  int
	Rules  []domain.Rule
	Exists bool
}

func (m *MockRuleService) CreateRule(pattern, categoryID string) (*domain.Rule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rule, nil
}

func (m *MockRuleService) ApplyRuleRetroactively(ruleID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Count, nil
}

func (m *MockRuleService) GetAllRules() ([]domain.Rule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rules, nil
}

func (m *MockRuleService) PatternExists(concept string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Exists, nil
}

type MockTransferService struct {
	Err        error
	Candidates []domain.Transaction
	MirrorID   string

	LastAmount    decimal.Decimal
	LastDate      time.Time
	LastExcludeID string
	LastSourceID  string
	LastTargetID  string
}

func (m *MockTransferService) FindMirrorCandidates(amount decimal.Decimal, date time.Time, excludeTransactionID string) ([]domain.Transaction, error) {
	m.LastAmount = amount
	m.LastDate = date
	m.LastExcludeID = excludeTransactionID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

func (m *MockTransferService) ReconcileTransactions(sourceID, targetID string) error {
	m.LastSourceID = sourceID
	m.LastTargetID = targetID
	return m.Err
}

func (m *MockTransferService) CreateMirrorTransfer(sourceID, targetAccountID string) (string, error) {
	m.LastSourceID = sourceID
	m.LastTargetID = targetAccountID
	if m.Err != nil {
		return "", m.Err
	}
	return m.MirrorID, nil
}

type MockCategoryService struct {
	Err        error
	Category   *domain.Category
	Display    *domain.CategoryDisplay
	Categories []domain.Category
}

func (m *MockCategoryService) CreateCategory(name string, parentID *string, color, icon string) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Category, nil
}

func (m *MockCategoryService) ResolveDisplay(categoryID string) (*domain.CategoryDisplay, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Display == nil {
		return nil, ledgerErrors.NewNotFoundError("category", categoryID)
	}
	return m.Display, nil
}

func (m *MockCategoryService) GetAllCategories() ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}
