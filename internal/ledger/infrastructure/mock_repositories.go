package infrastructure

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

// In-memory repository doubles for service tests. Each one keeps its rows in
// exported fields so tests can seed and inspect state directly.

type MockAccountRepository struct {
	Accounts []domain.Account
}

func (m *MockAccountRepository) Save(account domain.Account) error {
	m.Accounts = append(m.Accounts, account)
	return nil
}

func (m *MockAccountRepository) FindByID(accountID string) (*domain.Account, error) {
	for _, account := range m.Accounts {
		if account.ID == accountID {
			found := account
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockAccountRepository) ExistsByID(accountID string) (bool, error) {
	account, _ := m.FindByID(accountID)
	return account != nil, nil
}

type MockCategoryRepository struct {
	Categories []domain.Category
}

func (m *MockCategoryRepository) Save(category domain.Category) error {
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID {
			found := category
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) ExistsByID(categoryID string) (bool, error) {
	category, _ := m.FindByID(categoryID)
	return category != nil, nil
}

func (m *MockCategoryRepository) FindAll() ([]domain.Category, error) {
	return append([]domain.Category(nil), m.Categories...), nil
}

type MockRuleRepository struct {
	Rules []domain.Rule
}

func (m *MockRuleRepository) Save(rule domain.Rule) error {
	m.Rules = append(m.Rules, rule)
	return nil
}

func (m *MockRuleRepository) FindByID(ruleID string) (*domain.Rule, error) {
	for _, rule := range m.Rules {
		if rule.ID == ruleID {
			found := rule
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockRuleRepository) FindAll() ([]domain.Rule, error) {
	return append([]domain.Rule(nil), m.Rules...), nil
}

type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	stored := transaction
	m.Transactions[transaction.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[transactionID]
	if !ok {
		return nil, nil
	}
	found := *transaction
	found.Splits = append([]domain.TransactionSplit(nil), transaction.Splits...)
	return &found, nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	stored, ok := m.Transactions[transaction.ID]
	if !ok {
		return ledgerErrors.NewNotFoundError("transaction", transaction.ID)
	}
	stored.Notes = transaction.Notes
	stored.Assignment = transaction.Assignment
	return nil
}

func (m *MockTransactionRepository) AssignCategoryToPending(pattern, categoryID string) (int, error) {
	count := 0
	for _, transaction := range m.Transactions {
		if !transaction.Assignment.IsPending() || transaction.IsSplit || transaction.TransferID != nil {
			continue
		}
		if strings.Contains(strings.ToUpper(transaction.Concept), pattern) {
			transaction.Assignment = domain.AssignedTo(categoryID)
			count++
		}
	}
	return count, nil
}

func (m *MockTransactionRepository) FindTransferCandidates(amount decimal.Decimal, date time.Time, windowDays int, excludeID string) ([]domain.Transaction, error) {
	from := date.AddDate(0, 0, -windowDays)
	to := date.AddDate(0, 0, windowDays)
	var candidates []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.ID == excludeID || transaction.TransferID != nil || transaction.IsSplit {
			continue
		}
		if !transaction.Amount.Equal(amount) {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		candidates = append(candidates, *transaction)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di := candidates[i].Date.Sub(date).Abs()
		dj := candidates[j].Date.Sub(date).Abs()
		if di != dj {
			return di < dj
		}
		return candidates[i].Date.Before(candidates[j].Date)
	})
	return candidates, nil
}

func (m *MockTransactionRepository) ReplaceSplits(transactionID string, splits []domain.TransactionSplit, mirrors []domain.Transaction) error {
	transaction, ok := m.Transactions[transactionID]
	if !ok {
		return ledgerErrors.NewNotFoundError("transaction", transactionID)
	}
	m.deleteMirrorsOf(transaction)
	for _, mirror := range mirrors {
		stored := mirror
		m.Transactions[mirror.ID] = &stored
	}
	transaction.Splits = append([]domain.TransactionSplit(nil), splits...)
	transaction.IsSplit = true
	transaction.Assignment = domain.Unassigned()
	return nil
}

func (m *MockTransactionRepository) ClearSplits(transactionID string) error {
	transaction, ok := m.Transactions[transactionID]
	if !ok {
		return ledgerErrors.NewNotFoundError("transaction", transactionID)
	}
	m.deleteMirrorsOf(transaction)
	transaction.Splits = nil
	transaction.IsSplit = false
	transaction.Assignment = domain.Unassigned()
	return nil
}

func (m *MockTransactionRepository) deleteMirrorsOf(transaction *domain.Transaction) {
	for _, split := range transaction.Splits {
		if split.MirrorTransactionID != nil {
			delete(m.Transactions, *split.MirrorTransactionID)
		}
	}
}

func (m *MockTransactionRepository) LinkTransfer(sourceID, targetID, transferID string) error {
	for _, id := range []string{sourceID, targetID} {
		transaction, ok := m.Transactions[id]
		if !ok {
			return ledgerErrors.NewNotFoundError("transaction", id)
		}
		if transaction.TransferID != nil {
			return ledgerErrors.NewAlreadyLinkedError(id)
		}
	}
	for _, id := range []string{sourceID, targetID} {
		linked := transferID
		m.Transactions[id].TransferID = &linked
		m.Transactions[id].Assignment = domain.TransferAssignment()
	}
	return nil
}

func (m *MockTransactionRepository) CreateMirror(sourceID string, mirror domain.Transaction) error {
	source, ok := m.Transactions[sourceID]
	if !ok {
		return ledgerErrors.NewNotFoundError("transaction", sourceID)
	}
	if source.TransferID != nil {
		return ledgerErrors.NewAlreadyLinkedError(sourceID)
	}
	stored := mirror
	m.Transactions[mirror.ID] = &stored
	source.TransferID = mirror.TransferID
	source.Assignment = domain.TransferAssignment()
	return nil
}
