package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	"github.com/adrianvt/finledger/internal/ledger/infrastructure"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// engineFixture wires every service over in-memory repositories.
type engineFixture struct {
	accounts     *infrastructure.MockAccountRepository
	categories   *infrastructure.MockCategoryRepository
	rules        *infrastructure.MockRuleRepository
	transactions *infrastructure.MockTransactionRepository

	categoryService *CategoryService
	ruleService     *RuleService
	splitService    *SplitService
	transferService *TransferService
	classifier      *ClassifierService
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		accounts:     &infrastructure.MockAccountRepository{},
		categories:   &infrastructure.MockCategoryRepository{},
		rules:        &infrastructure.MockRuleRepository{},
		transactions: infrastructure.NewMockTransactionRepository(),
	}
	logger := zerolog.Nop()
	f.categoryService = NewCategoryService(f.categories)
	f.ruleService = NewRuleService(f.rules, f.transactions, f.categoryService, logger)
	f.splitService = NewSplitService(f.transactions, f.accounts, f.categoryService, logger)
	f.transferService = NewTransferService(f.transactions, f.accounts, logger)
	f.classifier = NewClassifierService(f.transactions, f.categoryService, f.ruleService, f.splitService, f.transferService, logger)
	return f
}

func (f *engineFixture) seedAccount(name string, autoMirror bool) domain.Account {
	account := domain.Account{ID: uuid.NewString(), Name: name, AutoMirrorTransfers: autoMirror}
	_ = f.accounts.Save(account)
	return account
}

func (f *engineFixture) seedCategory(name string) domain.Category {
	category := domain.Category{ID: uuid.NewString(), Name: name}
	_ = f.categories.Save(category)
	return category
}

func (f *engineFixture) seedTransaction(accountID, concept, amount string, date time.Time) domain.Transaction {
	transaction := domain.Transaction{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		Amount:     dec(amount),
		Date:       date,
		Concept:    concept,
		Assignment: domain.Unassigned(),
	}
	_ = f.transactions.Save(transaction)
	return transaction
}
