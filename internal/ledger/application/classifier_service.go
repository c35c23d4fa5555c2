package application

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

// ClassifierService is the entry point the import/UI layer calls. It owns
// simple category assignment itself and hands split, rule and transfer work
// to the dedicated services.
type ClassifierService struct {
	transactionRepo domain.TransactionRepository
	categoryService CategoryCheckerInterface
	ruleService     *RuleService
	splitService    *SplitService
	transferService *TransferService
	logger          zerolog.Logger
}

func NewClassifierService(
	transactionRepo domain.TransactionRepository,
	categoryService CategoryCheckerInterface,
	ruleService *RuleService,
	splitService *SplitService,
	transferService *TransferService,
	logger zerolog.Logger,
) *ClassifierService {
	return &ClassifierService{
		transactionRepo: transactionRepo,
		categoryService: categoryService,
		ruleService:     ruleService,
		splitService:    splitService,
		transferService: transferService,
		logger:          logger,
	}
}

// UpdateTransactionCategory assigns a single category to a transaction.
// Split transactions are categorized through their splits and transfer-linked
// ones through the reconciler, so both are rejected here.
func (s *ClassifierService) UpdateTransactionCategory(transactionID, categoryID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ledgerErrors.NewNotFoundError("transaction", transactionID)
	}
	if transaction.IsSplit {
		return nil, ledgerErrors.NewValidationError("split transactions are categorized through their splits")
	}
	if transaction.TransferID != nil {
		return nil, ledgerErrors.NewValidationError("transfer-linked transactions cannot be recategorized")
	}
	exists, err := s.categoryService.DoesCategoryExist(categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledgerErrors.NewValidationError("category does not resolve")
	}

	transaction.Assignment = domain.AssignedTo(categoryID)
	if err := s.transactionRepo.Update(*transaction); err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("transaction_id", transactionID).
		Str("category_id", categoryID).
		Msg("transaction categorized")
	return transaction, nil
}

func (s *ClassifierService) CreateRule(pattern, categoryID string) (*domain.Rule, error) {
	return s.ruleService.CreateRule(pattern, categoryID)
}

func (s *ClassifierService) ApplyRuleRetroactively(ruleID string) (int, error) {
	return s.ruleService.ApplyRuleRetroactively(ruleID)
}

func (s *ClassifierService) GetAllRules() ([]domain.Rule, error) {
	return s.ruleService.GetAllRules()
}

func (s *ClassifierService) PatternExists(concept string) (bool, error) {
	return s.ruleService.PatternExists(concept)
}

func (s *ClassifierService) SplitTransaction(transactionID string, inputs []SplitInput) error {
	return s.splitService.SplitTransaction(transactionID, inputs)
}

func (s *ClassifierService) RemoveSplits(transactionID string) error {
	return s.splitService.RemoveSplits(transactionID)
}

func (s *ClassifierService) FindMirrorCandidates(amount decimal.Decimal, date time.Time, excludeTransactionID string) ([]domain.Transaction, error) {
	return s.transferService.FindMirrorCandidates(amount, date, excludeTransactionID)
}

func (s *ClassifierService) ReconcileTransactions(sourceID, targetID string) error {
	return s.transferService.ReconcileTransactions(sourceID, targetID)
}

func (s *ClassifierService) CreateMirrorTransfer(sourceID, targetAccountID string) (string, error) {
	return s.transferService.CreateMirrorTransfer(sourceID, targetAccountID)
}
