package application

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

type CategoryCheckerInterface interface {
	DoesCategoryExist(categoryID string) (bool, error)
}

type RuleService struct {
	repo            domain.RuleRepository
	transactionRepo domain.TransactionRepository
	categoryService CategoryCheckerInterface
	logger          zerolog.Logger
}

func NewRuleService(repo domain.RuleRepository, transactionRepo domain.TransactionRepository, categoryService CategoryCheckerInterface, logger zerolog.Logger) *RuleService {
	return &RuleService{
		repo:            repo,
		transactionRepo: transactionRepo,
		categoryService: categoryService,
		logger:          logger,
	}
}

// CreateRule stores a new pattern-to-category association. The pattern is
// uppercased before storage so matching stays case-insensitive.
func (s *RuleService) CreateRule(pattern, categoryID string) (*domain.Rule, error) {
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, ledgerErrors.NewValidationError("rule pattern must not be empty")
	}
	exists, err := s.categoryService.DoesCategoryExist(categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledgerErrors.NewValidationError("rule category does not resolve")
	}

	rule := domain.Rule{
		ID:         uuid.NewString(),
		Pattern:    pattern,
		CategoryID: categoryID,
	}
	if err := s.repo.Save(rule); err != nil {
		return nil, err
	}
	s.logger.Info().Str("rule_id", rule.ID).Str("pattern", rule.Pattern).Msg("rule created")
	return &rule, nil
}

// ApplyRuleRetroactively bulk-assigns the rule's category to every historical
// transaction its pattern matches. Only pending transactions are touched:
// split transactions and transfer-linked ones have their own classification
// path, and manually assigned categories are not overwritten.
func (s *RuleService) ApplyRuleRetroactively(ruleID string) (int, error) {
	rule, err := s.repo.FindByID(ruleID)
	if err != nil {
		return 0, err
	}
	if rule == nil {
		return 0, ledgerErrors.NewNotFoundError("rule", ruleID)
	}

	count, err := s.transactionRepo.AssignCategoryToPending(rule.Pattern, rule.CategoryID)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Str("rule_id", ruleID).Int("updated", count).Msg("rule applied retroactively")
	return count, nil
}

func (s *RuleService) GetAllRules() ([]domain.Rule, error) {
	return s.repo.FindAll()
}

// PatternExists reports whether any stored rule already matches the concept,
// so callers can decide whether to suggest creating one.
func (s *RuleService) PatternExists(concept string) (bool, error) {
	rules, err := s.repo.FindAll()
	if err != nil {
		return false, err
	}
	return domain.PatternExists(concept, rules), nil
}
