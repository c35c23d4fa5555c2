package application

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

// SplitInput is one requested portion of a transaction. The assignment must
// be either a concrete category or a transfer; a transfer portion names the
// account the money moved to.
type SplitInput struct {
	Assignment      domain.CategoryAssignment
	Amount          decimal.Decimal
	Notes           string
	TargetAccountID *string
}

type SplitService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryService CategoryCheckerInterface
	logger          zerolog.Logger
}

func NewSplitService(transactionRepo domain.TransactionRepository, accountRepo domain.AccountRepository, categoryService CategoryCheckerInterface, logger zerolog.Logger) *SplitService {
	return &SplitService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryService: categoryService,
		logger:          logger,
	}
}

// SplitTransaction replaces the transaction's decomposition with the given
// portions. The amounts must reconstruct the transaction's absolute total
// within domain.SplitTolerance. Re-splitting is allowed: previous splits and
// the mirror transactions they created are dropped in the same atomic write
// that inserts the new ones, so a partial split set is never observable.
func (s *SplitService) SplitTransaction(transactionID string, inputs []SplitInput) error {
	transaction, err := s.transactionRepo.FindByID(transactionID)
	if err != nil {
		return err
	}
	if transaction == nil {
		return ledgerErrors.NewNotFoundError("transaction", transactionID)
	}
	if transaction.TransferID != nil {
		return ledgerErrors.NewValidationError("transfer-linked transactions cannot be split")
	}
	if len(inputs) == 0 {
		return ledgerErrors.NewValidationError("at least one split is required")
	}

	splits := make([]domain.TransactionSplit, 0, len(inputs))
	var mirrors []domain.Transaction
	for i, input := range inputs {
		if !input.Amount.IsPositive() {
			return ledgerErrors.NewValidationError("split amounts must be positive")
		}
		split := domain.TransactionSplit{
			ID:            uuid.NewString(),
			TransactionID: transaction.ID,
			Position:      i,
			Assignment:    input.Assignment,
			Amount:        input.Amount,
			Notes:         input.Notes,
		}

		switch input.Assignment.Status {
		case domain.StatusAssigned:
			if input.Assignment.CategoryID == "" {
				return ledgerErrors.NewValidationError("every split needs a category")
			}
			exists, err := s.categoryService.DoesCategoryExist(input.Assignment.CategoryID)
			if err != nil {
				return err
			}
			if !exists {
				return ledgerErrors.NewValidationError("split category does not resolve")
			}
		case domain.StatusTransfer:
			if input.TargetAccountID == nil || *input.TargetAccountID == "" {
				return ledgerErrors.NewMissingTransferTargetError(i)
			}
			if *input.TargetAccountID == transaction.AccountID {
				return ledgerErrors.NewCrossAccountError(transaction.AccountID)
			}
			target, err := s.accountRepo.FindByID(*input.TargetAccountID)
			if err != nil {
				return err
			}
			if target == nil {
				return ledgerErrors.NewNotFoundError("account", *input.TargetAccountID)
			}
			mirror := s.buildMirror(transaction, input.Amount, target.ID)
			targetID := target.ID
			split.TargetAccountID = &targetID
			split.MirrorTransactionID = &mirror.ID
			split.TransferID = mirror.TransferID
			mirrors = append(mirrors, mirror)
		default:
			return ledgerErrors.NewValidationError("every split needs a category")
		}
		splits = append(splits, split)
	}

	balanced, remaining := transaction.SplitsBalance(splits)
	if !balanced {
		return ledgerErrors.NewUnbalancedSplitError(remaining)
	}

	if err := s.transactionRepo.ReplaceSplits(transaction.ID, splits, mirrors); err != nil {
		return err
	}
	s.logger.Info().
		Str("transaction_id", transaction.ID).
		Int("splits", len(splits)).
		Int("mirrors", len(mirrors)).
		Msg("transaction split replaced")
	return nil
}

// RemoveSplits drops the transaction's decomposition and any mirror
// transactions its transfer-typed splits created, and resets the parent to
// pending. The previous single-category assignment is not restored: the
// reset is deterministic regardless of the transaction's edit history.
func (s *SplitService) RemoveSplits(transactionID string) error {
	transaction, err := s.transactionRepo.FindByID(transactionID)
	if err != nil {
		return err
	}
	if transaction == nil {
		return ledgerErrors.NewNotFoundError("transaction", transactionID)
	}
	if !transaction.IsSplit {
		return ledgerErrors.NewValidationError("transaction is not split")
	}

	if err := s.transactionRepo.ClearSplits(transaction.ID); err != nil {
		return err
	}
	s.logger.Info().Str("transaction_id", transaction.ID).Msg("transaction splits removed")
	return nil
}

// buildMirror synthesizes the counterpart transaction for a transfer-typed
// split: same date and concept, opposite direction, linked to the split by a
// fresh transfer id.
func (s *SplitService) buildMirror(source *domain.Transaction, portion decimal.Decimal, targetAccountID string) domain.Transaction {
	transferID := uuid.NewString()
	return domain.Transaction{
		ID:         uuid.NewString(),
		AccountID:  targetAccountID,
		Amount:     source.MirrorAmount(portion),
		Date:       source.Date,
		Concept:    source.Concept,
		Assignment: domain.TransferAssignment(),
		TransferID: &transferID,
	}
}
