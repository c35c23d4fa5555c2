package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

// candidateWindowDays bounds how far a counterpart transaction's date may
// drift from the source's before it stops being a plausible match.
const candidateWindowDays = 3

type TransferService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	logger          zerolog.Logger
}

func NewTransferService(transactionRepo domain.TransactionRepository, accountRepo domain.AccountRepository, logger zerolog.Logger) *TransferService {
	return &TransferService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

// FindMirrorCandidates returns transactions that could be the other side of
// a transfer: exactly the opposite amount, dated within the candidate window,
// not already linked. Closest date first; an empty result is not an error.
func (s *TransferService) FindMirrorCandidates(amount decimal.Decimal, date time.Time, excludeTransactionID string) ([]domain.Transaction, error) {
	return s.transactionRepo.FindTransferCandidates(amount.Neg(), date, candidateWindowDays, excludeTransactionID)
}

// ReconcileTransactions links two independently imported transactions as the
// two sides of one transfer. Both get the same freshly generated transfer id
// and both are marked as transfers in a single atomic write. A pair that is
// already linked fails cleanly instead of creating a second link.
func (s *TransferService) ReconcileTransactions(sourceID, targetID string) error {
	if sourceID == targetID {
		return ledgerErrors.NewValidationError("a transaction cannot be reconciled with itself")
	}
	source, err := s.transactionRepo.FindByID(sourceID)
	if err != nil {
		return err
	}
	if source == nil {
		return ledgerErrors.NewNotFoundError("transaction", sourceID)
	}
	target, err := s.transactionRepo.FindByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ledgerErrors.NewNotFoundError("transaction", targetID)
	}

	if source.TransferID != nil {
		return ledgerErrors.NewAlreadyLinkedError(sourceID)
	}
	if target.TransferID != nil {
		return ledgerErrors.NewAlreadyLinkedError(targetID)
	}
	if source.AccountID == target.AccountID {
		return ledgerErrors.NewCrossAccountError(source.AccountID)
	}
	if source.IsSplit || target.IsSplit {
		return ledgerErrors.NewValidationError("split transactions are reconciled through their splits")
	}
	if !source.Amount.Neg().Equal(target.Amount) {
		return ledgerErrors.NewValidationError("transfer sides must have opposite equal amounts")
	}

	transferID := uuid.NewString()
	if err := s.transactionRepo.LinkTransfer(sourceID, targetID, transferID); err != nil {
		return err
	}
	s.logger.Info().
		Str("source_id", sourceID).
		Str("target_id", targetID).
		Str("transfer_id", transferID).
		Msg("transactions reconciled")
	return nil
}

// CreateMirrorTransfer synthesizes the other side of a transfer in an
// account that has no independent bank feed: a new transaction with the
// source's date and concept, amount negated, created and linked in the same
// atomic step. Returns the mirror's id.
func (s *TransferService) CreateMirrorTransfer(sourceID, targetAccountID string) (string, error) {
	source, err := s.transactionRepo.FindByID(sourceID)
	if err != nil {
		return "", err
	}
	if source == nil {
		return "", ledgerErrors.NewNotFoundError("transaction", sourceID)
	}
	target, err := s.accountRepo.FindByID(targetAccountID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", ledgerErrors.NewNotFoundError("account", targetAccountID)
	}

	if source.TransferID != nil {
		return "", ledgerErrors.NewAlreadyLinkedError(sourceID)
	}
	if source.AccountID == target.ID {
		return "", ledgerErrors.NewCrossAccountError(target.ID)
	}
	if source.IsSplit {
		return "", ledgerErrors.NewValidationError("split transactions mirror through their transfer splits")
	}
	if !target.AutoMirrorTransfers {
		// Allowed, but worth flagging: the caller usually steers mirrors
		// toward accounts without their own feed.
		s.logger.Warn().
			Str("account_id", target.ID).
			Msg("creating mirror in an account not marked for auto-mirroring")
	}

	transferID := uuid.NewString()
	mirror := domain.Transaction{
		ID:         uuid.NewString(),
		AccountID:  target.ID,
		Amount:     source.Amount.Neg(),
		Date:       source.Date,
		Concept:    source.Concept,
		Assignment: domain.TransferAssignment(),
		TransferID: &transferID,
	}
	if err := s.transactionRepo.CreateMirror(sourceID, mirror); err != nil {
		return "", err
	}
	s.logger.Info().
		Str("source_id", sourceID).
		Str("mirror_id", mirror.ID).
		Str("transfer_id", transferID).
		Msg("mirror transfer created")
	return mirror.ID, nil
}
