package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// UnbalancedSplitError reports a split set whose amounts do not reconstruct
// the transaction total. Remaining is the amount still unallocated (negative
// when the splits overshoot).
type UnbalancedSplitError struct {
	Remaining decimal.Decimal
}

func (e *UnbalancedSplitError) Error() string {
	return fmt.Sprintf("split amounts do not match the transaction total, remaining: %s", e.Remaining.StringFixed(2))
}

func NewUnbalancedSplitError(remaining decimal.Decimal) error {
	return &UnbalancedSplitError{Remaining: remaining}
}

func IsUnbalancedSplitError(err error) bool {
	var unbalancedSplitError *UnbalancedSplitError
	return errors.As(err, &unbalancedSplitError)
}

type MissingTransferTargetError struct {
	SplitIndex int
}

func (e *MissingTransferTargetError) Error() string {
	return fmt.Sprintf("transfer split %d has no target account", e.SplitIndex)
}

func NewMissingTransferTargetError(splitIndex int) error {
	return &MissingTransferTargetError{SplitIndex: splitIndex}
}

func IsMissingTransferTargetError(err error) bool {
	var missingTransferTargetError *MissingTransferTargetError
	return errors.As(err, &missingTransferTargetError)
}

type AlreadyLinkedError struct {
	TransactionID string
}

func (e *AlreadyLinkedError) Error() string {
	return fmt.Sprintf("transaction %s is already part of a transfer", e.TransactionID)
}

func NewAlreadyLinkedError(transactionID string) error {
	return &AlreadyLinkedError{TransactionID: transactionID}
}

func IsAlreadyLinkedError(err error) bool {
	var alreadyLinkedError *AlreadyLinkedError
	return errors.As(err, &alreadyLinkedError)
}

type CrossAccountError struct {
	AccountID string
}

func (e *CrossAccountError) Error() string {
	return fmt.Sprintf("both sides of the transfer resolve to account %s", e.AccountID)
}

func NewCrossAccountError(accountID string) error {
	return &CrossAccountError{AccountID: accountID}
}

func IsCrossAccountError(err error) bool {
	var crossAccountError *CrossAccountError
	return errors.As(err, &crossAccountError)
}

// StorageError wraps a driver-level failure so callers can distinguish it
// from the engine's own error kinds.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Err: err}
}

func IsStorageError(err error) bool {
	var storageError *StorageError
	return errors.As(err, &storageError)
}
