package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentStatus is the lifecycle state of a transaction's categorization.
type AssignmentStatus string

const (
	StatusPending  AssignmentStatus = "pending"
	StatusAssigned AssignmentStatus = "assigned"
	StatusTransfer AssignmentStatus = "transfer"
)

// CategoryAssignment is a tagged variant: a transaction (or split) is either
// unassigned, assigned to a concrete category, or marked as one side of a
// transfer. CategoryID is meaningful only when Status is StatusAssigned.
type CategoryAssignment struct {
	Status     AssignmentStatus
	CategoryID string
}

func Unassigned() CategoryAssignment {
	return CategoryAssignment{Status: StatusPending}
}

func AssignedTo(categoryID string) CategoryAssignment {
	return CategoryAssignment{Status: StatusAssigned, CategoryID: categoryID}
}

func TransferAssignment() CategoryAssignment {
	return CategoryAssignment{Status: StatusTransfer}
}

func (a CategoryAssignment) IsPending() bool {
	return a.Status == StatusPending
}

func (a CategoryAssignment) IsTransfer() bool {
	return a.Status == StatusTransfer
}

// SplitTolerance is the currency rounding slack allowed between a
// transaction's absolute amount and the sum of its split amounts.
var SplitTolerance = decimal.RequireFromString("0.01")

// Transaction is one imported bank movement. Amount is signed (negative =
// money out). TransferID is set iff the transaction is one half of a
// reconciled transfer and exactly one other transaction shares it.
type Transaction struct {
	ID         string
	AccountID  string
	Amount     decimal.Decimal
	Date       time.Time
	Concept    string
	Notes      string
	Assignment CategoryAssignment
	IsSplit    bool
	TransferID *string
	Splits     []TransactionSplit
}

// TransactionSplit is one categorized portion of its parent's total.
// Amount is unsigned. A transfer-typed split carries the account the money
// moved to, the mirror transaction it synthesized there, and the transfer id
// shared with that mirror.
type TransactionSplit struct {
	ID                  string
	TransactionID       string
	Position            int
	Assignment          CategoryAssignment
	Amount              decimal.Decimal
	Notes               string
	TargetAccountID     *string
	MirrorTransactionID *string
	TransferID          *string
}

// SplitsBalance reports whether the split amounts reconstruct the
// transaction's absolute amount within SplitTolerance, and the unallocated
// remainder.
func (t Transaction) SplitsBalance(splits []TransactionSplit) (bool, decimal.Decimal) {
	total := decimal.Zero
	for _, split := range splits {
		total = total.Add(split.Amount)
	}
	remaining := t.Amount.Abs().Sub(total)
	return remaining.Abs().LessThanOrEqual(SplitTolerance), remaining
}

// MirrorAmount is the signed amount of the counterpart transaction for a
// portion of this transaction: opposite direction, same magnitude.
func (t Transaction) MirrorAmount(portion decimal.Decimal) decimal.Decimal {
	if t.Amount.IsNegative() {
		return portion.Abs()
	}
	return portion.Abs().Neg()
}

type TransactionRepository interface {
	Save(transaction Transaction) error
	FindByID(transactionID string) (*Transaction, error)
	// Update persists the transaction's scalar fields (assignment, notes);
	// splits are managed only through ReplaceSplits/ClearSplits.
	Update(transaction Transaction) error

	// AssignCategoryToPending bulk-assigns a category to every pending,
	// non-split, non-transfer-linked transaction whose uppercased concept
	// contains the (already uppercased) pattern. Returns the updated count.
	AssignCategoryToPending(pattern, categoryID string) (int, error)

	// FindTransferCandidates returns unlinked transactions with exactly the
	// given amount, dated within windowDays of date, excluding excludeID,
	// ordered by date proximity to date.
	FindTransferCandidates(amount decimal.Decimal, date time.Time, windowDays int, excludeID string) ([]Transaction, error)

	// ReplaceSplits atomically drops the transaction's existing splits and
	// the mirror transactions they created, inserts the new splits and
	// mirrors, and marks the parent as split with its single-category
	// assignment discarded.
	ReplaceSplits(transactionID string, splits []TransactionSplit, mirrors []Transaction) error

	// ClearSplits atomically deletes the transaction's splits and their
	// mirror transactions and resets the parent to pending, not split.
	ClearSplits(transactionID string) error

	// LinkTransfer atomically stamps both transactions with transferID and
	// marks both as transfers.
	LinkTransfer(sourceID, targetID, transferID string) error

	// CreateMirror atomically inserts the mirror transaction and stamps the
	// source with the mirror's transfer id, so the pair never exists
	// half-linked.
	CreateMirror(sourceID string, mirror Transaction) error
}
