package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

func TestSplitTransaction_BalancedSplits(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	groceries := f.seedCategory("Groceries")
	household := f.seedCategory("Household")
	transaction := f.seedTransaction(account.ID, "COMPRA MERCADONA 1234", "-80.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("55.50"), Notes: "food"},
		{Assignment: domain.AssignedTo(household.ID), Amount: dec("24.50"), Notes: "cleaning"},
	})
	require.NoError(t, err)

	reread, err := f.transactions.FindByID(transaction.ID)
	require.NoError(t, err)
	assert.True(t, reread.IsSplit)
	assert.True(t, reread.Assignment.IsPending(), "single-category assignment is discarded")
	require.Len(t, reread.Splits, 2)
	assert.True(t, reread.Splits[0].Amount.Equal(dec("55.50")))
	assert.True(t, reread.Splits[1].Amount.Equal(dec("24.50")))
	assert.Equal(t, "food", reread.Splits[0].Notes)
}

func TestSplitTransaction_WithinTolerance(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	groceries := f.seedCategory("Groceries")
	transaction := f.seedTransaction(account.ID, "COMPRA", "-30.00", day(2024, 5, 1))

	// 29.99 is one cent short, which currency rounding allows.
	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("29.99")},
	})
	assert.NoError(t, err)
}

func TestSplitTransaction_UnbalancedLeavesStateUntouched(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	groceries := f.seedCategory("Groceries")
	leisure := f.seedCategory("Leisure")
	transaction := f.seedTransaction(account.ID, "COMPRA", "-80.00", day(2024, 5, 1))
	f.transactions.Transactions[transaction.ID].Assignment = domain.AssignedTo(leisure.ID)

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("50.00")},
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("20.00")},
	})
	require.True(t, ledgerErrors.IsUnbalancedSplitError(err))
	var unbalanced *ledgerErrors.UnbalancedSplitError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.Remaining.Equal(dec("10.00")))

	reread, _ := f.transactions.FindByID(transaction.ID)
	assert.False(t, reread.IsSplit)
	assert.Empty(t, reread.Splits)
	assert.Equal(t, domain.AssignedTo(leisure.ID), reread.Assignment, "prior assignment survives the failed split")
}

func TestSplitTransaction_TransferSplitNeedsTarget(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	transaction := f.seedTransaction(account.ID, "TRASPASO", "-100.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.TransferAssignment(), Amount: dec("100.00")},
	})
	assert.True(t, ledgerErrors.IsMissingTransferTargetError(err))

	reread, _ := f.transactions.FindByID(transaction.ID)
	assert.False(t, reread.IsSplit)
}

func TestSplitTransaction_TransferSplitCreatesMirror(t *testing.T) {
	f := newEngineFixture()
	checking := f.seedAccount("checking", false)
	loan := f.seedAccount("car loan", true)
	groceries := f.seedCategory("Groceries")
	transaction := f.seedTransaction(checking.ID, "RECIBO VARIOS", "-80.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("50.00")},
		{Assignment: domain.TransferAssignment(), Amount: dec("30.00"), TargetAccountID: &loan.ID},
	})
	require.NoError(t, err)

	reread, _ := f.transactions.FindByID(transaction.ID)
	require.Len(t, reread.Splits, 2)
	transferSplit := reread.Splits[1]
	require.NotNil(t, transferSplit.MirrorTransactionID)
	require.NotNil(t, transferSplit.TransferID)

	mirror, err := f.transactions.FindByID(*transferSplit.MirrorTransactionID)
	require.NoError(t, err)
	require.NotNil(t, mirror)
	assert.Equal(t, loan.ID, mirror.AccountID)
	assert.True(t, mirror.Amount.Equal(dec("30.00")), "mirror of an outgoing portion is incoming")
	assert.Equal(t, transaction.Date, mirror.Date)
	assert.True(t, mirror.Assignment.IsTransfer())
	assert.Equal(t, *transferSplit.TransferID, *mirror.TransferID)
}

func TestSplitTransaction_TransferIntoSameAccount(t *testing.T) {
	f := newEngineFixture()
	checking := f.seedAccount("checking", false)
	transaction := f.seedTransaction(checking.ID, "TRASPASO", "-100.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.TransferAssignment(), Amount: dec("100.00"), TargetAccountID: &checking.ID},
	})
	assert.True(t, ledgerErrors.IsCrossAccountError(err))
}

func TestSplitTransaction_ResplitReplacesSplitsAndMirrors(t *testing.T) {
	f := newEngineFixture()
	checking := f.seedAccount("checking", false)
	loan := f.seedAccount("car loan", true)
	groceries := f.seedCategory("Groceries")
	transaction := f.seedTransaction(checking.ID, "RECIBO VARIOS", "-80.00", day(2024, 5, 1))

	require.NoError(t, f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("50.00")},
		{Assignment: domain.TransferAssignment(), Amount: dec("30.00"), TargetAccountID: &loan.ID},
	}))
	firstRead, _ := f.transactions.FindByID(transaction.ID)
	oldMirrorID := *firstRead.Splits[1].MirrorTransactionID

	require.NoError(t, f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("80.00")},
	}))

	reread, _ := f.transactions.FindByID(transaction.ID)
	require.Len(t, reread.Splits, 1)
	oldMirror, _ := f.transactions.FindByID(oldMirrorID)
	assert.Nil(t, oldMirror, "mirror from the replaced split set is gone")
}

func TestSplitTransaction_UnknownTransaction(t *testing.T) {
	f := newEngineFixture()
	err := f.splitService.SplitTransaction("00000000-0000-0000-0000-000000000000", []SplitInput{})
	assert.True(t, ledgerErrors.IsNotFoundError(err))
}

func TestSplitTransaction_RejectsEmptySplitList(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	transaction := f.seedTransaction(account.ID, "COMPRA", "-10.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, nil)
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestSplitTransaction_RejectsUncategorizedSplit(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	transaction := f.seedTransaction(account.ID, "COMPRA", "-10.00", day(2024, 5, 1))

	err := f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.Unassigned(), Amount: dec("10.00")},
	})
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestRemoveSplits_ResetsToPending(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	groceries := f.seedCategory("Groceries")
	transaction := f.seedTransaction(account.ID, "COMPRA", "-80.00", day(2024, 5, 1))

	require.NoError(t, f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.AssignedTo(groceries.ID), Amount: dec("80.00")},
	}))
	require.NoError(t, f.splitService.RemoveSplits(transaction.ID))

	reread, _ := f.transactions.FindByID(transaction.ID)
	assert.False(t, reread.IsSplit)
	assert.Empty(t, reread.Splits)
	// Even a single-split transaction resets to pending, it does not inherit
	// the removed split's category.
	assert.True(t, reread.Assignment.IsPending())
}

func TestRemoveSplits_DeletesMirrorTransactions(t *testing.T) {
	f := newEngineFixture()
	checking := f.seedAccount("checking", false)
	loan := f.seedAccount("car loan", true)
	transaction := f.seedTransaction(checking.ID, "TRASPASO", "-100.00", day(2024, 5, 1))

	require.NoError(t, f.splitService.SplitTransaction(transaction.ID, []SplitInput{
		{Assignment: domain.TransferAssignment(), Amount: dec("100.00"), TargetAccountID: &loan.ID},
	}))
	firstRead, _ := f.transactions.FindByID(transaction.ID)
	mirrorID := *firstRead.Splits[0].MirrorTransactionID

	require.NoError(t, f.splitService.RemoveSplits(transaction.ID))

	mirror, _ := f.transactions.FindByID(mirrorID)
	assert.Nil(t, mirror, "the split's mirror transaction is deleted with it")
	reread, _ := f.transactions.FindByID(transaction.ID)
	assert.Nil(t, reread.TransferID)
	assert.Empty(t, reread.Splits)
}

func TestRemoveSplits_NotSplit(t *testing.T) {
	f := newEngineFixture()
	account := f.seedAccount("checking", false)
	transaction := f.seedTransaction(account.ID, "COMPRA", "-10.00", day(2024, 5, 1))

	err := f.splitService.RemoveSplits(transaction.ID)
	assert.True(t, ledgerErrors.IsValidationError(err))
}
