package infrastructure

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func assignmentColumns(a domain.CategoryAssignment) (string, *string) {
	if a.Status == domain.StatusAssigned {
		categoryID := a.CategoryID
		return string(a.Status), &categoryID
	}
	return string(a.Status), nil
}

func assignmentFromColumns(status string, categoryID sql.NullString) domain.CategoryAssignment {
	if domain.AssignmentStatus(status) == domain.StatusAssigned && categoryID.Valid {
		return domain.AssignedTo(categoryID.String)
	}
	return domain.CategoryAssignment{Status: domain.AssignmentStatus(status)}
}

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	status, categoryID := assignmentColumns(transaction.Assignment)
	_, err := r.db.Exec(
		`INSERT INTO transactions (id, account_id, amount, date, concept, notes, status, category_id, is_split, transfer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		transaction.ID, transaction.AccountID, transaction.Amount, transaction.Date,
		transaction.Concept, transaction.Notes, status, categoryID,
		transaction.IsSplit, transaction.TransferID,
	)
	return err
}

func (r *TransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var status string
	var categoryID, transferID sql.NullString
	err := r.db.QueryRow(
		`SELECT id, account_id, amount, date, concept, notes, status, category_id, is_split, transfer_id
		 FROM transactions WHERE id = $1`,
		transactionID,
	).Scan(&transaction.ID, &transaction.AccountID, &transaction.Amount, &transaction.Date,
		&transaction.Concept, &transaction.Notes, &status, &categoryID,
		&transaction.IsSplit, &transferID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	transaction.Assignment = assignmentFromColumns(status, categoryID)
	if transferID.Valid {
		transaction.TransferID = &transferID.String
	}

	transaction.Splits, err = r.findSplits(transactionID)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) findSplits(transactionID string) ([]domain.TransactionSplit, error) {
	rows, err := r.db.Query(
		`SELECT id, transaction_id, position, status, category_id, amount, notes, target_account_id, mirror_transaction_id, transfer_id
		 FROM transaction_splits WHERE transaction_id = $1 ORDER BY position`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []domain.TransactionSplit
	for rows.Next() {
		var split domain.TransactionSplit
		var status string
		var categoryID, targetAccountID, mirrorTransactionID, transferID sql.NullString
		if err := rows.Scan(&split.ID, &split.TransactionID, &split.Position, &status, &categoryID,
			&split.Amount, &split.Notes, &targetAccountID, &mirrorTransactionID, &transferID); err != nil {
			return nil, err
		}
		split.Assignment = assignmentFromColumns(status, categoryID)
		if targetAccountID.Valid {
			split.TargetAccountID = &targetAccountID.String
		}
		if mirrorTransactionID.Valid {
			split.MirrorTransactionID = &mirrorTransactionID.String
		}
		if transferID.Valid {
			split.TransferID = &transferID.String
		}
		splits = append(splits, split)
	}
	return splits, rows.Err()
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	status, categoryID := assignmentColumns(transaction.Assignment)
	_, err := r.db.Exec(
		`UPDATE transactions SET notes = $1, status = $2, category_id = $3 WHERE id = $4`,
		transaction.Notes, status, categoryID, transaction.ID,
	)
	return err
}

func (r *TransactionRepository) AssignCategoryToPending(pattern, categoryID string) (int, error) {
	result, err := r.db.Exec(
		`UPDATE transactions
		 SET status = 'assigned', category_id = $1
		 WHERE POSITION($2 IN UPPER(concept)) > 0
		   AND status = 'pending'
		   AND is_split = FALSE
		   AND transfer_id IS NULL`,
		categoryID, pattern,
	)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *TransactionRepository) FindTransferCandidates(amount decimal.Decimal, date time.Time, windowDays int, excludeID string) ([]domain.Transaction, error) {
	from := date.AddDate(0, 0, -windowDays)
	to := date.AddDate(0, 0, windowDays)
	rows, err := r.db.Query(
		`SELECT id, account_id, amount, date, concept, notes, status, category_id, is_split, transfer_id
		 FROM transactions
		 WHERE amount = $1
		   AND id <> $2
		   AND transfer_id IS NULL
		   AND is_split = FALSE
		   AND date BETWEEN $3 AND $4
		 ORDER BY ABS(EXTRACT(EPOCH FROM (date::timestamp - $5::timestamp))), date`,
		amount, excludeID, from, to, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		var status string
		var categoryID, transferID sql.NullString
		if err := rows.Scan(&transaction.ID, &transaction.AccountID, &transaction.Amount, &transaction.Date,
			&transaction.Concept, &transaction.Notes, &status, &categoryID,
			&transaction.IsSplit, &transferID); err != nil {
			return nil, err
		}
		transaction.Assignment = assignmentFromColumns(status, categoryID)
		if transferID.Valid {
			transaction.TransferID = &transferID.String
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// ReplaceSplits swaps the transaction's decomposition in one database
// transaction: old mirrors and splits go out, new splits and mirrors come in,
// and the parent is flagged as split with its single category discarded.
func (r *TransactionRepository) ReplaceSplits(transactionID string, splits []domain.TransactionSplit, mirrors []domain.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteSplitsAndMirrors(tx, transactionID); err != nil {
		return err
	}

	for _, mirror := range mirrors {
		status, categoryID := assignmentColumns(mirror.Assignment)
		if _, err := tx.Exec(
			`INSERT INTO transactions (id, account_id, amount, date, concept, notes, status, category_id, is_split, transfer_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			mirror.ID, mirror.AccountID, mirror.Amount, mirror.Date,
			mirror.Concept, mirror.Notes, status, categoryID, mirror.IsSplit, mirror.TransferID,
		); err != nil {
			return err
		}
	}

	for _, split := range splits {
		status, categoryID := assignmentColumns(split.Assignment)
		if _, err := tx.Exec(
			`INSERT INTO transaction_splits (id, transaction_id, position, status, category_id, amount, notes, target_account_id, mirror_transaction_id, transfer_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			split.ID, split.TransactionID, split.Position, status, categoryID,
			split.Amount, split.Notes, split.TargetAccountID, split.MirrorTransactionID, split.TransferID,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`UPDATE transactions SET is_split = TRUE, status = 'pending', category_id = NULL WHERE id = $1`,
		transactionID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TransactionRepository) ClearSplits(transactionID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteSplitsAndMirrors(tx, transactionID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`UPDATE transactions SET is_split = FALSE, status = 'pending', category_id = NULL WHERE id = $1`,
		transactionID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func deleteSplitsAndMirrors(tx *sql.Tx, transactionID string) error {
	rows, err := tx.Query(
		`SELECT mirror_transaction_id FROM transaction_splits
		 WHERE transaction_id = $1 AND mirror_transaction_id IS NOT NULL`,
		transactionID,
	)
	if err != nil {
		return err
	}
	var mirrorIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		mirrorIDs = append(mirrorIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM transaction_splits WHERE transaction_id = $1`, transactionID); err != nil {
		return err
	}
	for _, id := range mirrorIDs {
		if _, err := tx.Exec(`DELETE FROM transactions WHERE id = $1`, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionRepository) LinkTransfer(sourceID, targetID, transferID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, id := range []string{sourceID, targetID} {
		result, err := tx.Exec(
			`UPDATE transactions SET transfer_id = $1, status = 'transfer', category_id = NULL
			 WHERE id = $2 AND transfer_id IS NULL`,
			transferID, id,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		// A concurrent link beat us to one of the rows.
		if affected != 1 {
			return ledgerErrors.NewAlreadyLinkedError(id)
		}
	}

	return tx.Commit()
}

func (r *TransactionRepository) CreateMirror(sourceID string, mirror domain.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	status, categoryID := assignmentColumns(mirror.Assignment)
	if _, err := tx.Exec(
		`INSERT INTO transactions (id, account_id, amount, date, concept, notes, status, category_id, is_split, transfer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		mirror.ID, mirror.AccountID, mirror.Amount, mirror.Date,
		mirror.Concept, mirror.Notes, status, categoryID, mirror.IsSplit, mirror.TransferID,
	); err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE transactions SET transfer_id = $1, status = 'transfer', category_id = NULL
		 WHERE id = $2 AND transfer_id IS NULL`,
		mirror.TransferID, sourceID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != 1 {
		return ledgerErrors.NewAlreadyLinkedError(sourceID)
	}

	return tx.Commit()
}
