package infrastructure

import (
	"database/sql"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(account domain.Account) error {
	_, err := r.db.Exec(
		`INSERT INTO accounts (id, name, auto_mirror_transfers) VALUES ($1, $2, $3)`,
		account.ID, account.Name, account.AutoMirrorTransfers,
	)
	return err
}

func (r *AccountRepository) FindByID(accountID string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, name, auto_mirror_transfers FROM accounts WHERE id = $1`,
		accountID,
	).Scan(&account.ID, &account.Name, &account.AutoMirrorTransfers)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) ExistsByID(accountID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, accountID,
	).Scan(&exists)
	return exists, err
}
