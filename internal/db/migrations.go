package database

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order and are safe to re-run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		auto_mirror_transfers BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id UUID REFERENCES categories(id),
		color TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS rules (
		id UUID PRIMARY KEY,
		pattern TEXT NOT NULL,
		category_id UUID NOT NULL REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		amount NUMERIC(14,2) NOT NULL,
		date DATE NOT NULL,
		concept TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'assigned', 'transfer')),
		category_id UUID REFERENCES categories(id),
		is_split BOOLEAN NOT NULL DEFAULT FALSE,
		transfer_id UUID
	)`,
	`CREATE TABLE IF NOT EXISTS transaction_splits (
		id UUID PRIMARY KEY,
		transaction_id UUID NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		position INT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('assigned', 'transfer')),
		category_id UUID REFERENCES categories(id),
		amount NUMERIC(14,2) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		target_account_id UUID REFERENCES accounts(id),
		mirror_transaction_id UUID,
		transfer_id UUID
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_transfer_id ON transactions(transfer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_splits_transaction_id ON transaction_splits(transaction_id)`,
}

// Migrate creates the engine's schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
