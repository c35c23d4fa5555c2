package infrastructure

import (
	"database/sql"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Save(rule domain.Rule) error {
	_, err := r.db.Exec(
		`INSERT INTO rules (id, pattern, category_id) VALUES ($1, $2, $3)`,
		rule.ID, rule.Pattern, rule.CategoryID,
	)
	return err
}

func (r *RuleRepository) FindByID(ruleID string) (*domain.Rule, error) {
	var rule domain.Rule
	err := r.db.QueryRow(
		`SELECT id, pattern, category_id FROM rules WHERE id = $1`, ruleID,
	).Scan(&rule.ID, &rule.Pattern, &rule.CategoryID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) FindAll() ([]domain.Rule, error) {
	rows, err := r.db.Query(`SELECT id, pattern, category_id FROM rules ORDER BY pattern`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		var rule domain.Rule
		if err := rows.Scan(&rule.ID, &rule.Pattern, &rule.CategoryID); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
