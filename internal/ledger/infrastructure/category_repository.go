package infrastructure

import (
	"database/sql"

	"github.com/adrianvt/finledger/internal/ledger/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category domain.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, parent_id, color, icon) VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.Name, category.ParentID, category.Color, category.Icon,
	)
	return err
}

func (r *CategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	var category domain.Category
	var parentID sql.NullString
	err := r.db.QueryRow(
		`SELECT id, name, parent_id, color, icon FROM categories WHERE id = $1`,
		categoryID,
	).Scan(&category.ID, &category.Name, &parentID, &category.Color, &category.Icon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		category.ParentID = &parentID.String
	}
	return &category, nil
}

func (r *CategoryRepository) ExistsByID(categoryID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) FindAll() ([]domain.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, parent_id, color, icon FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		var parentID sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &parentID, &category.Color, &category.Icon); err != nil {
			return nil, err
		}
		if parentID.Valid {
			category.ParentID = &parentID.String
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
