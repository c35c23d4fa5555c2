package application

import (
	"strings"

	"github.com/google/uuid"

	"github.com/adrianvt/finledger/internal/ledger/domain"
	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory adds a root category (parentID nil) or a sub-category of a
// root. The hierarchy is capped at two levels, so a sub-category cannot be
// the parent of another category.
func (s *CategoryService) CreateCategory(name string, parentID *string, color, icon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledgerErrors.NewValidationError("category name must not be empty")
	}
	if parentID != nil {
		parent, err := s.repo.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ledgerErrors.NewNotFoundError("category", *parentID)
		}
		if !parent.IsRoot() {
			return nil, ledgerErrors.NewValidationError("categories cannot be nested below a sub-category")
		}
	}

	category := domain.Category{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
		Color:    color,
		Icon:     icon,
	}
	if err := s.repo.Save(category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ResolveDisplay returns the category's presentation attributes, walking up
// one parent level for color and icon when the category leaves them unset.
func (s *CategoryService) ResolveDisplay(categoryID string) (*domain.CategoryDisplay, error) {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ledgerErrors.NewNotFoundError("category", categoryID)
	}

	display := domain.CategoryDisplay{
		Name:  category.Name,
		Color: category.Color,
		Icon:  category.Icon,
	}
	if category.ParentID != nil && (display.Color == "" || display.Icon == "") {
		parent, err := s.repo.FindByID(*category.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			if display.Color == "" {
				display.Color = parent.Color
			}
			if display.Icon == "" {
				display.Icon = parent.Icon
			}
		}
	}
	return &display, nil
}

func (s *CategoryService) IsRoot(categoryID string) (bool, error) {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		return false, err
	}
	if category == nil {
		return false, ledgerErrors.NewNotFoundError("category", categoryID)
	}
	return category.IsRoot(), nil
}

func (s *CategoryService) DoesCategoryExist(categoryID string) (bool, error) {
	return s.repo.ExistsByID(categoryID)
}

func (s *CategoryService) GetAllCategories() ([]domain.Category, error) {
	return s.repo.FindAll()
}
