package domain

// Category is one node of the two-level spending hierarchy. ParentID is nil
// for root categories; sub-categories never have children of their own.
type Category struct {
	ID       string
	Name     string
	ParentID *string
	Color    string
	Icon     string
}

func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryDisplay is the resolved presentation of a category, with color and
// icon inherited from the parent when the category leaves them unset.
type CategoryDisplay struct {
	Name  string
	Color string
	Icon  string
}

type CategoryRepository interface {
	Save(category Category) error
	FindByID(categoryID string) (*Category, error)
	ExistsByID(categoryID string) (bool, error)
	FindAll() ([]Category, error)
}
