package catalog

import (
	"strings"
	"time"

	"github.com/koperasi/backend/internal/domain/shared"
)

// Category groups products for the cashier screen
type Category struct {
	shared.BaseEntity
	Name string
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("Nama kategori tidak boleh kosong")
	}
	if len(name) > 100 {
		return shared.NewValidationError("Nama kategori maksimal 100 karakter")
	}
	return nil
}
