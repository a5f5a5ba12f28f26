package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// Product is a sellable item in the catalog. Stock is owned by the
// inventory ledger; catalog operations never change it after creation.
type Product struct {
	shared.BaseEntity
	Name       string
	Barcode    string
	CategoryID *uuid.UUID
	Price      int64
	Stock      int
	Active     bool

	CategoryName string // read only
}

// NewProduct creates a new active product
func NewProduct(name string, price int64, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewValidationError("Stok tidak boleh negatif")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Stock:      stock,
		Active:     true,
	}, nil
}

// Update changes the product's descriptive fields and price
func (p *Product) Update(name string, price int64) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Name = name
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory sets or clears the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if len(barcode) > 50 {
		return shared.NewValidationError("Barcode maksimal 50 karakter")
	}
	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	return nil
}

// Reactivate revives an inactive product under the same name, overwriting
// its price and stock with the values of the new registration.
func (p *Product) Reactivate(price int64, stock int) error {
	if p.Active {
		return ErrProductExists
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if stock < 0 {
		return shared.NewValidationError("Stok tidak boleh negatif")
	}

	p.Active = true
	p.Price = price
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Active
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Nama produk tidak boleh kosong")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Nama produk maksimal 200 karakter")
	}
	return nil
}

func validatePrice(price int64) error {
	if price <= 0 {
		return shared.NewValidationError("Harga harus lebih dari 0")
	}
	return nil
}

// Catalog errors
var (
	ErrProductNotFound  = shared.NewNotFoundError("Produk tidak ditemukan")
	ErrProductExists    = shared.NewDomainError(shared.CodeAlreadyExists, "Produk sudah ada")
	ErrProductInactive  = shared.NewDomainError(shared.CodeProductInactive, "Produk dinonaktifkan")
	ErrCategoryNotFound = shared.NewNotFoundError("Kategori tidak ditemukan")
	ErrCategoryExists   = shared.NewDomainError(shared.CodeAlreadyExists, "Kategori sudah ada")
)
