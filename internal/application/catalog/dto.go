package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to register a product
type CreateProductRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	Price      int64      `json:"price" binding:"required,gt=0"`
	Stock      int        `json:"stock" binding:"gte=0"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Barcode    string     `json:"barcode" binding:"max=50"`
}

// UpdateProductRequest represents a request to update a product.
// Stock is not editable here; it changes only through sales and purchases.
type UpdateProductRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Price         *int64     `json:"price" binding:"omitempty,gt=0"`
	CategoryID    *uuid.UUID `json:"categoryId"`
	ClearCategory bool       `json:"clearCategory"`
	Barcode       *string    `json:"barcode" binding:"omitempty,max=50"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"-"`
	Active     *bool      `form:"active"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryRef is the category embedded in a product response
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Price     int64        `json:"price"`
	Stock     int          `json:"stock"`
	Active    bool         `json:"active"`
	Barcode   string       `json:"barcode,omitempty"`
	Category  *CategoryRef `json:"category"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// DeleteProductResult tells whether a product was removed or only deactivated
type DeleteProductResult struct {
	ID          uuid.UUID `json:"id"`
	Deactivated bool      `json:"deactivated"`
	Message     string    `json:"message"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Active:    p.Active,
		Barcode:   p.Barcode,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CategoryID != nil {
		resp.Category = &CategoryRef{ID: *p.CategoryID, Name: p.CategoryName}
	}
	return resp
}

// ToProductResponses converts a slice of domain products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
