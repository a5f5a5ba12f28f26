package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/purchase"
)

// ItemInput is one product row of a purchase request
type ItemInput struct {
	ID            uuid.UUID `json:"id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	PurchasePrice int64     `json:"purchasePrice" binding:"required,gt=0"`
}

// CreatePurchaseRequest represents a request to record a supplier purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID   `json:"supplierId" binding:"required"`
	Items      []ItemInput `json:"items" binding:"required,min=1,dive"`
	Verified   bool        `json:"verified"`
}

// UpdatePurchaseRequest represents a change to a draft purchase. Nil fields
// are left unchanged.
type UpdatePurchaseRequest struct {
	SupplierID *uuid.UUID  `json:"supplierId"`
	Items      []ItemInput `json:"items" binding:"omitempty,dive"`
	Verified   *bool       `json:"verified"`
}

// DeletePurchasesRequest lists the purchases to delete
type DeletePurchasesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	SupplierID *uuid.UUID `form:"-"`
	Verified   *bool      `form:"verified"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RefResponse is an id/name pair
type RefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PurchaseItemResponse represents one purchase row
type PurchaseItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	PurchasePrice int64     `json:"purchasePrice"`
	Total         int64     `json:"total"`
}

// PurchaseResponse represents a purchase with its items
type PurchaseResponse struct {
	ID         uuid.UUID              `json:"id"`
	Supplier   RefResponse            `json:"supplier"`
	Total      int64                  `json:"total"`
	Verified   bool                   `json:"verified"`
	VerifiedAt *time.Time             `json:"verifiedAt,omitempty"`
	Items      []PurchaseItemResponse `json:"items"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// FormProduct is a product choice in the purchase form
type FormProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
	Stock int       `json:"stock"`
}

// FormDataResponse carries the choices needed to fill a purchase form
type FormDataResponse struct {
	Suppliers []RefResponse `json:"suppliers"`
	Products  []FormProduct `json:"products"`
}

// ToPurchaseResponse converts a domain Purchase to its response DTO
func ToPurchaseResponse(p *purchase.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = PurchaseItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Name:          it.ProductName,
			Quantity:      it.Quantity,
			PurchasePrice: it.PurchasePrice,
			Total:         it.Total,
		}
	}
	return PurchaseResponse{
		ID:         p.ID,
		Supplier:   RefResponse{ID: p.SupplierID, Name: p.SupplierName},
		Total:      p.Total,
		Verified:   p.Verified,
		VerifiedAt: p.VerifiedAt,
		Items:      items,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToPurchaseResponses converts a list of purchases
func ToPurchaseResponses(purchases []purchase.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}

func toFormData(suppliers []partner.Supplier, products []catalog.Product) FormDataResponse {
	data := FormDataResponse{
		Suppliers: make([]RefResponse, len(suppliers)),
		Products:  make([]FormProduct, len(products)),
	}
	for i, s := range suppliers {
		data.Suppliers[i] = RefResponse{ID: s.ID, Name: s.Name}
	}
	for i, p := range products {
		data.Products[i] = FormProduct{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
	}
	return data
}

func toDomainInputs(items []ItemInput) []purchase.ItemInput {
	out := make([]purchase.ItemInput, len(items))
	for i, it := range items {
		out[i] = purchase.ItemInput{ProductID: it.ID, Quantity: it.Quantity, PurchasePrice: it.PurchasePrice}
	}
	return out
}
