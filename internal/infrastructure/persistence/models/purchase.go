package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/purchase"
)

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	BaseModel
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	Total      int64     `gorm:"not null"`
	Verified   bool      `gorm:"not null;default:false;index"`
	VerifiedAt *time.Time
	Items      []PurchaseItemModel `gorm:"foreignKey:PurchaseID"`
	Supplier   *SupplierModel      `gorm:"foreignKey:SupplierID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *purchase.Purchase {
	p := &purchase.Purchase{
		BaseEntity: m.BaseModel.ToDomain(),
		SupplierID: m.SupplierID,
		Total:      m.Total,
		Verified:   m.Verified,
		VerifiedAt: m.VerifiedAt,
	}
	if m.Supplier != nil {
		p.SupplierName = m.Supplier.Name
	}
	p.Items = make([]purchase.Item, len(m.Items))
	for i := range m.Items {
		p.Items[i] = m.Items[i].ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Purchase, items included.
func (m *PurchaseModel) FromDomain(p *purchase.Purchase) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SupplierID = p.SupplierID
	m.Total = p.Total
	m.Verified = p.Verified
	m.VerifiedAt = p.VerifiedAt
	m.Items = make([]PurchaseItemModel, len(p.Items))
	for i := range p.Items {
		m.Items[i].FromDomain(&p.Items[i])
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *purchase.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// PurchaseItemModel is one product row of a purchase.
type PurchaseItemModel struct {
	BaseModel
	PurchaseID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Quantity      int           `gorm:"not null"`
	PurchasePrice int64         `gorm:"not null"`
	Total         int64         `gorm:"not null"`
	Product       *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *PurchaseItemModel) ToDomain() purchase.Item {
	item := purchase.Item{
		ID:            m.ID,
		PurchaseID:    m.PurchaseID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Product != nil {
		item.ProductName = m.Product.Name
	}
	return item
}

// FromDomain populates the persistence model from a domain Item.
func (m *PurchaseItemModel) FromDomain(item *purchase.Item) {
	m.ID = item.ID
	m.PurchaseID = item.PurchaseID
	m.ProductID = item.ProductID
	m.Quantity = item.Quantity
	m.PurchasePrice = item.PurchasePrice
	m.Total = item.Total
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
}
