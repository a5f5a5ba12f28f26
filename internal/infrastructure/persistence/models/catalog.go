package models

import (
	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// Names are unique among active products only.
type ProductModel struct {
	BaseModel
	Name       string         `gorm:"type:varchar(200);not null;index"`
	Barcode    string         `gorm:"type:varchar(64)"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index"`
	Price      int64          `gorm:"not null"`
	Stock      int            `gorm:"not null;default:0;check:stock >= 0"`
	Active     bool           `gorm:"not null;default:true"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Barcode:    m.Barcode,
		CategoryID: m.CategoryID,
		Price:      m.Price,
		Stock:      m.Stock,
		Active:     m.Active,
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Barcode = p.Barcode
	m.CategoryID = p.CategoryID
	m.Price = p.Price
	m.Stock = p.Stock
	m.Active = p.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
