package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	BaseModel
	CashierID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	MemberID      *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerType  sale.CustomerType  `gorm:"type:varchar(20);not null"`
	CustomerName  string             `gorm:"type:varchar(200)"`
	PaymentMethod sale.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status        sale.Status        `gorm:"type:varchar(20);not null;index"`
	Total         int64              `gorm:"not null"`
	PaidAmount    int64              `gorm:"not null;default:0"`
	Cash          *int64
	ChangeAmount  *int64
	DueDate       *time.Time
	Lines         []SaleLineModel `gorm:"foreignKey:SaleID"`
	Cashier       *UserModel      `gorm:"foreignKey:CashierID"`
	Member        *MemberModel    `gorm:"foreignKey:MemberID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *sale.Sale {
	s := &sale.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		CashierID:     m.CashierID,
		MemberID:      m.MemberID,
		CustomerType:  m.CustomerType,
		CustomerName:  m.CustomerName,
		PaymentMethod: m.PaymentMethod,
		Status:        m.Status,
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		Cash:          m.Cash,
		Change:        m.ChangeAmount,
		DueDate:       m.DueDate,
	}
	if m.Cashier != nil {
		s.CashierName = m.Cashier.Name
	}
	if m.Member != nil {
		s.MemberName = m.Member.Name
	}
	if len(m.Lines) > 0 {
		s.Lines = make([]sale.Line, len(m.Lines))
		for i := range m.Lines {
			s.Lines[i] = m.Lines[i].ToDomain()
		}
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale, lines included.
func (m *SaleModel) FromDomain(s *sale.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CashierID = s.CashierID
	m.MemberID = s.MemberID
	m.CustomerType = s.CustomerType
	m.CustomerName = s.CustomerName
	m.PaymentMethod = s.PaymentMethod
	m.Status = s.Status
	m.Total = s.Total
	m.PaidAmount = s.PaidAmount
	m.Cash = s.Cash
	m.ChangeAmount = s.Change
	m.DueDate = s.DueDate
	m.Lines = make([]SaleLineModel, len(s.Lines))
	for i := range s.Lines {
		m.Lines[i].FromDomain(&s.Lines[i])
		m.Lines[i].SaleID = s.ID
		m.Lines[i].Position = i
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *sale.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleLineModel is one product row of a sale. Position keeps the checkout
// order. The product name is read through the products join rather than stored.
type SaleLineModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key"`
	SaleID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Position  int           `gorm:"not null;default:0"`
	ProductID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Quantity  int           `gorm:"not null"`
	UnitPrice int64         `gorm:"not null"`
	Total     int64         `gorm:"not null"`
	Product   *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts the persistence model to a domain Line.
func (m *SaleLineModel) ToDomain() sale.Line {
	line := sale.Line{
		ID:        m.ID,
		SaleID:    m.SaleID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Total:     m.Total,
	}
	if m.Product != nil {
		line.ProductName = m.Product.Name
	}
	return line
}

// FromDomain populates the persistence model from a domain Line.
func (m *SaleLineModel) FromDomain(l *sale.Line) {
	m.ID = l.ID
	m.SaleID = l.SaleID
	m.ProductID = l.ProductID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.Total = l.Total
}

// CreditPaymentModel is the persistence model for a credit installment.
type CreditPaymentModel struct {
	BaseModel
	SaleID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount int64     `gorm:"not null"`
	Note   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CreditPaymentModel) TableName() string {
	return "credit_payments"
}

// ToDomain converts the persistence model to a domain CreditPayment.
func (m *CreditPaymentModel) ToDomain() *sale.CreditPayment {
	return &sale.CreditPayment{
		BaseEntity: m.BaseModel.ToDomain(),
		SaleID:     m.SaleID,
		Amount:     m.Amount,
		Note:       m.Note,
	}
}

// FromDomain populates the persistence model from a domain CreditPayment.
func (m *CreditPaymentModel) FromDomain(p *sale.CreditPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SaleID = p.SaleID
	m.Amount = p.Amount
	m.Note = p.Note
}

// CreditPaymentModelFromDomain creates a new persistence model from a domain CreditPayment.
func CreditPaymentModelFromDomain(p *sale.CreditPayment) *CreditPaymentModel {
	m := &CreditPaymentModel{}
	m.FromDomain(p)
	return m
}
