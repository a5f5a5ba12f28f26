package models

import (
	"github.com/koperasi/backend/internal/domain/partner"
)

// MemberModel is the persistence model for the Member domain entity.
type MemberModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *MemberModel) ToDomain() *partner.Member {
	return &partner.Member{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Member entity.
func (m *MemberModel) FromDomain(member *partner.Member) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.Name = member.Name
	m.Phone = member.Phone
	m.Address = member.Address
	m.Active = member.Active
}

// MemberModelFromDomain creates a new persistence model from a domain Member entity.
func MemberModelFromDomain(member *partner.Member) *MemberModel {
	m := &MemberModel{}
	m.FromDomain(member)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Phone = s.Phone
	m.Address = s.Address
	m.Active = s.Active
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
