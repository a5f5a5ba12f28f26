package partner

import (
	"strings"
	"time"

	"github.com/koperasi/backend/internal/domain/shared"
)

// Supplier delivers goods recorded by purchases. The name is unique among
// active suppliers; deleting a supplier only deactivates it.
type Supplier struct {
	shared.BaseEntity
	Name    string
	Phone   string
	Address string
	Active  bool
}

// NewSupplier creates a new active supplier
func NewSupplier(name, phone, address string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name, "supplier"); err != nil {
		return nil, err
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
		Active:     true,
	}, nil
}

// Reactivate revives an inactive supplier and overwrites its contact details
func (s *Supplier) Reactivate(phone, address string) error {
	if s.Active {
		return ErrSupplierExists
	}
	s.Active = true
	s.Phone = strings.TrimSpace(phone)
	s.Address = strings.TrimSpace(address)
	s.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the supplier
func (s *Supplier) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}

// Partner errors
var (
	ErrMemberNotFound   = shared.NewNotFoundError("Customer tidak ditemukan")
	ErrSupplierNotFound = shared.NewNotFoundError("Supplier tidak ditemukan")
	ErrSupplierExists   = shared.NewDomainError(shared.CodeAlreadyExists, "Supplier sudah ada")
)
