package partner

import (
	"strings"
	"time"

	"github.com/koperasi/backend/internal/domain/shared"
)

// Member is a registered cooperative member who can buy on credit
type Member struct {
	shared.BaseEntity
	Name    string
	Phone   string
	Address string
	Active  bool
}

// NewMember creates a new active member
func NewMember(name, phone, address string) (*Member, error) {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name, "anggota"); err != nil {
		return nil, err
	}
	return &Member{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
		Active:     true,
	}, nil
}

// UpdateContact replaces the member's contact details
func (m *Member) UpdateContact(name, phone, address string) error {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name, "anggota"); err != nil {
		return err
	}
	m.Name = name
	m.Phone = strings.TrimSpace(phone)
	m.Address = strings.TrimSpace(address)
	m.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the member from the cashier screen
func (m *Member) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

func validatePartnerName(name, kind string) error {
	if name == "" {
		return shared.NewValidationError("Nama " + kind + " tidak boleh kosong")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Nama " + kind + " maksimal 200 karakter")
	}
	return nil
}
