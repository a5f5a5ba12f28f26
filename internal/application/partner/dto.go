package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/partner"
)

// CreateMemberRequest represents a request to register a member
type CreateMemberRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=500"`
}

// CreateSupplierRequest represents a request to register a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=500"`
}

// PartnerResponse represents a member or supplier in API responses
type PartnerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToMemberResponse converts a domain member to a response
func ToMemberResponse(m *partner.Member) PartnerResponse {
	return PartnerResponse{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Address:   m.Address,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToMemberResponses converts domain members to responses
func ToMemberResponses(members []partner.Member) []PartnerResponse {
	responses := make([]PartnerResponse, len(members))
	for i := range members {
		responses[i] = ToMemberResponse(&members[i])
	}
	return responses
}

// ToSupplierResponse converts a domain supplier to a response
func ToSupplierResponse(s *partner.Supplier) PartnerResponse {
	return PartnerResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSupplierResponses converts domain suppliers to responses
func ToSupplierResponses(suppliers []partner.Supplier) []PartnerResponse {
	responses := make([]PartnerResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
