// Package partner manages members and suppliers.
package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/shared"
)

// MemberService handles member registration and lookup
type MemberService struct {
	memberRepo partner.MemberRepository
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo partner.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// Create registers a new member
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*PartnerResponse, error) {
	member, err := partner.NewMember(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	resp := ToMemberResponse(member)
	return &resp, nil
}

// GetByID retrieves a member by its ID
func (s *MemberService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, partner.ErrMemberNotFound
		}
		return nil, err
	}
	resp := ToMemberResponse(member)
	return &resp, nil
}

// List returns all members; activeOnly restricts it to the cashier's view
func (s *MemberService) List(ctx context.Context, activeOnly bool) ([]PartnerResponse, error) {
	var (
		members []partner.Member
		err     error
	)
	if activeOnly {
		members, err = s.memberRepo.FindActive(ctx)
	} else {
		members, err = s.memberRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(members), nil
}
