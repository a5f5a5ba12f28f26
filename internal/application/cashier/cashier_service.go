// Package cashier serves the data the point-of-sale screen loads on open.
package cashier

import (
	"context"

	catalogapp "github.com/koperasi/backend/internal/application/catalog"
	partnerapp "github.com/koperasi/backend/internal/application/partner"
	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/partner"
)

// DataResponse is everything the cashier needs to start a sale
type DataResponse struct {
	Products []catalogapp.ProductResponse `json:"products"`
	Members  []partnerapp.PartnerResponse `json:"members"`
}

// CashierService reads the sellable products and active members
type CashierService struct {
	productRepo catalog.ProductRepository
	memberRepo  partner.MemberRepository
}

// NewCashierService creates a new CashierService
func NewCashierService(productRepo catalog.ProductRepository, memberRepo partner.MemberRepository) *CashierService {
	return &CashierService{productRepo: productRepo, memberRepo: memberRepo}
}

// Data returns active products, with their category, and active members
func (s *CashierService) Data(ctx context.Context) (*DataResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return &DataResponse{
		Products: catalogapp.ToProductResponses(products),
		Members:  partnerapp.ToMemberResponses(members),
	}, nil
}
