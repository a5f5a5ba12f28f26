package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/shared"
)

// SupplierService handles supplier registration and removal
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create registers a supplier, reviving a deactivated one with the same name
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*PartnerResponse, error) {
	existing, err := s.supplierRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var supplier *partner.Supplier
	if existing != nil {
		if err := existing.Reactivate(req.Phone, req.Address); err != nil {
			return nil, err
		}
		supplier = existing
	} else {
		supplier, err = partner.NewSupplier(req.Name, req.Phone, req.Address)
		if err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, partner.ErrSupplierExists
		}
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier by its ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns suppliers; activeOnly hides deactivated ones
func (s *SupplierService) List(ctx context.Context, activeOnly bool) ([]PartnerResponse, error) {
	var (
		suppliers []partner.Supplier
		err       error
	)
	if activeOnly {
		suppliers, err = s.supplierRepo.FindActive(ctx)
	} else {
		suppliers, err = s.supplierRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ToSupplierResponses(suppliers), nil
}

// Delete deactivates a supplier; purchases keep referencing it
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !supplier.Active {
		return nil
	}
	supplier.Deactivate()
	return s.supplierRepo.Save(ctx, supplier)
}

func (s *SupplierService) find(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, partner.ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}
