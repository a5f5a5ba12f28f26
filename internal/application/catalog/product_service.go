// Package catalog manages products and categories. Product stock is set on
// registration only; afterwards it is owned by the inventory ledger.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create registers a product. A deactivated product with the same name is
// revived with the new price and stock instead of inserting a duplicate.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var product *catalog.Product
	if existing != nil {
		if err := existing.Reactivate(req.Price, req.Stock); err != nil {
			return nil, err
		}
		product = existing
	} else {
		product, err = catalog.NewProduct(req.Name, req.Price, req.Stock)
		if err != nil {
			return nil, err
		}
	}

	if err := product.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	if category != nil {
		product.CategoryName = category.Name
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, catalog.ErrProductExists
		}
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by its ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update changes a product's name, price, category or barcode
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
		if name != product.Name {
			other, err := s.productRepo.FindByName(ctx, name)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			if other != nil && other.ID != product.ID && other.Active {
				return nil, catalog.ErrProductExists
			}
		}
	}
	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}
	if err := product.Update(name, price); err != nil {
		return nil, err
	}

	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearCategory:
		product.SetCategory(nil)
		product.CategoryName = ""
	case req.CategoryID != nil:
		category, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
		product.CategoryName = category.Name
	}

	if err := s.productRepo.UpdateDetails(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, catalog.ErrProductExists
		}
		return nil, err
	}

	// stock may have moved since the read
	updated, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(updated)
	return &resp, nil
}

// Delete removes an unreferenced product. A product that appears on any sale
// or purchase is deactivated instead so history stays intact.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*DeleteProductResult, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.productRepo.IsReferenced(ctx, id)
	if err != nil {
		return nil, err
	}

	if referenced {
		product.Deactivate()
		if err := s.productRepo.UpdateDetails(ctx, product); err != nil {
			return nil, err
		}
		return &DeleteProductResult{
			ID:          id,
			Deactivated: true,
			Message:     "Produk sudah dipakai transaksi dan dinonaktifkan",
		}, nil
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteProductResult{ID: id, Message: "Produk berhasil dihapus"}, nil
}

// ListActive returns every product that can be sold
func (s *ProductService) ListActive(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) resolveCategory(ctx context.Context, id *uuid.UUID) (*catalog.Category, error) {
	if id == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
