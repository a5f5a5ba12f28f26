// Package purchase models supplier restocking. A purchase is a draft until
// it is verified; verification is the single moment its items enter stock.
package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/shared"
)

// Item is one product row of a purchase
type Item struct {
	ID            uuid.UUID
	PurchaseID    uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	PurchasePrice int64
	Total         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ProductName   string // read only
}

// ItemInput is the requested state of one purchase row
type ItemInput struct {
	ProductID     uuid.UUID
	Quantity      int
	PurchasePrice int64
}

// Purchase is the aggregate root for a supplier delivery
type Purchase struct {
	shared.BaseEntity
	SupplierID uuid.UUID
	Total      int64
	Verified   bool
	VerifiedAt *time.Time
	Items      []Item

	SupplierName string // read only
}

// NewPurchase creates a draft purchase with the given items
func NewPurchase(supplierID uuid.UUID, inputs []ItemInput) (*Purchase, error) {
	if supplierID == uuid.Nil || len(inputs) == 0 {
		return nil, ErrIncompletePurchase
	}
	if err := ValidateItems(inputs); err != nil {
		return nil, err
	}

	p := &Purchase{
		BaseEntity: shared.NewBaseEntity(),
		SupplierID: supplierID,
		Items:      make([]Item, 0, len(inputs)),
	}
	for _, in := range inputs {
		p.Items = append(p.Items, p.newItem(in))
	}
	p.recomputeTotal()
	return p, nil
}

// ValidateItems checks quantities, prices and duplicate products
func ValidateItems(inputs []ItemInput) error {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for _, in := range inputs {
		if in.ProductID == uuid.Nil || in.Quantity < 1 || in.PurchasePrice <= 0 {
			return ErrInvalidItem
		}
		if _, dup := seen[in.ProductID]; dup {
			return ErrDuplicateItem
		}
		seen[in.ProductID] = struct{}{}
	}
	return nil
}

// EnsureMutable returns AlreadyVerified for finalized purchases
func (p *Purchase) EnsureMutable() error {
	if p.Verified {
		return shared.ErrAlreadyVerified
	}
	return nil
}

// ChangeSupplier points the draft at another supplier
func (p *Purchase) ChangeSupplier(supplierID uuid.UUID) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if supplierID == uuid.Nil {
		return ErrIncompletePurchase
	}
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	return nil
}

// ItemDiff is the change set that turns the current items into the requested ones
type ItemDiff struct {
	Create []Item
	Update []Item
	Delete []Item
}

// IsEmpty returns true if the diff changes nothing
func (d ItemDiff) IsEmpty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}

// DiffItems compares the requested items with the current ones by product
// id. Rows whose quantity and price are unchanged are left out of Update.
func (p *Purchase) DiffItems(inputs []ItemInput) (ItemDiff, error) {
	if err := p.EnsureMutable(); err != nil {
		return ItemDiff{}, err
	}
	if len(inputs) == 0 {
		return ItemDiff{}, ErrIncompletePurchase
	}
	if err := ValidateItems(inputs); err != nil {
		return ItemDiff{}, err
	}

	current := make(map[uuid.UUID]Item, len(p.Items))
	for _, it := range p.Items {
		current[it.ProductID] = it
	}

	var diff ItemDiff
	requested := make(map[uuid.UUID]struct{}, len(inputs))
	for _, in := range inputs {
		requested[in.ProductID] = struct{}{}
		existing, ok := current[in.ProductID]
		if !ok {
			diff.Create = append(diff.Create, p.newItem(in))
			continue
		}
		if existing.Quantity == in.Quantity && existing.PurchasePrice == in.PurchasePrice {
			continue
		}
		existing.Quantity = in.Quantity
		existing.PurchasePrice = in.PurchasePrice
		existing.Total = in.PurchasePrice * int64(in.Quantity)
		existing.UpdatedAt = time.Now()
		diff.Update = append(diff.Update, existing)
	}
	for _, it := range p.Items {
		if _, keep := requested[it.ProductID]; !keep {
			diff.Delete = append(diff.Delete, it)
		}
	}
	return diff, nil
}

// ApplyDiff replaces the in-memory item set and recomputes the total
func (p *Purchase) ApplyDiff(diff ItemDiff) {
	deleted := make(map[uuid.UUID]struct{}, len(diff.Delete))
	for _, it := range diff.Delete {
		deleted[it.ID] = struct{}{}
	}
	updated := make(map[uuid.UUID]Item, len(diff.Update))
	for _, it := range diff.Update {
		updated[it.ID] = it
	}

	items := make([]Item, 0, len(p.Items)+len(diff.Create))
	for _, it := range p.Items {
		if _, gone := deleted[it.ID]; gone {
			continue
		}
		if u, ok := updated[it.ID]; ok {
			it = u
		}
		items = append(items, it)
	}
	p.Items = append(items, diff.Create...)
	p.recomputeTotal()
}

// Verify finalizes the purchase. It may succeed only once.
func (p *Purchase) Verify() error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	now := time.Now()
	p.Verified = true
	p.VerifiedAt = &now
	p.UpdatedAt = now
	return nil
}

// StockRequests returns the quantities verification adds to stock
func (p *Purchase) StockRequests() []inventory.StockRequest {
	requests := make([]inventory.StockRequest, len(p.Items))
	for i, it := range p.Items {
		requests[i] = inventory.StockRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return requests
}

// ProductIDs returns the distinct products referenced by the items
func (p *Purchase) ProductIDs() []uuid.UUID {
	return inventory.ProductIDs(inventory.MergeRequests(p.StockRequests()))
}

func (p *Purchase) newItem(in ItemInput) Item {
	now := time.Now()
	return Item{
		ID:            uuid.New(),
		PurchaseID:    p.ID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		Total:         in.PurchasePrice * int64(in.Quantity),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Purchase) recomputeTotal() {
	var total int64
	for _, it := range p.Items {
		total += it.Total
	}
	p.Total = total
	p.UpdatedAt = time.Now()
}

// Purchase errors
var (
	ErrPurchaseNotFound   = shared.NewNotFoundError("Pembelian tidak ditemukan")
	ErrIncompletePurchase = shared.NewValidationError("Data tidak lengkap")
	ErrInvalidItem        = shared.NewValidationError("Data tidak valid")
	ErrDuplicateItem      = shared.NewValidationError("Produk tidak boleh duplikat dalam satu pembelian")
	ErrNothingToUpdate    = shared.NewValidationError("Tidak ada data yang diubah")
)
