// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - identity.go: users
//   - catalog.go: categories, products
//   - partner.go: members, suppliers
//   - sale.go: sales, sale_lines, credit_payments
//   - purchase.go: purchases, purchase_items
//
// The schema itself is owned by the SQL files under migrations/.
package models
