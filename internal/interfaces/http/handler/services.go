package handler

import (
	"context"

	"github.com/google/uuid"
	cashierapp "github.com/koperasi/backend/internal/application/cashier"
	catalogapp "github.com/koperasi/backend/internal/application/catalog"
	identityapp "github.com/koperasi/backend/internal/application/identity"
	partnerapp "github.com/koperasi/backend/internal/application/partner"
	purchaseapp "github.com/koperasi/backend/internal/application/purchase"
	receiptapp "github.com/koperasi/backend/internal/application/receipt"
	reportapp "github.com/koperasi/backend/internal/application/report"
	saleapp "github.com/koperasi/backend/internal/application/sale"
)

// The interfaces below are the slices of the application services each
// handler calls. The concrete services satisfy them.

// AuthService authenticates operators
type AuthService interface {
	Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.LoginResult, error)
	Logout(ctx context.Context, input identityapp.LogoutInput) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserInfo, error)
}

// SaleService records and reads sales
type SaleService interface {
	CreateSale(ctx context.Context, req saleapp.CreateSaleRequest) (*saleapp.SaleResponse, error)
	DeleteSales(ctx context.Context, ids []uuid.UUID) []saleapp.DeleteResult
	GetSale(ctx context.Context, id uuid.UUID) (*saleapp.SaleResponse, error)
	ListSales(ctx context.Context, filter saleapp.SaleListFilter) ([]saleapp.SaleListItemResponse, int64, error)
}

// CreditPaymentService records installments against credit sales
type CreditPaymentService interface {
	AddPayment(ctx context.Context, saleID uuid.UUID, amount int64, note string) (*saleapp.CreditPaymentResponse, error)
	UpdatePayment(ctx context.Context, paymentID uuid.UUID, amount int64, note *string) (*saleapp.CreditPaymentResponse, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*saleapp.CreditPaymentResponse, error)
	ListPayments(ctx context.Context, filter saleapp.PaymentListFilter) ([]saleapp.CreditPaymentResponse, int64, error)
}

// ReceiptService renders printable receipts
type ReceiptService interface {
	Render(ctx context.Context, id uuid.UUID, format string) (*receiptapp.Receipt, error)
}

// PurchaseService records supplier deliveries
type PurchaseService interface {
	CreatePurchase(ctx context.Context, req purchaseapp.CreatePurchaseRequest) (*purchaseapp.PurchaseResponse, error)
	UpdatePurchase(ctx context.Context, id uuid.UUID, req purchaseapp.UpdatePurchaseRequest) (*purchaseapp.PurchaseResponse, error)
	DeletePurchases(ctx context.Context, ids []uuid.UUID) error
	GetPurchase(ctx context.Context, id uuid.UUID) (*purchaseapp.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter purchaseapp.PurchaseListFilter) ([]purchaseapp.PurchaseResponse, int64, error)
	FormData(ctx context.Context) (*purchaseapp.FormDataResponse, error)
}

// CashierDataService loads the point-of-sale screen
type CashierDataService interface {
	Data(ctx context.Context) (*cashierapp.DataResponse, error)
}

// ProductService manages the product catalog
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*catalogapp.DeleteProductResult, error)
}

// CategoryService manages product categories
type CategoryService interface {
	Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error)
	List(ctx context.Context) ([]catalogapp.CategoryResponse, error)
}

// MemberService manages cooperative members
type MemberService interface {
	Create(ctx context.Context, req partnerapp.CreateMemberRequest) (*partnerapp.PartnerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.PartnerResponse, error)
	List(ctx context.Context, activeOnly bool) ([]partnerapp.PartnerResponse, error)
}

// SupplierService manages suppliers
type SupplierService interface {
	Create(ctx context.Context, req partnerapp.CreateSupplierRequest) (*partnerapp.PartnerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.PartnerResponse, error)
	List(ctx context.Context, activeOnly bool) ([]partnerapp.PartnerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DashboardService computes the yearly summary
type DashboardService interface {
	Yearly(ctx context.Context, year int) ([]reportapp.MonthlySummaryResponse, error)
}

// ReportService exports and archives the yearly sales report
type ReportService interface {
	SalesWorkbook(ctx context.Context, year int) (*reportapp.Workbook, error)
	ArchiveSalesReport(ctx context.Context, year int) (*reportapp.ArchiveResponse, error)
}

var (
	_ AuthService          = (*identityapp.AuthService)(nil)
	_ SaleService          = (*saleapp.SaleService)(nil)
	_ CreditPaymentService = (*saleapp.CreditPaymentService)(nil)
	_ ReceiptService       = (*receiptapp.ReceiptService)(nil)
	_ PurchaseService      = (*purchaseapp.PurchaseService)(nil)
	_ CashierDataService   = (*cashierapp.CashierService)(nil)
	_ ProductService       = (*catalogapp.ProductService)(nil)
	_ CategoryService      = (*catalogapp.CategoryService)(nil)
	_ MemberService        = (*partnerapp.MemberService)(nil)
	_ SupplierService      = (*partnerapp.SupplierService)(nil)
	_ DashboardService     = (*reportapp.DashboardService)(nil)
	_ ReportService        = (*reportapp.ReportService)(nil)
)
