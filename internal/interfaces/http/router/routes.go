package router

import (
	"github.com/gin-gonic/gin"

	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/interfaces/http/handler"
	"github.com/koperasi/backend/internal/interfaces/http/middleware"
)

// Handlers are the resource handlers mounted under the API prefix
type Handlers struct {
	Auth          *handler.AuthHandler
	Sale          *handler.SaleHandler
	CreditPayment *handler.CreditPaymentHandler
	Cashier       *handler.CashierHandler
	Purchase      *handler.PurchaseHandler
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Member        *handler.MemberHandler
	Supplier      *handler.SupplierHandler
	Report        *handler.ReportHandler
}

// Guards are the cross-cutting middlewares applied per route. A nil guard is
// skipped.
type Guards struct {
	Authenticate gin.HandlerFunc
	// Annotate runs right after Authenticate, e.g. to tag the request span
	Annotate       gin.HandlerFunc
	Idempotency    gin.HandlerFunc
	LoginRateLimit gin.HandlerFunc
}

// APIGroups builds the route groups of the cooperative API
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	var (
		cashier    = middleware.RequireRoles(identity.RoleCashier)
		purchasing = middleware.RequireRoles(identity.RolePurchasing)
		storeStaff = middleware.RequireRoles(identity.RoleCashier, identity.RolePurchasing)
		adminOnly  = middleware.RequireRoles(identity.RoleAdmin)
	)

	authGroup := NewDomainGroup("auth", "/auth")
	authGroup.POST("/login", chain(g.LoginRateLimit, h.Auth.Login)...)
	authGroup.GET("/me", chain(g.Authenticate, g.Annotate, h.Auth.Me)...)
	authGroup.POST("/logout", chain(g.Authenticate, g.Annotate, h.Auth.Logout)...)

	sales := protected("sales", "/sales", g.Authenticate, g.Annotate, cashier)
	sales.POST("", chain(g.Idempotency, h.Sale.Create)...)
	sales.GET("", h.Sale.List)
	sales.DELETE("", h.Sale.DeleteBatch)
	sales.GET("/:id", h.Sale.Get)
	sales.PUT("/:id", h.Sale.AddPayment)
	sales.GET("/:id/receipt", h.Sale.Receipt)

	payments := protected("credit-payment", "/credit-payment", g.Authenticate, g.Annotate, cashier)
	payments.POST("", chain(g.Idempotency, h.CreditPayment.Create)...)
	payments.GET("", h.CreditPayment.List)
	payments.GET("/:id", h.CreditPayment.Get)
	payments.PUT("/:id", h.CreditPayment.Update)
	payments.DELETE("/:id", h.CreditPayment.Delete)

	cashierGroup := protected("cashier", "/cashier", g.Authenticate, g.Annotate, cashier)
	cashierGroup.GET("", h.Cashier.Data)
	cashierGroup.POST("", chain(g.Idempotency, h.Cashier.Checkout)...)

	purchases := protected("purchases", "/purchases", g.Authenticate, g.Annotate, purchasing)
	purchases.POST("", h.Purchase.Create)
	purchases.GET("", h.Purchase.List)
	purchases.DELETE("", h.Purchase.DeleteBatch)
	purchases.GET("/:id", h.Purchase.Get)
	purchases.PUT("/:id", h.Purchase.Update)

	products := protected("products", "/products", g.Authenticate, g.Annotate)
	products.GET("", storeStaff, h.Product.List)
	products.GET("/:id", storeStaff, h.Product.Get)
	products.POST("", purchasing, h.Product.Create)
	products.PUT("/:id", purchasing, h.Product.Update)
	products.DELETE("/:id", purchasing, h.Product.Delete)

	categories := protected("categories", "/categories", g.Authenticate, g.Annotate)
	categories.GET("", storeStaff, h.Category.List)
	categories.GET("/:id", storeStaff, h.Category.Get)
	categories.POST("", purchasing, h.Category.Create)

	members := protected("members", "/members", g.Authenticate, g.Annotate, cashier)
	members.POST("", h.Member.Create)
	members.GET("", h.Member.List)
	members.GET("/:id", h.Member.Get)

	suppliers := protected("suppliers", "/suppliers", g.Authenticate, g.Annotate, purchasing)
	suppliers.POST("", h.Supplier.Create)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.Get)
	suppliers.DELETE("/:id", h.Supplier.Delete)

	dashboard := protected("dashboard", "/dashboard", g.Authenticate, g.Annotate, adminOnly)
	dashboard.GET("/:year", h.Report.Dashboard)

	reports := protected("reports", "/reports", g.Authenticate, g.Annotate, adminOnly)
	reports.GET("/sales/:year", h.Report.SalesWorkbook)
	reports.POST("/sales/:year/archive", h.Report.ArchiveSalesReport)

	return []*DomainGroup{
		authGroup, sales, payments, cashierGroup, purchases,
		products, categories, members, suppliers, dashboard, reports,
	}
}

// protected creates a group whose routes all pass through the given
// middlewares
func protected(name, prefix string, middlewares ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup(name, prefix).Use(chain(middlewares...)...)
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
