package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cashierapp "github.com/koperasi/backend/internal/application/cashier"
	catalogapp "github.com/koperasi/backend/internal/application/catalog"
	identityapp "github.com/koperasi/backend/internal/application/identity"
	partnerapp "github.com/koperasi/backend/internal/application/partner"
	purchaseapp "github.com/koperasi/backend/internal/application/purchase"
	receiptapp "github.com/koperasi/backend/internal/application/receipt"
	reportapp "github.com/koperasi/backend/internal/application/report"
	saleapp "github.com/koperasi/backend/internal/application/sale"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
	"github.com/koperasi/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestRouter returns an engine that authenticates every request as
// userID with role
func newTestRouter(userID uuid.UUID, role string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.JWTUserIDKey, userID.String())
			c.Set(middleware.JWTRoleKey, role)
		}
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()
	var raw struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw), rec.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, rec, nil)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

// ==================== Service mocks ====================

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identityapp.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserInfo), args.Error(1)
}

type MockSaleService struct{ mock.Mock }

func (m *MockSaleService) CreateSale(ctx context.Context, req saleapp.CreateSaleRequest) (*saleapp.SaleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) DeleteSales(ctx context.Context, ids []uuid.UUID) []saleapp.DeleteResult {
	return m.Called(ctx, ids).Get(0).([]saleapp.DeleteResult)
}

func (m *MockSaleService) GetSale(ctx context.Context, id uuid.UUID) (*saleapp.SaleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, filter saleapp.SaleListFilter) ([]saleapp.SaleListItemResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]saleapp.SaleListItemResponse), args.Get(1).(int64), args.Error(2)
}

type MockCreditPaymentService struct{ mock.Mock }

func (m *MockCreditPaymentService) AddPayment(ctx context.Context, saleID uuid.UUID, amount int64, note string) (*saleapp.CreditPaymentResponse, error) {
	args := m.Called(ctx, saleID, amount, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleapp.CreditPaymentResponse), args.Error(1)
}

func (m *MockCreditPaymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, amount int64, note *string) (*saleapp.CreditPaymentResponse, error) {
	args := m.Called(ctx, paymentID, amount, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleapp.CreditPaymentResponse), args.Error(1)
}

func (m *MockCreditPaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return m.Called(ctx, paymentID).Error(0)
}

func (m *MockCreditPaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*saleapp.CreditPaymentResponse, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleapp.CreditPaymentResponse), args.Error(1)
}

func (m *MockCreditPaymentService) ListPayments(ctx context.Context, filter saleapp.PaymentListFilter) ([]saleapp.CreditPaymentResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]saleapp.CreditPaymentResponse), args.Get(1).(int64), args.Error(2)
}

type MockReceiptService struct{ mock.Mock }

func (m *MockReceiptService) Render(ctx context.Context, id uuid.UUID, format string) (*receiptapp.Receipt, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiptapp.Receipt), args.Error(1)
}

type MockPurchaseService struct{ mock.Mock }

func (m *MockPurchaseService) CreatePurchase(ctx context.Context, req purchaseapp.CreatePurchaseRequest) (*purchaseapp.PurchaseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) UpdatePurchase(ctx context.Context, id uuid.UUID, req purchaseapp.UpdatePurchaseRequest) (*purchaseapp.PurchaseResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) DeletePurchases(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockPurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*purchaseapp.PurchaseResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) ListPurchases(ctx context.Context, filter purchaseapp.PurchaseListFilter) ([]purchaseapp.PurchaseResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]purchaseapp.PurchaseResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseService) FormData(ctx context.Context) (*purchaseapp.FormDataResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseapp.FormDataResponse), args.Error(1)
}

type MockCashierDataService struct{ mock.Mock }

func (m *MockCashierDataService) Data(ctx context.Context) (*cashierapp.DataResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.DataResponse), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) (*catalogapp.DeleteProductResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.DeleteProductResult), args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}

type MockMemberService struct{ mock.Mock }

func (m *MockMemberService) Create(ctx context.Context, req partnerapp.CreateMemberRequest) (*partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.PartnerResponse), args.Error(1)
}

func (m *MockMemberService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.PartnerResponse), args.Error(1)
}

func (m *MockMemberService) List(ctx context.Context, activeOnly bool) ([]partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]partnerapp.PartnerResponse), args.Error(1)
}

type MockSupplierService struct{ mock.Mock }

func (m *MockSupplierService) Create(ctx context.Context, req partnerapp.CreateSupplierRequest) (*partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.PartnerResponse), args.Error(1)
}

func (m *MockSupplierService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.PartnerResponse), args.Error(1)
}

func (m *MockSupplierService) List(ctx context.Context, activeOnly bool) ([]partnerapp.PartnerResponse, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]partnerapp.PartnerResponse), args.Error(1)
}

func (m *MockSupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) Yearly(ctx context.Context, year int) ([]reportapp.MonthlySummaryResponse, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reportapp.MonthlySummaryResponse), args.Error(1)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) SalesWorkbook(ctx context.Context, year int) (*reportapp.Workbook, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.Workbook), args.Error(1)
}

func (m *MockReportService) ArchiveSalesReport(ctx context.Context, year int) (*reportapp.ArchiveResponse, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.ArchiveResponse), args.Error(1)
}

var (
	_ AuthService          = (*MockAuthService)(nil)
	_ SaleService          = (*MockSaleService)(nil)
	_ CreditPaymentService = (*MockCreditPaymentService)(nil)
	_ ReceiptService       = (*MockReceiptService)(nil)
	_ PurchaseService      = (*MockPurchaseService)(nil)
	_ CashierDataService   = (*MockCashierDataService)(nil)
	_ ProductService       = (*MockProductService)(nil)
	_ CategoryService      = (*MockCategoryService)(nil)
	_ MemberService        = (*MockMemberService)(nil)
	_ SupplierService      = (*MockSupplierService)(nil)
	_ DashboardService     = (*MockDashboardService)(nil)
	_ ReportService        = (*MockReportService)(nil)
)
