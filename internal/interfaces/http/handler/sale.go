package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	saleapp "github.com/koperasi/backend/internal/application/sale"
	"github.com/koperasi/backend/internal/domain/shared"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	BaseHandler
	sales    SaleService
	payments CreditPaymentService
	receipts ReceiptService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales SaleService, payments CreditPaymentService, receipts ReceiptService) *SaleHandler {
	return &SaleHandler{sales: sales, payments: payments, receipts: receipts}
}

// SalePaymentRequest is the body of PUT /sales/:id. Only an installment
// can be added to an existing sale.
// @Description Installment against a credit sale
type SalePaymentRequest struct {
	Amount *int64 `json:"amount" example:"25000"`
	Note   string `json:"note" binding:"max=255" example:"Cicilan kedua"`
}

// Create godoc
// @ID           createSale
// @Summary      Create a sale
// @Description  Check out a cart. Stock is decremented atomically; the logged-in user is the cashier.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry key"
// @Param        request body sale.CreateSaleRequest true "Checkout"
// @Success      201 {object} APIResponse[sale.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	createSale(c, &h.BaseHandler, h.sales)
}

// createSale is shared by POST /sales and POST /cashier
func createSale(c *gin.Context, h *BaseHandler, sales SaleService) {
	var req saleapp.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cashierID, err := currentUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	req.CashierID = cashierID

	resp, err := sales.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddPayment godoc
// @ID           addSalePayment
// @Summary      Pay a credit sale
// @Description  Record an installment against the sale. A body without amount is rejected because sales cannot be edited.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body SalePaymentRequest true "Installment"
// @Success      200 {object} APIResponse[sale.CreditPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [put]
func (h *SaleHandler) AddPayment(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req SalePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Amount == nil {
		h.HandleError(c, shared.ErrSaleImmutable)
		return
	}
	resp, err := h.payments.AddPayment(c.Request.Context(), id, *req.Amount, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBatch godoc
// @ID           deleteSales
// @Summary      Delete sales
// @Description  Delete each listed sale and return its stock. Every id is handled on its own; the response reports each outcome.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body sale.DeleteSalesRequest true "Sale IDs"
// @Success      200 {object} APIResponse[[]sale.DeleteResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [delete]
func (h *SaleHandler) DeleteBatch(c *gin.Context) {
	var req saleapp.DeleteSalesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Success(c, h.sales.DeleteSales(c.Request.Context(), req.IDs))
}

// Get godoc
// @ID           getSale
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[sale.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listSales
// @Summary      List sales
// @Description  Newest first, paginated
// @Tags         sales
// @Produce      json
// @Param        status query string false "Status" Enums(IN_PROGRESS, COMPLETE)
// @Param        payment_method query string false "Payment method" Enums(CASH, CREDIT)
// @Param        member_id query string false "Member ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]sale.SaleListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter saleapp.SaleListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	memberID, ok := h.QueryUUID(c, "member_id")
	if !ok {
		return
	}
	filter.MemberID = memberID
	items, total, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Receipt godoc
// @ID           getSaleReceipt
// @Summary      Print a receipt
// @Description  Render the sale receipt as HTML or as an 80mm PDF
// @Tags         sales
// @Produce      html
// @Produce      application/pdf
// @Param        id path string true "Sale ID" format(uuid)
// @Param        format query string false "Output format" Enums(html, pdf) default(html)
// @Success      200 {file} binary
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.receipts.Render(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+receipt.Filename+`"`)
	c.Data(http.StatusOK, receipt.ContentType, receipt.Data)
}
