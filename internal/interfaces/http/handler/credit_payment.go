package handler

import (
	"github.com/gin-gonic/gin"
	saleapp "github.com/koperasi/backend/internal/application/sale"
)

// CreditPaymentHandler handles installment endpoints
type CreditPaymentHandler struct {
	BaseHandler
	payments CreditPaymentService
}

// NewCreditPaymentHandler creates a new CreditPaymentHandler
func NewCreditPaymentHandler(payments CreditPaymentService) *CreditPaymentHandler {
	return &CreditPaymentHandler{payments: payments}
}

// Create godoc
// @ID           createCreditPayment
// @Summary      Add an installment
// @Description  Pay part of a credit sale. The sale completes once fully paid.
// @Tags         credit-payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry key"
// @Param        request body sale.AddPaymentRequest true "Installment"
// @Success      201 {object} APIResponse[sale.CreditPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /credit-payment [post]
func (h *CreditPaymentHandler) Create(c *gin.Context) {
	var req saleapp.AddPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.payments.AddPayment(c.Request.Context(), req.SaleID, req.Amount, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateCreditPayment
// @Summary      Correct an installment
// @Tags         credit-payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body sale.UpdatePaymentRequest true "New amount"
// @Success      200 {object} APIResponse[sale.CreditPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /credit-payment/{id} [put]
func (h *CreditPaymentHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req saleapp.UpdatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.payments.UpdatePayment(c.Request.Context(), id, req.Amount, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteCreditPayment
// @Summary      Delete an installment
// @Description  Remove the installment and reopen the sale if it is no longer fully paid
// @Tags         credit-payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[IDData]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /credit-payment/{id} [delete]
func (h *CreditPaymentHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.payments.DeletePayment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, IDData{ID: id.String()})
}

// Get godoc
// @ID           getCreditPayment
// @Summary      Get an installment
// @Tags         credit-payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[sale.CreditPaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /credit-payment/{id} [get]
func (h *CreditPaymentHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listCreditPayments
// @Summary      List installments
// @Tags         credit-payments
// @Produce      json
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]sale.CreditPaymentResponse]
// @Security     BearerAuth
// @Router       /credit-payment [get]
func (h *CreditPaymentHandler) List(c *gin.Context) {
	var filter saleapp.PaymentListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	saleID, ok := h.QueryUUID(c, "sale_id")
	if !ok {
		return
	}
	filter.SaleID = saleID
	items, total, err := h.payments.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
