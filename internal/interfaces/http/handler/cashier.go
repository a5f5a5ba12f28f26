package handler

import "github.com/gin-gonic/gin"

// CashierHandler serves the point-of-sale screen
type CashierHandler struct {
	BaseHandler
	data  CashierDataService
	sales SaleService
}

// NewCashierHandler creates a new CashierHandler
func NewCashierHandler(data CashierDataService, sales SaleService) *CashierHandler {
	return &CashierHandler{data: data, sales: sales}
}

// Data godoc
// @ID           getCashierData
// @Summary      Cashier screen data
// @Description  Active products with their category and active members
// @Tags         cashier
// @Produce      json
// @Success      200 {object} APIResponse[cashier.DataResponse]
// @Security     BearerAuth
// @Router       /cashier [get]
func (h *CashierHandler) Data(c *gin.Context) {
	resp, err := h.data.Data(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Checkout godoc
// @ID           cashierCheckout
// @Summary      Check out from the cashier screen
// @Description  Same as POST /sales
// @Tags         cashier
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry key"
// @Param        request body sale.CreateSaleRequest true "Checkout"
// @Success      201 {object} APIResponse[sale.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cashier [post]
func (h *CashierHandler) Checkout(c *gin.Context) {
	createSale(c, &h.BaseHandler, h.sales)
}
