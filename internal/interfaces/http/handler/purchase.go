package handler

import (
	"github.com/gin-gonic/gin"
	purchaseapp "github.com/koperasi/backend/internal/application/purchase"
)

// PurchaseHandler handles supplier purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// purchaseListQuery adds the form-data switch to the list filter
type purchaseListQuery struct {
	purchaseapp.PurchaseListFilter
	IncludeProductsSuppliers bool `form:"include_products_suppliers"`
}

// PurchaseListWithFormData is the list response when the purchase form
// choices are requested alongside
// @Description Purchases with supplier and product choices
type PurchaseListWithFormData struct {
	Purchases []purchaseapp.PurchaseResponse `json:"purchases"`
	Suppliers []purchaseapp.RefResponse      `json:"suppliers"`
	Products  []purchaseapp.FormProduct      `json:"products"`
}

// Create godoc
// @ID           createPurchase
// @Summary      Record a purchase
// @Description  Record a supplier delivery. Stock is added once the purchase is verified.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry key"
// @Param        request body purchase.CreatePurchaseRequest true "Purchase"
// @Success      201 {object} APIResponse[purchase.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchaseapp.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.purchases.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updatePurchase
// @Summary      Update a draft purchase
// @Description  Change supplier or items, or verify. Verified purchases are frozen.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body purchase.UpdatePurchaseRequest true "Changes"
// @Success      200 {object} APIResponse[purchase.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req purchaseapp.UpdatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.purchases.UpdatePurchase(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBatch godoc
// @ID           deletePurchases
// @Summary      Delete purchases
// @Description  Delete all listed draft purchases, or none if any of them is verified
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body purchase.DeletePurchasesRequest true "Purchase IDs"
// @Success      200 {object} APIResponse[purchase.DeletePurchasesRequest]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases [delete]
func (h *PurchaseHandler) DeleteBatch(c *gin.Context) {
	var req purchaseapp.DeletePurchasesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.purchases.DeletePurchases(c.Request.Context(), req.IDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, req)
}

// Get godoc
// @ID           getPurchase
// @Summary      Get a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[purchase.PurchaseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.purchases.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listPurchases
// @Summary      List purchases
// @Description  Paginated. With include_products_suppliers=true the data also carries the purchase form choices.
// @Tags         purchases
// @Produce      json
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Param        verified query bool false "Verified only or drafts only"
// @Param        include_products_suppliers query bool false "Include form choices"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]purchase.PurchaseResponse]
// @Security     BearerAuth
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	var query purchaseListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	supplierID, ok := h.QueryUUID(c, "supplier_id")
	if !ok {
		return
	}
	query.SupplierID = supplierID
	ctx := c.Request.Context()
	items, total, err := h.purchases.ListPurchases(ctx, query.PurchaseListFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !query.IncludeProductsSuppliers {
		h.SuccessWithMeta(c, items, total, query.Page, query.PageSize)
		return
	}

	form, err := h.purchases.FormData(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, PurchaseListWithFormData{
		Purchases: items,
		Suppliers: form.Suppliers,
		Products:  form.Products,
	}, total, query.Page, query.PageSize)
}
