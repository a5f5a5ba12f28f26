package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/koperasi/backend/internal/application/partner"
)

// partnerListQuery filters member and supplier lists
type partnerListQuery struct {
	Active *bool `form:"active"`
}

// activeOnly defaults to listing active records only
func (q partnerListQuery) activeOnly() bool {
	return q.Active == nil || *q.Active
}

// MemberHandler handles cooperative member endpoints
type MemberHandler struct {
	BaseHandler
	members MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(members MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// Create godoc
// @ID           createMember
// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body partner.CreateMemberRequest true "Member"
// @Success      201 {object} APIResponse[partner.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req partnerapp.CreateMemberRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getMember
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Param        id path string true "Member ID" format(uuid)
// @Success      200 {object} APIResponse[partner.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.members.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listMembers
// @Summary      List members
// @Tags         members
// @Produce      json
// @Param        active query bool false "Only active members" default(true)
// @Success      200 {object} APIResponse[[]partner.PartnerResponse]
// @Security     BearerAuth
// @Router       /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	var query partnerListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	items, err := h.members.List(c.Request.Context(), query.activeOnly())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	suppliers SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// Create godoc
// @ID           createSupplier
// @Summary      Register a supplier
// @Description  Insert a supplier, or reactivate a deactivated one with the same name
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body partner.CreateSupplierRequest true "Supplier"
// @Success      201 {object} APIResponse[partner.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.suppliers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getSupplier
// @Summary      Get a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} APIResponse[partner.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.suppliers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        active query bool false "Only active suppliers" default(true)
// @Success      200 {object} APIResponse[[]partner.PartnerResponse]
// @Security     BearerAuth
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	var query partnerListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	items, err := h.suppliers.List(c.Request.Context(), query.activeOnly())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Delete godoc
// @ID           deleteSupplier
// @Summary      Deactivate a supplier
// @Description  Suppliers are kept for purchase history and only deactivated
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} APIResponse[IDData]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, IDData{ID: id.String()})
}
