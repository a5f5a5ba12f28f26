// Package handler adapts the application services to gin. Handlers bind and
// validate input, call one service operation and write the response
// envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/logger"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
	"github.com/koperasi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const internalErrorMessage = "Terjadi kesalahan pada server"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	if page < 1 {
		page = dto.DefaultPage
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 with VALIDATION_ERROR
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeValidation, message)
}

// HandleError converts service errors to HTTP responses. Domain errors keep
// their code and message; storage errors that escaped a service are mapped
// by kind; anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}

	var notFound *shared.NotFoundError
	if errors.As(err, &notFound) {
		h.Error(c, dto.ErrCodeNotFound, shared.ErrNotFound.Message)
		return
	}
	var unique *shared.UniqueConstraintError
	if errors.As(err, &unique) {
		h.Error(c, dto.ErrCodeAlreadyExists, shared.ErrAlreadyExists.Message)
		return
	}
	var foreignKey *shared.ForeignKeyConstraintError
	if errors.As(err, &foreignKey) {
		h.Error(c, dto.ErrCodeConflict, "Data masih digunakan oleh data lain")
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error",
		zap.Error(err),
		zap.String("route", c.FullPath()),
	)
	h.Error(c, dto.ErrCodeInternal, internalErrorMessage)
}

// BindJSON binds the request body into obj. On failure it writes the 400
// response and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.bindFailed(c, err, "Format data tidak valid")
		return false
	}
	return true
}

// BindQuery binds query parameters into obj. On failure it writes the 400
// response and returns false.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.bindFailed(c, err, "Parameter tidak valid")
		return false
	}
	return true
}

func (h *BaseHandler) bindFailed(c *gin.Context, err error, fallback string) {
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Data tidak valid", middleware.GetRequestID(c), details))
		return
	}
	h.BadRequest(c, fallback)
}

// ParamUUID parses the named path parameter. On failure it writes a 400 and
// returns false.
func (h *BaseHandler) ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "ID tidak valid")
		return uuid.Nil, false
	}
	return id, true
}

// QueryUUID parses an optional uuid query parameter. An absent parameter
// yields nil; a malformed one writes a 400 and returns false.
func (h *BaseHandler) QueryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Parameter "+name+" tidak valid")
		return nil, false
	}
	return &id, true
}

// currentUserID returns the authenticated user's id
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return uuid.Nil, shared.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return id, nil
}
