package dto

import (
	"net/http"

	"github.com/koperasi/backend/internal/domain/shared"
)

// Error codes. Domain codes are passed through unchanged; the rest are
// produced by the HTTP layer itself.
const (
	ErrCodeValidation          = shared.CodeValidation
	ErrCodeInvalidInput        = shared.CodeInvalidInput
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeAlreadyExists       = shared.CodeAlreadyExists
	ErrCodeConflict            = shared.CodeConflict
	ErrCodeUnauthorized        = shared.CodeUnauthorized
	ErrCodeForbidden           = shared.CodeForbidden
	ErrCodeInvalidState        = shared.CodeInvalidState
	ErrCodeInsufficientStock   = shared.CodeInsufficientStock
	ErrCodeInsufficientPayment = shared.CodeInsufficientPayment
	ErrCodeAlreadyPaid         = shared.CodeAlreadyPaid
	ErrCodeAlreadyVerified     = shared.CodeAlreadyVerified
	ErrCodeNotCredit           = shared.CodeNotCredit
	ErrCodeSaleImmutable       = shared.CodeSaleImmutable
	ErrCodeProductInactive     = shared.CodeProductInactive

	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeBodyTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input and business rule errors -> 400
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInsufficientStock:   http.StatusBadRequest,
	ErrCodeInsufficientPayment: http.StatusBadRequest,
	ErrCodeAlreadyPaid:         http.StatusBadRequest,
	ErrCodeAlreadyVerified:     http.StatusBadRequest,
	ErrCodeNotCredit:           http.StatusBadRequest,
	ErrCodeSaleImmutable:       http.StatusBadRequest,
	ErrCodeProductInactive:     http.StatusBadRequest,
	ErrCodeInvalidState:        http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
