package shared

import "errors"

// Error codes shared by every bounded context. The HTTP layer maps these
// codes to status codes, so they are part of the public contract.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeConflict            = "CONFLICT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidState        = "INVALID_STATE"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	CodeAlreadyPaid         = "ALREADY_PAID"
	CodeAlreadyVerified     = "ALREADY_VERIFIED"
	CodeNotCredit           = "NOT_CREDIT"
	CodeSaleImmutable       = "SALE_IMMUTABLE"
	CodeProductInactive     = "PRODUCT_INACTIVE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrInsufficientStock) matches regardless of the message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a NOT_FOUND error with the given message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// Common domain errors
var (
	ErrValidation          = NewDomainError(CodeValidation, "Data tidak valid")
	ErrNotFound            = NewDomainError(CodeNotFound, "Data tidak ditemukan")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Data sudah ada")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Data tidak valid")
	ErrConflict            = NewDomainError(CodeConflict, "Permintaan sedang atau sudah diproses")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Tidak memiliki akses")
	ErrForbidden           = NewDomainError(CodeForbidden, "Akses ditolak")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operasi tidak diizinkan pada status saat ini")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Stok tidak cukup")
	ErrInsufficientPayment = NewDomainError(CodeInsufficientPayment, "Uang tidak cukup")
	ErrAlreadyPaid         = NewDomainError(CodeAlreadyPaid, "Penjualan sudah dibayar")
	ErrAlreadyVerified     = NewDomainError(CodeAlreadyVerified, "Pembelian sudah diverifikasi")
	ErrNotCredit           = NewDomainError(CodeNotCredit, "Penjualan tidak menggunakan kredit")
	ErrSaleImmutable       = NewDomainError(CodeSaleImmutable, "Data penjualan tidak bisa diubah")
)
