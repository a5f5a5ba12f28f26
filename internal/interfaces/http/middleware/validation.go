package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
)

// SetupValidator makes validation errors name fields by their JSON (or
// form) tag.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationDetails converts binding errors into per-field details. Errors
// that are not validator errors (malformed JSON) yield nil.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(e),
			Message: validationMessage(e),
		})
	}
	return details
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateSaleRequest.products[0].quantity" becomes "products[0].quantity"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// validationMessage returns an Indonesian message for a failed rule
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Wajib diisi"
	case "min":
		if e.Kind() == reflect.String {
			return "Minimal " + e.Param() + " karakter"
		}
		if e.Kind() == reflect.Slice {
			return "Minimal " + e.Param() + " item"
		}
		return "Minimal " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Maksimal " + e.Param() + " karakter"
		}
		return "Maksimal " + e.Param()
	case "uuid":
		return "Format UUID tidak valid"
	case "oneof":
		return "Harus salah satu dari: " + e.Param()
	case "gt":
		return "Harus lebih besar dari " + e.Param()
	case "gte":
		return "Harus lebih besar atau sama dengan " + e.Param()
	default:
		return "Nilai tidak valid"
	}
}
