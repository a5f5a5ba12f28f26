package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type validationRequest struct {
	Name          string           `json:"name" binding:"required,min=3"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=CASH CREDIT"`
	Products      []validationLine `json:"products" binding:"required,min=1,dive"`
}

func bindDetails(t *testing.T, body string) []dto.ValidationDetail {
	t.Helper()
	SetupValidator()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req validationRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	return ValidationDetails(err)
}

func TestValidationDetails_FieldNamesAndMessages(t *testing.T) {
	details := bindDetails(t, `{"name":"ab","payment_method":"CARD","products":[{"product_id":"x","quantity":0}]}`)

	byField := make(map[string]string, len(details))
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Minimal 3 karakter", byField["name"])
	assert.Equal(t, "Harus salah satu dari: CASH CREDIT", byField["payment_method"])
	assert.Equal(t, "Format UUID tidak valid", byField["products[0].product_id"])
	assert.Equal(t, "Wajib diisi", byField["products[0].quantity"])
}

func TestValidationDetails_EmptySlice(t *testing.T) {
	details := bindDetails(t, `{"name":"Budi","payment_method":"CASH","products":[]}`)

	require.Len(t, details, 1)
	assert.Equal(t, "products", details[0].Field)
	assert.Equal(t, "Minimal 1 item", details[0].Message)
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
}
