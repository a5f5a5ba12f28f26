package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	rec := perform(r, http.MethodGet, "/x", nil)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "generated ids are uuids")
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	rec = perform(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	perform(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: strings.Repeat("a", 500)})
	assert.Len(t, seen, maxRequestIDLength)
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://kasir.koperasi.id"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/x", okHandler)

	rec := perform(r, http.MethodGet, "/x", map[string]string{"Origin": "https://kasir.koperasi.id"})
	assert.Equal(t, "https://kasir.koperasi.id", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)

	rec = perform(r, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = perform(r, http.MethodOptions, "/x", map[string]string{"Origin": "https://kasir.koperasi.id"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSWithConfig_Wildcard(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/x", okHandler)

	rec := perform(r, http.MethodGet, "/x", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSecureWithConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = true

	r := gin.New()
	r.Use(SecureWithConfig(cfg))
	r.GET("/x", okHandler)
	r.GET("/swagger/index.html", okHandler)

	rec := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=31536000")
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))

	rec = perform(r, http.MethodGet, "/swagger/index.html", nil)
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), BodyLimit(16))
	r.POST("/x", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"minyak goreng 2 liter"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_TOO_LARGE", decodeError(t, rec).Code)

	req, _ = http.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":1}`))
	rec = serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
