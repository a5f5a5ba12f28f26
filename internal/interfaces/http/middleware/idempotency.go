package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/logger"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the request header that de-duplicates retries
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// Idempotency claims the Idempotency-Key of a request for ttl. A key that
// is already claimed answers 409 without running the handler. When the
// handler fails or panics the claim is released so the client may retry
// with the same key. Requests without the header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		log := logger.GetGinLogger(c)
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeValidation, "Idempotency-Key terlalu panjang", GetRequestID(c)))
			return
		}

		scoped := GetJWTUserID(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()
		claimed, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Error("Failed to claim idempotency key", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			log.Info("Duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeConflict, shared.ErrConflict.Message, GetRequestID(c)))
			return
		}

		// A panicking handler never returns here, so the release runs in a
		// defer that treats an unfinished chain as a failure.
		finished := false
		defer func() {
			if finished && c.Writer.Status() < http.StatusBadRequest {
				return
			}
			if err := store.Release(context.WithoutCancel(ctx), scoped); err != nil {
				log.Error("Failed to release idempotency key", zap.Error(err))
			}
		}()

		c.Next()
		finished = true
	}
}
