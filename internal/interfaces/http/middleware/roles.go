package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/infrastructure/logger"
	"github.com/koperasi/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequireRoles lets a request through when the authenticated role is one of
// roles. ADMIN is always allowed. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles)+1)
	allowed[identity.RoleAdmin.String()] = struct{}{}
	for _, r := range roles {
		allowed[r.String()] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Silakan login terlebih dahulu", GetRequestID(c)))
			return
		}
		if _, ok := allowed[role]; !ok {
			logger.GetGinLogger(c).Warn("Role not permitted",
				zap.String("role", role),
				zap.String("route", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Akses ditolak", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
