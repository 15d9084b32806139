package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// JWTAuthMiddleware validates session tokens and exposes the caller's
// identity to downstream handlers.
type JWTAuthMiddleware struct {
	issuer *auth.SessionIssuer
}

func NewJWTAuthMiddleware(issuer *auth.SessionIssuer) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{issuer: issuer}
}

// AuthMiddleware extracts and verifies the Bearer token, then stores
// user_id and user_role in the request context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header is required",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header must be a Bearer token",
			})
			return
		}

		claims, err := m.issuer.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRoleMiddleware allows only callers with one of the given
// roles. It must run after AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRoleFromContext(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetUserRoleFromContext returns the authenticated user's role.
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}
