package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

func newMiddlewareRouter(issuer *auth.SessionIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := NewJWTAuthMiddleware(issuer)
	router := gin.New()

	protected := router.Group("", m.AuthMiddleware())
	protected.GET("/whoami", func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	protected.GET("/admin-only",
		m.RequireRoleMiddleware(models.RoleSuperAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewSessionIssuer("session-secret", time.Hour)
	router := newMiddlewareRouter(issuer)

	token, err := issuer.Issue(42, models.RoleTutor)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := get(router, "/whoami", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":42`)
		assert.Contains(t, w.Body.String(), `"role":"tutor"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(router, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token from wrong issuer", func(t *testing.T) {
		forged, err := auth.NewSessionIssuer("other-secret", time.Hour).Issue(42, models.RoleTutor)
		require.NoError(t, err)

		w := get(router, "/whoami", forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := auth.NewSessionIssuer("session-secret", -time.Minute).Issue(42, models.RoleTutor)
		require.NoError(t, err)

		w := get(router, "/whoami", expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	issuer := auth.NewSessionIssuer("session-secret", time.Hour)
	router := newMiddlewareRouter(issuer)

	t.Run("allowed role", func(t *testing.T) {
		token, err := issuer.Issue(1, models.RoleSuperAdmin)
		require.NoError(t, err)

		w := get(router, "/admin-only", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		token, err := issuer.Issue(2, models.RoleTutor)
		require.NoError(t, err)

		w := get(router, "/admin-only", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
