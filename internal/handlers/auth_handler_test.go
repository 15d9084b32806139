package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

// stubAuthService returns canned responses so handler tests exercise
// status mapping and JSON shape without a real repository.
type stubAuthService struct {
	signupResp *services.AuthResponse
	signupErr  error
	loginResp  *services.AuthResponse
	loginErr   error
}

func (s *stubAuthService) Signup(_ context.Context, _ services.SignupRequest) (*services.AuthResponse, error) {
	return s.signupResp, s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _ services.LoginRequest) (*services.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) IssueAssignmentToken(_ context.Context, _ services.AssignmentTokenRequest) (*services.AssignmentTokenResponse, error) {
	return &services.AssignmentTokenResponse{Token: "grant", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *stubAuthService) VerifyAssignmentToken(_ context.Context, token string) (*services.AssignmentTokenVerifyResponse, error) {
	if token != "grant" {
		return nil, services.ErrUnauthorized
	}
	return &services.AssignmentTokenVerifyResponse{StudentID: 1, TaskID: "task-7"}, nil
}

func newTestRouter(service services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	handler := NewAuthHandler(service, logger)

	router := gin.New()
	router.POST("/AdminorTutor/signup", handler.Signup)
	router.POST("/AdminorTutor/login", handler.Login)
	router.POST("/assignment-token/verify", handler.VerifyAssignmentToken)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	router := newTestRouter(&stubAuthService{
		signupResp: &services.AuthResponse{
			Token: "session-token",
			User:  &models.User{FullName: "Alex Admin", Email: "alex@example.com", Role: models.RoleSuperAdmin},
		},
	})

	w := postJSON(t, router, "/AdminorTutor/signup", map[string]string{
		"full_name": "Alex Admin",
		"email":     "alex@example.com",
		"password":  "supersecret1",
		"role":      "superadmin",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp services.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-token", resp.Token)
	assert.Equal(t, models.RoleSuperAdmin, resp.User.Role)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	router := newTestRouter(&stubAuthService{signupErr: services.ErrDuplicate})

	w := postJSON(t, router, "/AdminorTutor/signup", map[string]string{
		"full_name": "Alex Admin",
		"email":     "alex@example.com",
		"password":  "supersecret1",
		"role":      "superadmin",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/AdminorTutor/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	router := newTestRouter(&stubAuthService{loginErr: services.ErrInvalidCredentials})

	w := postJSON(t, router, "/AdminorTutor/login", map[string]string{
		"email":    "alex@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid email or password", resp.Message)
	assert.Empty(t, resp.Details, "response must not reveal whether the email exists")
}

func TestAuthHandler_VerifyAssignmentToken(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	t.Run("valid token", func(t *testing.T) {
		w := postJSON(t, router, "/assignment-token/verify", map[string]string{"token": "grant"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp services.AssignmentTokenVerifyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(1), resp.StudentID)
		assert.Equal(t, "task-7", resp.TaskID)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := postJSON(t, router, "/assignment-token/verify", map[string]string{"token": "forged"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
