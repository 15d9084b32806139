package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== AUTH ENDPOINTS =====

// Signup registers a new admin or tutor account
// @Summary Register an admin or tutor
// @Description Create a new account with role superadmin or tutor and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.SignupRequest true "Signup payload"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /AdminorTutor/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an admin or tutor
// @Summary Log in
// @Description Validate credentials and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login payload"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /AdminorTutor/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// IssueAssignmentToken mints a task access token for a student
// @Summary Issue an assignment token
// @Description Mint a time-boxed token granting a student access to a single task
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.AssignmentTokenRequest true "Token payload"
// @Success 200 {object} services.AssignmentTokenResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignment-token [post]
func (h *AuthHandler) IssueAssignmentToken(c *gin.Context) {
	h.LogRequest(c, "Issuing assignment token")

	var req services.AssignmentTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.IssueAssignmentToken(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyAssignmentToken validates an assignment token
// @Summary Verify an assignment token
// @Description Check an assignment token and return its claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.AssignmentTokenVerifyRequest true "Token payload"
// @Success 200 {object} services.AssignmentTokenVerifyResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /assignment-token/verify [post]
func (h *AuthHandler) VerifyAssignmentToken(c *gin.Context) {
	h.LogRequest(c, "Verifying assignment token")

	var req validator.AssignmentTokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.VerifyAssignmentToken(c.Request.Context(), req.Token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== ERROR HANDLING =====

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		// Deliberately vague so responses never reveal whether the
		// email exists.
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid email or password",
		})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Email already registered",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid or expired token",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
