package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

// ErrorResponse is the error envelope returned by all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries shared logging for all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of request handling with correlation fields.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.GetLogger(c, h.logger).Info(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// LogError logs an unexpected handler error.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.GetLogger(c, h.logger).Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}
