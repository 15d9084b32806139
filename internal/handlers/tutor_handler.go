package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type TutorHandler struct {
	BaseHandler
	service services.TutorService
}

func NewTutorHandler(service services.TutorService, logger utils.Logger) *TutorHandler {
	return &TutorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== TUTOR ENDPOINTS =====

// CreateTutor registers a new tutor record
// @Summary Create a tutor
// @Description Create a tutor record from a multipart form with an optional image file
// @Tags tutors
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Tutor
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /insert-tutor [post]
func (h *TutorHandler) CreateTutor(c *gin.Context) {
	h.LogRequest(c, "Creating tutor")

	var req services.CreateTutorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	image, closeImage, err := h.openImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file upload",
			Details: err.Error(),
		})
		return
	}
	defer closeImage()

	tutor, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tutor)
}

// GetAllTutors lists tutor records
// @Summary List tutors
// @Tags tutors
// @Produce json
// @Success 200 {object} services.TutorListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /get-all-tutors [get]
func (h *TutorHandler) GetAllTutors(c *gin.Context) {
	h.LogRequest(c, "Listing tutors")

	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTutor returns a single tutor record
// @Summary Get a tutor
// @Tags tutors
// @Produce json
// @Param id path uint true "Tutor ID"
// @Success 200 {object} models.Tutor
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Router /single-tutor/{id} [get]
func (h *TutorHandler) GetTutor(c *gin.Context) {
	h.LogRequest(c, "Getting tutor")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	tutor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// UpdateTutor updates a tutor record
// @Summary Update a tutor
// @Description Update a tutor record; absent fields and the image are left untouched
// @Tags tutors
// @Accept multipart/form-data
// @Produce json
// @Param id path uint true "Tutor ID"
// @Success 200 {object} models.Tutor
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Router /update-tutor/{id} [put]
func (h *TutorHandler) UpdateTutor(c *gin.Context) {
	h.LogRequest(c, "Updating tutor")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTutorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	image, closeImage, err := h.openImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file upload",
			Details: err.Error(),
		})
		return
	}
	defer closeImage()

	tutor, err := h.service.Update(c.Request.Context(), id, req, image)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// DeleteTutor removes a tutor record
// @Summary Delete a tutor
// @Tags tutors
// @Produce json
// @Param id path uint true "Tutor ID"
// @Success 200 {object} gin.H
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Router /tutors/{id} [delete]
func (h *TutorHandler) DeleteTutor(c *gin.Context) {
	h.LogRequest(c, "Deleting tutor")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tutor deleted"})
}

// ===== HELPER METHODS =====

func (h *TutorHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a valid number",
		})
		return 0
	}
	return uint(id)
}

func (h *TutorHandler) openImage(c *gin.Context) (*services.FileUpload, func(), error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &services.FileUpload{
		FieldName: "image",
		FileName:  header.Filename,
		Content:   f,
	}, func() { f.Close() }, nil
}

// ===== ERROR HANDLING =====

func (h *TutorHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	case errors.Is(err, services.ErrStorage):
		h.LogError(c, err, "File storage failure")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to store uploaded files",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
