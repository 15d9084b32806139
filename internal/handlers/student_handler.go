package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service            services.StudentService
	certificateService services.CertificateService
	exportService      services.ExportService
}

func NewStudentHandler(
	service services.StudentService,
	certificateService services.CertificateService,
	exportService services.ExportService,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:        NewBaseHandler(logger),
		service:            service,
		certificateService: certificateService,
		exportService:      exportService,
	}
}

// ===== STUDENT ENDPOINTS =====

// CreateStudent registers a new student with proof documents
// @Summary Create a student
// @Description Create a student record from a multipart form with photo, id_proof and optional certificates files
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /insert-student [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	h.LogRequest(c, "Creating student")

	var req services.CreateStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	files, closeFiles, err := h.collectFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file upload",
			Details: err.Error(),
		})
		return
	}
	defer closeFiles()

	student, err := h.service.Create(c.Request.Context(), req, files)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetAllStudents lists student records
// @Summary List students
// @Description List student records, optionally filtered by course or completion status
// @Tags students
// @Produce json
// @Param course query string false "Filter by enrolled course"
// @Param status query string false "Filter by completion status: enrolled, completed"
// @Success 200 {object} services.StudentListResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /get-all-students [get]
func (h *StudentHandler) GetAllStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	resp, err := h.service.List(c.Request.Context(), c.Query("course"), c.Query("status"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudent returns a single student record
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /single-student/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	h.LogRequest(c, "Getting student")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudent updates a student record
// @Summary Update a student
// @Description Update a student record; absent fields and files are left untouched
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /update-student/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	h.LogRequest(c, "Updating student")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	files, closeFiles, err := h.collectFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file upload",
			Details: err.Error(),
		})
		return
	}
	defer closeFiles()

	student, err := h.service.Update(c.Request.Context(), id, req, files)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student record
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} gin.H
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	h.LogRequest(c, "Deleting student")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}

// GenerateStudentQR generates the certificate verification QR code
// @Summary Generate a student QR code
// @Description Render the certificate verification link as a QR image and persist its URL
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} services.QRCodeResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /student-qr/{id} [get]
func (h *StudentHandler) GenerateStudentQR(c *gin.Context) {
	h.LogRequest(c, "Generating student QR code")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	resp, err := h.certificateService.GenerateQR(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyCertificate resolves a certificate id scanned from a QR code
// @Summary Verify a certificate
// @Description Look up the student a certificate id was issued for
// @Tags students
// @Produce json
// @Param certificate_id path string true "Certificate ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse "Certificate not found"
// @Router /verify-certificate/{certificate_id} [get]
func (h *StudentHandler) VerifyCertificate(c *gin.Context) {
	h.LogRequest(c, "Verifying certificate")

	student, err := h.certificateService.VerifyCertificate(c.Request.Context(), c.Param("certificate_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ExportStudents downloads all students as an xlsx workbook
// @Summary Export students
// @Description Download all student records as an xlsx spreadsheet
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/export [get]
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.exportService.ExportStudents(c.Request.Context(), c.Writer); err != nil {
		h.LogError(c, err, "Failed to export students")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// ===== HELPER METHODS =====

func (h *StudentHandler) parseIDParam(c *gin.Context, param string) uint {
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

// collectFiles opens the uploaded proof documents. The returned closer
// must be called after the service has consumed the readers.
func (h *StudentHandler) collectFiles(c *gin.Context) (services.StudentFiles, func(), error) {
	var files services.StudentFiles
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	open := func(field string) (*services.FileUpload, error) {
		header, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				return nil, nil
			}
			return nil, err
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		return &services.FileUpload{
			FieldName: field,
			FileName:  header.Filename,
			Content:   f,
		}, nil
	}

	var err error
	if files.Photo, err = open("photo"); err != nil {
		closeAll()
		return files, func() {}, err
	}
	if files.IDProof, err = open("id_proof"); err != nil {
		closeAll()
		return files, func() {}, err
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["certificates"] {
			f, err := header.Open()
			if err != nil {
				closeAll()
				return files, func() {}, err
			}
			opened = append(opened, f)
			files.Extra = append(files.Extra, &services.FileUpload{
				FieldName: "certificates",
				FileName:  header.Filename,
				Content:   f,
			})
		}
	}

	return files, closeAll, nil
}

// ===== ERROR HANDLING =====

func (h *StudentHandler) handleServiceError(c *gin.Context, err error) {
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
