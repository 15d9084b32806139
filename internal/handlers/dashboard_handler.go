package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetStudentsCount returns the total number of students
// @Summary Count students
// @Tags dashboard
// @Produce json
// @Success 200 {object} gin.H
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students-count [get]
func (h *DashboardHandler) GetStudentsCount(c *gin.Context) {
	h.LogRequest(c, "Counting students")

	count, err := h.service.CountStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetCompletedStudentsCount returns the number of completed students
// @Summary Count completed students
// @Tags dashboard
// @Produce json
// @Success 200 {object} gin.H
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /get-completed-students-count [get]
func (h *DashboardHandler) GetCompletedStudentsCount(c *gin.Context) {
	h.LogRequest(c, "Counting completed students")

	count, err := h.service.CountCompletedStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetCountByCourse returns the number of students in one course
// @Summary Count students in a course
// @Tags dashboard
// @Produce json
// @Param course_enrolled path string true "Course name"
// @Success 200 {object} gin.H
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /count/{course_enrolled} [get]
func (h *DashboardHandler) GetCountByCourse(c *gin.Context) {
	h.LogRequest(c, "Counting students by course")

	course := c.Param("course_enrolled")

	count, err := h.service.CountByCourse(c.Request.Context(), course)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course, "count": count})
}

// GetCourseCounts returns student counts grouped by course
// @Summary Count students per course
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.CourseCount
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/course-counts [get]
func (h *DashboardHandler) GetCourseCounts(c *gin.Context) {
	h.LogRequest(c, "Getting course counts")

	counts, err := h.service.CourseCounts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetLastSixMonths returns enrollments bucketed by month
// @Summary Enrollment trend for the last six months
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.MonthlyEnrollment
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/last-six-months [get]
func (h *DashboardHandler) GetLastSixMonths(c *gin.Context) {
	h.LogRequest(c, "Getting enrollment trend")

	trends, err := h.service.LastSixMonths(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// ===== ERROR HANDLING =====

func (h *DashboardHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
