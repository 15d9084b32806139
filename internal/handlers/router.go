package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	tutorHandler     *TutorHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *JWTAuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessionIssuer *auth.SessionIssuer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler: NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler: NewStudentHandler(
			serviceManager.Student(),
			serviceManager.Certificate(),
			serviceManager.Export(),
			logger,
		),
		tutorHandler:     NewTutorHandler(serviceManager.Tutor(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewJWTAuthMiddleware(sessionIssuer),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, fileRoot string) {
	// Public auth routes
	router.POST("/AdminorTutor/signup", hm.authHandler.Signup)
	router.POST("/AdminorTutor/login", hm.authHandler.Login)
	router.POST("/assignment-token/verify", hm.authHandler.VerifyAssignmentToken)

	// Read endpoints
	router.GET("/get-all-students", hm.studentHandler.GetAllStudents)
	router.GET("/single-student/:id", hm.studentHandler.GetStudent)
	router.GET("/get-all-tutors", hm.tutorHandler.GetAllTutors)
	router.GET("/single-tutor/:id", hm.tutorHandler.GetTutor)

	// Certificate verification, hit by scanned QR codes
	router.GET("/verify-certificate/:certificate_id", hm.studentHandler.VerifyCertificate)

	// Dashboard aggregations
	router.GET("/students-count", hm.dashboardHandler.GetStudentsCount)
	router.GET("/get-completed-students-count", hm.dashboardHandler.GetCompletedStudentsCount)
	router.GET("/count/:course_enrolled", hm.dashboardHandler.GetCountByCourse)
	router.GET("/students/course-counts", hm.dashboardHandler.GetCourseCounts)
	router.GET("/students/last-six-months", hm.dashboardHandler.GetLastSixMonths)

	// Mutating routes require a valid session token
	protected := router.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		protected.POST("/insert-student", hm.studentHandler.CreateStudent)
		protected.PUT("/update-student/:id", hm.studentHandler.UpdateStudent)
		protected.DELETE("/students/:id", hm.studentHandler.DeleteStudent)
		protected.GET("/student-qr/:id", hm.studentHandler.GenerateStudentQR)
		protected.GET("/students/export", hm.studentHandler.ExportStudents)

		protected.POST("/insert-tutor", hm.tutorHandler.CreateTutor)
		protected.PUT("/update-tutor/:id", hm.tutorHandler.UpdateTutor)
		protected.DELETE("/tutors/:id", hm.tutorHandler.DeleteTutor)

		// Minting task grants is reserved for superadmins and tutors
		protected.POST("/assignment-token",
			hm.authMiddleware.RequireRoleMiddleware(models.RoleSuperAdmin, models.RoleTutor),
			hm.authHandler.IssueAssignmentToken)
	}

	// Uploaded proof documents and QR images
	router.Static("/files", fileRoot)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "student-admin-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "student-admin-service",
		})
	})
}
