package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ===== SERVICE ERRORS =====

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorage            = errors.New("file storage failed")
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest
type CreateTutorRequest = validator.TutorCreateRequest
type UpdateTutorRequest = validator.TutorUpdateRequest
type AssignmentTokenRequest = validator.AssignmentTokenRequest

// FileUpload carries one uploaded file into the service layer.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// StudentFiles groups the proof documents accepted on student writes.
type StudentFiles struct {
	Photo   *FileUpload
	IDProof *FileUpload
	Extra   []*FileUpload
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AssignmentTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AssignmentTokenVerifyResponse struct {
	StudentID uint      `json:"student_id"`
	TaskID    string    `json:"task_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type StudentListResponse struct {
	Students []models.Student `json:"students"`
	Total    int64            `json:"total"`
}

type TutorListResponse struct {
	Tutors []models.Tutor `json:"tutors"`
	Total  int64          `json:"total"`
}

type QRCodeResponse struct {
	CertificateID string `json:"certificate_id"`
	QRCodeURL     string `json:"qr_code_url"`
	VerifyURL     string `json:"verify_url"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	IssueAssignmentToken(ctx context.Context, req AssignmentTokenRequest) (*AssignmentTokenResponse, error)
	VerifyAssignmentToken(ctx context.Context, token string) (*AssignmentTokenVerifyResponse, error)
}

type StudentService interface {
	Create(ctx context.Context, req CreateStudentRequest, files StudentFiles) (*models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, course string, status string) (*StudentListResponse, error)
	Update(ctx context.Context, id uint, req UpdateStudentRequest, files StudentFiles) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type TutorService interface {
	Create(ctx context.Context, req CreateTutorRequest, image *FileUpload) (*models.Tutor, error)
	GetByID(ctx context.Context, id uint) (*models.Tutor, error)
	List(ctx context.Context) (*TutorListResponse, error)
	Update(ctx context.Context, id uint, req UpdateTutorRequest, image *FileUpload) (*models.Tutor, error)
	Delete(ctx context.Context, id uint) error
}

type CertificateService interface {
	// GenerateQR renders the verification QR code for a student and
	// persists its public URL on the record.
	GenerateQR(ctx context.Context, studentID uint) (*QRCodeResponse, error)

	// VerifyCertificate resolves a scanned certificate id to the student
	// it was issued for.
	VerifyCertificate(ctx context.Context, certificateID string) (*models.Student, error)
}

type DashboardService interface {
	CountStudents(ctx context.Context) (int64, error)
	CountCompletedStudents(ctx context.Context) (int64, error)
	CountByCourse(ctx context.Context, course string) (int64, error)
	CourseCounts(ctx context.Context) ([]models.CourseCount, error)
	LastSixMonths(ctx context.Context) ([]models.MonthlyEnrollment, error)
}

type ExportService interface {
	// ExportStudents renders all student records as an xlsx workbook.
	ExportStudents(ctx context.Context, w io.Writer) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	Student() StudentService
	Tutor() TutorService
	Certificate() CertificateService
	Dashboard() DashboardService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
