package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// Sentinel errors surfaced by all repository implementations.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// UserRepository manages login credentials.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	CourseEnrolled   string
	CompletionStatus models.CompletionStatus
	Limit            int
	Offset           int
}

// StudentRepository manages student records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByCertificateID(ctx context.Context, certificateID string) (*models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
}

// TutorRepository manages tutor records.
type TutorRepository interface {
	Create(ctx context.Context, tutor *models.Tutor) error
	GetByID(ctx context.Context, id uint) (*models.Tutor, error)
	List(ctx context.Context, limit, offset int) ([]models.Tutor, error)
	Update(ctx context.Context, tutor *models.Tutor) error
	Delete(ctx context.Context, id uint) error
}

// DashboardRepository serves the aggregate counts behind the admin
// dashboard.
type DashboardRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.CompletionStatus) (int64, error)
	CountByCourse(ctx context.Context, course string) (int64, error)
	CourseCounts(ctx context.Context) ([]models.CourseCount, error)
	EnrollmentsByMonth(ctx context.Context, months int) ([]models.MonthlyEnrollment, error)
}
