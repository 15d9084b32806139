package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// StudentPostgreSQL implements StudentRepository.
type StudentPostgreSQL struct {
	entityStore[models.Student]
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{entityStore: newEntityStore[models.Student](db)}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return r.create(ctx, student)
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	return r.getByID(ctx, id)
}

func (r *StudentPostgreSQL) GetByCertificateID(ctx context.Context, certificateID string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("certificate_id = ?", certificateID).First(&student).Error
	if err != nil {
		return nil, translateError(err, "get")
	}
	return &student, nil
}

func (r *StudentPostgreSQL) List(ctx context.Context, filter repositories.StudentFilter) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filter.CourseEnrolled != "" {
		query = query.Where("course_enrolled = ?", filter.CourseEnrolled)
	}
	if filter.CompletionStatus != "" {
		query = query.Where("completion_status = ?", filter.CompletionStatus)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var students []models.Student
	if err := query.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, translateError(err, "list")
	}
	return students, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return r.save(ctx, student)
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
