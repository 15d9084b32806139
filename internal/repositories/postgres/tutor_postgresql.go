package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// TutorPostgreSQL implements TutorRepository.
type TutorPostgreSQL struct {
	entityStore[models.Tutor]
}

func NewTutorPostgreSQL(db *gorm.DB) repositories.TutorRepository {
	return &TutorPostgreSQL{entityStore: newEntityStore[models.Tutor](db)}
}

func (r *TutorPostgreSQL) Create(ctx context.Context, tutor *models.Tutor) error {
	return r.create(ctx, tutor)
}

func (r *TutorPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	return r.getByID(ctx, id)
}

func (r *TutorPostgreSQL) List(ctx context.Context, limit, offset int) ([]models.Tutor, error) {
	query := r.db.WithContext(ctx).Model(&models.Tutor{})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var tutors []models.Tutor
	if err := query.Order("created_at DESC").Find(&tutors).Error; err != nil {
		return nil, translateError(err, "list")
	}
	return tutors, nil
}

func (r *TutorPostgreSQL) Update(ctx context.Context, tutor *models.Tutor) error {
	return r.save(ctx, tutor)
}

func (r *TutorPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
