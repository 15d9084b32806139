package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// UserPostgreSQL implements UserRepository. The unique index on email
// is the source of truth for duplicate signups; violations surface as
// ErrDuplicateKey.
type UserPostgreSQL struct {
	entityStore[models.User]
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{entityStore: newEntityStore[models.User](db)}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return r.create(ctx, user)
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, "get")
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.getByID(ctx, id)
}
