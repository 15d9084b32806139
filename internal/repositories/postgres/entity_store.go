package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// entityStore holds the CRUD plumbing shared by all record
// repositories. Entity-specific queries live in the typed repositories
// that embed it.
type entityStore[T any] struct {
	db *gorm.DB
}

func newEntityStore[T any](db *gorm.DB) entityStore[T] {
	return entityStore[T]{db: db}
}

func (s entityStore[T]) create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translateError(err, "create")
	}
	return nil
}

func (s entityStore[T]) getByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, translateError(err, "get")
	}
	return &entity, nil
}

func (s entityStore[T]) save(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Save(entity).Error; err != nil {
		return translateError(err, "update")
	}
	return nil
}

// delete soft-deletes by primary key. A missing record is reported as
// not found so delete endpoints can return 404.
func (s entityStore[T]) delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translateError(res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

// translateError maps gorm errors onto the repository sentinels.
func translateError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	default:
		return fmt.Errorf("failed to %s record: %w", op, err)
	}
}
