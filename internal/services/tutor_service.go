package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/storage"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ===== SERVICE IMPLEMENTATION =====

type tutorService struct {
	repo      repositories.Repository
	files     storage.FileStore
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTutorService(
	repo repositories.Repository,
	files storage.FileStore,
	cacheManager *cache.CacheManager,
	logger *slog.Logger,
	v *validator.Validator,
) TutorService {
	return &tutorService{
		repo:      repo,
		files:     files,
		cache:     cacheManager,
		logger:    logger,
		validator: v,
	}
}

func (s *tutorService) Create(ctx context.Context, req CreateTutorRequest, image *FileUpload) (*models.Tutor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	tutor := &models.Tutor{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
	}

	if err := s.repo.Tutor().Create(ctx, tutor); err != nil {
		return nil, fmt.Errorf("failed to create tutor: %w", err)
	}

	if image != nil {
		if err := s.storeImage(ctx, tutor, image); err != nil {
			return nil, err
		}
		if err := s.repo.Tutor().Update(ctx, tutor); err != nil {
			return nil, fmt.Errorf("failed to persist image URL: %w", err)
		}
	}

	s.logger.Info("Tutor created", "tutor_id", tutor.ID)

	return tutor, nil
}

// GetByID serves reads cache-aside. Every write path invalidates the
// record's key, so a hit never outlives the persisted row.
func (s *tutorService) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	var tutor models.Tutor
	key := fmt.Sprintf("id:%d", id)
	err := s.cache.Tutor.CacheOrExecute(ctx, key, &tutor, cache.TutorCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Tutor().GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tutor %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}
	return &tutor, nil
}

func (s *tutorService) List(ctx context.Context) (*TutorListResponse, error) {
	tutors, err := s.repo.Tutor().List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}

	return &TutorListResponse{
		Tutors: tutors,
		Total:  int64(len(tutors)),
	}, nil
}

// Update applies only the fields present in the request. The image URL
// is preserved unless a replacement image was uploaded.
func (s *tutorService) Update(ctx context.Context, id uint, req UpdateTutorRequest, image *FileUpload) (*models.Tutor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	tutor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		tutor.FullName = *req.FullName
	}
	if req.Email != nil {
		tutor.Email = *req.Email
	}
	if req.Phone != nil {
		tutor.Phone = *req.Phone
	}
	if req.Specialization != nil {
		tutor.Specialization = *req.Specialization
	}

	if image != nil {
		if err := s.storeImage(ctx, tutor, image); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Tutor().Update(ctx, tutor); err != nil {
		return nil, fmt.Errorf("failed to update tutor: %w", err)
	}

	s.logger.Info("Tutor updated", "tutor_id", tutor.ID)
	s.invalidate(ctx, tutor.ID)

	return tutor, nil
}

func (s *tutorService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Tutor().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("%w: tutor %d", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete tutor: %w", err)
	}

	s.logger.Info("Tutor deleted", "tutor_id", id)
	s.invalidate(ctx, id)

	return nil
}

func (s *tutorService) storeImage(ctx context.Context, tutor *models.Tutor, image *FileUpload) error {
	key := fmt.Sprintf("tutors/%d/image%s", tutor.ID, path.Ext(image.FileName))
	url, err := s.files.Save(ctx, key, image.Content)
	if err != nil {
		return fmt.Errorf("%w: image upload: %s", ErrStorage, err.Error())
	}
	tutor.ImageURL = url
	return nil
}

func (s *tutorService) invalidate(ctx context.Context, tutorID uint) {
	if err := s.cache.InvalidateTutor(ctx, tutorID); err != nil {
		s.logger.Warn("Cache invalidation failed", "error", err, "tutor_id", tutorID)
	}
}
