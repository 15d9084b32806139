package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/storage"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ===== SERVICE IMPLEMENTATION =====

type studentService struct {
	repo      repositories.Repository
	files     storage.FileStore
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(
	repo repositories.Repository,
	files storage.FileStore,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) StudentService {
	return &studentService{
		repo:      repo,
		files:     files,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *studentService) Create(ctx context.Context, req CreateStudentRequest, files StudentFiles) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}
	if files.Photo == nil {
		return nil, fmt.Errorf("%w: photo file is required", ErrValidationFailed)
	}
	if files.IDProof == nil {
		return nil, fmt.Errorf("%w: id_proof file is required", ErrValidationFailed)
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date_of_birth", ErrValidationFailed)
	}

	enrolledAt := time.Now()
	if req.EnrolledAt != "" {
		t, err := parseDate(req.EnrolledAt)
		if err != nil || t == nil {
			return nil, fmt.Errorf("%w: invalid enrolled_at", ErrValidationFailed)
		}
		enrolledAt = *t
	}

	status := models.StatusEnrolled
	if req.CompletionStatus != "" {
		status = models.CompletionStatus(req.CompletionStatus)
	}

	student := &models.Student{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      dob,
		Address:          req.Address,
		CourseEnrolled:   req.CourseEnrolled,
		EnrolledAt:       enrolledAt,
		CompletionStatus: status,
		CertificateID:    uuid.NewString(),
	}

	// Storage keys embed the record id, so the row is created first and
	// the URLs written back. The transaction rolls the row back if any
	// upload fails, leaving no student without proof documents.
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Student().Create(ctx, student); err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}

		if err := s.storeFiles(ctx, student, files); err != nil {
			return err
		}

		if err := txRepo.Student().Update(ctx, student); err != nil {
			return fmt.Errorf("failed to persist file URLs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student created", "student_id", student.ID, "course", student.CourseEnrolled)

	s.invalidate(ctx, student.ID)
	s.publish(ctx, events.EventStudentCreated, map[string]interface{}{
		"student_id":      student.ID,
		"course_enrolled": student.CourseEnrolled,
		"enrolled_at":     student.EnrolledAt,
	})

	return student, nil
}

// GetByID serves reads cache-aside. Every write path invalidates the
// record's key, so a hit never outlives the persisted row.
func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	key := fmt.Sprintf("id:%d", id)
	err := s.cache.Student.CacheOrExecute(ctx, key, &student, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Student().GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

func (s *studentService) List(ctx context.Context, course string, status string) (*StudentListResponse, error) {
	if status != "" && !models.CompletionStatus(status).Valid() {
		return nil, fmt.Errorf("%w: invalid completion status %q", ErrValidationFailed, status)
	}

	students, err := s.repo.Student().List(ctx, repositories.StudentFilter{
		CourseEnrolled:   course,
		CompletionStatus: models.CompletionStatus(status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Students: students,
		Total:    int64(len(students)),
	}, nil
}

// Update applies only the fields present in the request. File URLs are
// preserved unless a replacement file was uploaded.
func (s *studentService) Update(ctx context.Context, id uint, req UpdateStudentRequest, files StudentFiles) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date_of_birth", ErrValidationFailed)
		}
		student.DateOfBirth = dob
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.CourseEnrolled != nil {
		student.CourseEnrolled = *req.CourseEnrolled
	}
	if req.EnrolledAt != nil {
		t, err := parseDate(*req.EnrolledAt)
		if err != nil || t == nil {
			return nil, fmt.Errorf("%w: invalid enrolled_at", ErrValidationFailed)
		}
		student.EnrolledAt = *t
	}
	if req.CompletionStatus != nil {
		student.CompletionStatus = models.CompletionStatus(*req.CompletionStatus)
	}

	if err := s.storeFiles(ctx, student, files); err != nil {
		return nil, err
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", student.ID)
	s.invalidate(ctx, student.ID)

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("%w: student %d", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id)
	s.invalidate(ctx, id)

	return nil
}

// storeFiles uploads whichever proof documents were provided and writes
// the resulting URLs onto the record. Absent files leave the existing
// URLs untouched.
func (s *studentService) storeFiles(ctx context.Context, student *models.Student, files StudentFiles) error {
	if files.Photo != nil {
		key := fmt.Sprintf("students/%d/photo%s", student.ID, path.Ext(files.Photo.FileName))
		url, err := s.files.Save(ctx, key, files.Photo.Content)
		if err != nil {
			return fmt.Errorf("%w: photo upload: %s", ErrStorage, err.Error())
		}
		student.PhotoURL = url
	}

	if files.IDProof != nil {
		key := fmt.Sprintf("students/%d/id_proof%s", student.ID, path.Ext(files.IDProof.FileName))
		url, err := s.files.Save(ctx, key, files.IDProof.Content)
		if err != nil {
			return fmt.Errorf("%w: id_proof upload: %s", ErrStorage, err.Error())
		}
		student.IDProofURL = url
	}

	if len(files.Extra) > 0 {
		var urls []string
		if len(student.ExtraDocuments) > 0 {
			if err := json.Unmarshal(student.ExtraDocuments, &urls); err != nil {
				urls = nil
			}
		}

		for _, f := range files.Extra {
			key := fmt.Sprintf("students/%d/docs/%s%s", student.ID, uuid.NewString(), path.Ext(f.FileName))
			url, err := s.files.Save(ctx, key, f.Content)
			if err != nil {
				return fmt.Errorf("%w: document upload: %s", ErrStorage, err.Error())
			}
			urls = append(urls, url)
		}

		data, err := json.Marshal(urls)
		if err != nil {
			return fmt.Errorf("failed to marshal document URLs: %w", err)
		}
		student.ExtraDocuments = datatypes.JSON(data)
	}

	return nil
}

func (s *studentService) invalidate(ctx context.Context, studentID uint) {
	if err := s.cache.InvalidateStudent(ctx, studentID); err != nil {
		s.logger.Warn("Cache invalidation failed", "error", err, "student_id", studentID)
	}
}

// publish emits a domain event. Publish failures are logged and never
// fail the request that produced them.
func (s *studentService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "error", err, "event_type", eventType)
	}
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
