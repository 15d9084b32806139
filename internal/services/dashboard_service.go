package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

func (s *dashboardService) CountStudents(ctx context.Context) (int64, error) {
	count, err := s.repo.Dashboard().CountStudents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (s *dashboardService) CountCompletedStudents(ctx context.Context) (int64, error) {
	count, err := s.repo.Dashboard().CountByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed students: %w", err)
	}
	return count, nil
}

func (s *dashboardService) CountByCourse(ctx context.Context, course string) (int64, error) {
	if course == "" {
		return 0, fmt.Errorf("%w: course is required", ErrValidationFailed)
	}

	count, err := s.repo.Dashboard().CountByCourse(ctx, course)
	if err != nil {
		return 0, fmt.Errorf("failed to count students by course: %w", err)
	}
	return count, nil
}

func (s *dashboardService) CourseCounts(ctx context.Context) ([]models.CourseCount, error) {
	counts, err := s.repo.Dashboard().CourseCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get course counts: %w", err)
	}
	return counts, nil
}

func (s *dashboardService) LastSixMonths(ctx context.Context) ([]models.MonthlyEnrollment, error) {
	trends, err := s.repo.Dashboard().EnrollmentsByMonth(ctx, 6)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment trends: %w", err)
	}
	return trends, nil
}
