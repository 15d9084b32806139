package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

func TestDashboardService(t *testing.T) {
	repo := newMockRepository()
	repo.dashboard.total = 25
	repo.dashboard.completed = 10
	repo.dashboard.byCourse["Go Fundamentals"] = 8
	repo.dashboard.courses = []models.CourseCount{
		{Course: "Go Fundamentals", Count: 8},
		{Course: "Databases", Count: 17},
	}
	repo.dashboard.monthly = []models.MonthlyEnrollment{
		{Month: "2026-03", Count: 4},
		{Month: "2026-04", Count: 6},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewDashboardService(repo, logger)
	ctx := context.Background()

	t.Run("count students", func(t *testing.T) {
		count, err := service.CountStudents(ctx)
		if err != nil {
			t.Fatalf("Failed to count students: %v", err)
		}
		if count != 25 {
			t.Errorf("Expected 25, got %d", count)
		}
	})

	t.Run("count completed", func(t *testing.T) {
		count, err := service.CountCompletedStudents(ctx)
		if err != nil {
			t.Fatalf("Failed to count completed students: %v", err)
		}
		if count != 10 {
			t.Errorf("Expected 10, got %d", count)
		}
	})

	t.Run("count by course", func(t *testing.T) {
		count, err := service.CountByCourse(ctx, "Go Fundamentals")
		if err != nil {
			t.Fatalf("Failed to count by course: %v", err)
		}
		if count != 8 {
			t.Errorf("Expected 8, got %d", count)
		}
	})

	t.Run("empty course rejected", func(t *testing.T) {
		_, err := service.CountByCourse(ctx, "")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("course counts", func(t *testing.T) {
		counts, err := service.CourseCounts(ctx)
		if err != nil {
			t.Fatalf("Failed to get course counts: %v", err)
		}
		if len(counts) != 2 {
			t.Fatalf("Expected 2 courses, got %d", len(counts))
		}
		if counts[1].Course != "Databases" || counts[1].Count != 17 {
			t.Errorf("Unexpected course count: %+v", counts[1])
		}
	})

	t.Run("last six months", func(t *testing.T) {
		trends, err := service.LastSixMonths(ctx)
		if err != nil {
			t.Fatalf("Failed to get trends: %v", err)
		}
		if len(trends) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(trends))
		}
		if trends[0].Month != "2026-03" {
			t.Errorf("Unexpected month bucket: %s", trends[0].Month)
		}
	})
}
