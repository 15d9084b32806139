package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

func newTestTutorService(repo *mockRepository, files *mockFileStore) TutorService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewTutorService(repo, files, cache.NewCacheManager(nil), logger, validator.New())
}

func TestTutorService_Create(t *testing.T) {
	repo := newMockRepository()
	files := newMockFileStore()
	service := newTestTutorService(repo, files)
	ctx := context.Background()

	tutor, err := service.Create(ctx, CreateTutorRequest{
		FullName:       "Taylor Tutor",
		Email:          "taylor@example.com",
		Phone:          "0123456789",
		Specialization: "Distributed Systems",
	}, upload("image", "avatar.png", "avatar-bytes"))
	if err != nil {
		t.Fatalf("Failed to create tutor: %v", err)
	}

	if tutor.ID == 0 {
		t.Error("Expected an assigned id")
	}
	if tutor.ImageURL == "" {
		t.Error("Expected an image URL")
	}
	if _, ok := files.saved["tutors/1/image.png"]; !ok {
		t.Errorf("Expected image stored under tutors/1/, saved keys: %v", files.saved)
	}

	t.Run("without image", func(t *testing.T) {
		tutor, err := service.Create(ctx, CreateTutorRequest{
			FullName:       "Morgan Mentor",
			Email:          "morgan@example.com",
			Specialization: "Databases",
		}, nil)
		if err != nil {
			t.Fatalf("Failed to create tutor: %v", err)
		}
		if tutor.ImageURL != "" {
			t.Errorf("Expected no image URL, got %q", tutor.ImageURL)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := service.Create(ctx, CreateTutorRequest{Email: "bad@example.com"}, nil)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestTutorService_Update_PreservesImageURL(t *testing.T) {
	repo := newMockRepository()
	files := newMockFileStore()
	service := newTestTutorService(repo, files)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTutorRequest{
		FullName:       "Taylor Tutor",
		Email:          "taylor@example.com",
		Specialization: "Distributed Systems",
	}, upload("image", "avatar.png", "avatar-bytes"))
	if err != nil {
		t.Fatalf("Failed to create tutor: %v", err)
	}

	newSpec := "Site Reliability"
	updated, err := service.Update(ctx, created.ID, UpdateTutorRequest{
		Specialization: &newSpec,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to update tutor: %v", err)
	}

	if updated.Specialization != newSpec {
		t.Errorf("Expected updated specialization, got %s", updated.Specialization)
	}
	if updated.ImageURL != created.ImageURL {
		t.Errorf("Image URL must be preserved: was %q, now %q", created.ImageURL, updated.ImageURL)
	}

	t.Run("replacement image", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, UpdateTutorRequest{}, upload("image", "new.jpg", "new-bytes"))
		if err != nil {
			t.Fatalf("Failed to update tutor: %v", err)
		}
		if updated.ImageURL == created.ImageURL {
			t.Error("Expected image URL to change with the new extension")
		}
	})
}

func TestTutorService_Delete(t *testing.T) {
	repo := newMockRepository()
	service := newTestTutorService(repo, newMockFileStore())
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTutorRequest{
		FullName:       "Taylor Tutor",
		Email:          "taylor@example.com",
		Specialization: "Distributed Systems",
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create tutor: %v", err)
	}

	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete tutor: %v", err)
	}
	if _, err := service.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := service.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing tutor, got %v", err)
	}
}
