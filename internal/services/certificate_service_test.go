package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

func TestCertificateService_GenerateQR(t *testing.T) {
	repo := newMockRepository()
	files := newMockFileStore()
	publisher := events.NewMockEventPublisher()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewCertificateService(repo, files, publisher, "https://portal.example.com/", logger)
	ctx := context.Background()

	student := &models.Student{
		FullName:       "Jordan Learner",
		Email:          "jordan@example.com",
		CourseEnrolled: "Go Fundamentals",
		CertificateID:  "cert-123",
	}
	if err := repo.student.Create(ctx, student); err != nil {
		t.Fatalf("Failed to seed student: %v", err)
	}

	resp, err := service.GenerateQR(ctx, student.ID)
	if err != nil {
		t.Fatalf("Failed to generate QR: %v", err)
	}

	if resp.VerifyURL != "https://portal.example.com/verify/cert-123" {
		t.Errorf("Unexpected verify URL: %s", resp.VerifyURL)
	}
	if resp.CertificateID != "cert-123" {
		t.Errorf("Unexpected certificate id: %s", resp.CertificateID)
	}

	png, ok := files.saved["certificates/cert-123.png"]
	if !ok {
		t.Fatalf("Expected QR stored under certificates/, saved keys: %v", files.saved)
	}
	if len(png) == 0 {
		t.Error("Expected a non-empty PNG")
	}

	stored, err := repo.student.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("Failed to reload student: %v", err)
	}
	if stored.QRCodeURL != resp.QRCodeURL {
		t.Errorf("Expected persisted QR URL %q, got %q", resp.QRCodeURL, stored.QRCodeURL)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventCertificateGenerated {
		t.Errorf("Expected one %s event, got %v", events.EventCertificateGenerated, published)
	}

	t.Run("regenerate replaces the image", func(t *testing.T) {
		if _, err := service.GenerateQR(ctx, student.ID); err != nil {
			t.Fatalf("Failed to regenerate QR: %v", err)
		}
		if len(files.saved) != 1 {
			t.Errorf("Expected a single stored image, got %d", len(files.saved))
		}
	})
}

func TestCertificateService_VerifyCertificate(t *testing.T) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewCertificateService(repo, newMockFileStore(), nil, "https://portal.example.com", logger)
	ctx := context.Background()

	student := &models.Student{
		FullName:      "Jordan Learner",
		Email:         "jordan@example.com",
		CertificateID: "cert-123",
	}
	if err := repo.student.Create(ctx, student); err != nil {
		t.Fatalf("Failed to seed student: %v", err)
	}

	found, err := service.VerifyCertificate(ctx, "cert-123")
	if err != nil {
		t.Fatalf("Failed to verify certificate: %v", err)
	}
	if found.ID != student.ID {
		t.Errorf("Expected student %d, got %d", student.ID, found.ID)
	}

	t.Run("unknown certificate", func(t *testing.T) {
		_, err := service.VerifyCertificate(ctx, "cert-999")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty certificate id", func(t *testing.T) {
		_, err := service.VerifyCertificate(ctx, "")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestCertificateService_GenerateQR_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("missing frontend base URL", func(t *testing.T) {
		service := NewCertificateService(newMockRepository(), newMockFileStore(), nil, "", logger)
		_, err := service.GenerateQR(ctx, 1)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		service := NewCertificateService(newMockRepository(), newMockFileStore(), nil, "https://portal.example.com", logger)
		_, err := service.GenerateQR(ctx, 999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("student without certificate id", func(t *testing.T) {
		repo := newMockRepository()
		student := &models.Student{FullName: "No Cert", Email: "nocert@example.com"}
		if err := repo.student.Create(ctx, student); err != nil {
			t.Fatalf("Failed to seed student: %v", err)
		}

		service := NewCertificateService(repo, newMockFileStore(), nil, "https://portal.example.com", logger)
		_, err := service.GenerateQR(ctx, student.ID)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := newMockRepository()
		student := &models.Student{FullName: "Jordan", Email: "j@example.com", CertificateID: "cert-9"}
		if err := repo.student.Create(ctx, student); err != nil {
			t.Fatalf("Failed to seed student: %v", err)
		}

		files := newMockFileStore()
		files.fail = true
		service := NewCertificateService(repo, files, nil, "https://portal.example.com", logger)
		_, err := service.GenerateQR(ctx, student.ID)
		if !errors.Is(err, ErrStorage) {
			t.Errorf("Expected ErrStorage, got %v", err)
		}
	})
}
