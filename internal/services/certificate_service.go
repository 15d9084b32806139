package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/storage"
)

const qrImageSize = 300

// ===== SERVICE IMPLEMENTATION =====

type certificateService struct {
	repo            repositories.Repository
	files           storage.FileStore
	publisher       events.EventPublisher
	frontendBaseURL string
	logger          *slog.Logger
}

func NewCertificateService(
	repo repositories.Repository,
	files storage.FileStore,
	publisher events.EventPublisher,
	frontendBaseURL string,
	logger *slog.Logger,
) CertificateService {
	return &certificateService{
		repo:            repo,
		files:           files,
		publisher:       publisher,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		logger:          logger,
	}
}

// GenerateQR encodes the student's verification link into a QR image,
// stores it under a key derived from the certificate id and persists
// the resulting URL. Regenerating replaces the previous image.
func (s *certificateService) GenerateQR(ctx context.Context, studentID uint) (*QRCodeResponse, error) {
	if s.frontendBaseURL == "" {
		return nil, fmt.Errorf("%w: frontend base URL is not configured", ErrValidationFailed)
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if student.CertificateID == "" {
		return nil, fmt.Errorf("%w: student has no certificate id", ErrValidationFailed)
	}

	verifyURL := fmt.Sprintf("%s/verify/%s", s.frontendBaseURL, student.CertificateID)

	png, err := qrcode.Encode(verifyURL, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	key := fmt.Sprintf("certificates/%s.png", student.CertificateID)
	url, err := s.files.Save(ctx, key, bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("%w: QR upload: %s", ErrStorage, err.Error())
	}

	student.QRCodeURL = url
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to persist QR code URL: %w", err)
	}

	s.logger.Info("Certificate QR generated",
		"student_id", student.ID,
		"certificate_id", student.CertificateID)

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, events.EventCertificateGenerated, map[string]interface{}{
			"student_id":     student.ID,
			"certificate_id": student.CertificateID,
			"qr_code_url":    url,
		})
		if err != nil {
			s.logger.Error("Failed to publish event", "error", err, "event_type", events.EventCertificateGenerated)
		}
	}

	return &QRCodeResponse{
		CertificateID: student.CertificateID,
		QRCodeURL:     url,
		VerifyURL:     verifyURL,
	}, nil
}

// VerifyCertificate resolves a scanned certificate id to its student.
func (s *certificateService) VerifyCertificate(ctx context.Context, certificateID string) (*models.Student, error) {
	if certificateID == "" {
		return nil, fmt.Errorf("%w: certificate id is required", ErrValidationFailed)
	}

	student, err := s.repo.Student().GetByCertificateID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate %s", ErrNotFound, certificateID)
		}
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}
	return student, nil
}
