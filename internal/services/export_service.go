package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// ===== SERVICE IMPLEMENTATION =====

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var studentExportHeader = []interface{}{
	"ID", "Full Name", "Email", "Phone", "Date of Birth", "Address",
	"Course", "Enrolled At", "Completion Status", "Certificate ID",
}

// ExportStudents writes all student records into an xlsx workbook.
func (s *exportService) ExportStudents(ctx context.Context, w io.Writer) error {
	students, err := s.repo.Student().List(ctx, repositories.StudentFilter{})
	if err != nil {
		return fmt.Errorf("failed to list students for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("Failed to delete default sheet", "error", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &studentExportHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, st := range students {
		dob := ""
		if st.DateOfBirth != nil {
			dob = st.DateOfBirth.Format("2006-01-02")
		}

		row := []interface{}{
			st.ID,
			st.FullName,
			st.Email,
			st.Phone,
			dob,
			st.Address,
			st.CourseEnrolled,
			st.EnrolledAt.Format("2006-01-02"),
			string(st.CompletionStatus),
			st.CertificateID,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write student row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Students exported", "count", len(students))

	return nil
}
