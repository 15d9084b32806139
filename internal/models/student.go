package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CompletionStatus string

const (
	StatusEnrolled  CompletionStatus = "enrolled"
	StatusCompleted CompletionStatus = "completed"
)

func (s CompletionStatus) Valid() bool {
	return s == StatusEnrolled || s == StatusCompleted
}

type Student struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FullName    string     `json:"full_name" gorm:"not null;size:100"`
	Email       string     `json:"email" gorm:"index;not null;size:255"`
	Phone       string     `json:"phone" gorm:"size:20"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address" gorm:"size:500"`

	CourseEnrolled   string           `json:"course_enrolled" gorm:"index;not null;size:100"`
	EnrolledAt       time.Time        `json:"enrolled_at" gorm:"index;not null"`
	CompletionStatus CompletionStatus `json:"completion_status" gorm:"not null;size:20;default:enrolled"`

	// Proof documents. PhotoURL and IDProofURL are required at insert;
	// ExtraDocuments holds any additional certificate uploads as a JSON
	// array of URLs.
	PhotoURL       string         `json:"photo_url" gorm:"size:500"`
	IDProofURL     string         `json:"id_proof_url" gorm:"size:500"`
	ExtraDocuments datatypes.JSON `json:"extra_documents,omitempty"`

	// Certificate identity and its published QR image.
	CertificateID string `json:"certificate_id" gorm:"uniqueIndex;size:64"`
	QRCodeURL     string `json:"qr_code_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}
