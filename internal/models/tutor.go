package models

import (
	"time"

	"gorm.io/gorm"
)

type Tutor struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	FullName       string `json:"full_name" gorm:"not null;size:100"`
	Email          string `json:"email" gorm:"index;not null;size:255"`
	Phone          string `json:"phone" gorm:"size:20"`
	Specialization string `json:"specialization" gorm:"size:100"`
	ImageURL       string `json:"image_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Tutor) TableName() string {
	return "tutors"
}
