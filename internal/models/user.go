package models

import (
	"time"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleTutor      UserRole = "tutor"
)

// ValidRoles is the closed set of roles accepted at signup.
var ValidRoles = []UserRole{RoleSuperAdmin, RoleTutor}

func (r UserRole) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
