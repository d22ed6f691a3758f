package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleTeacher, RoleStudent, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// CanViewAllStudents reports whether the role grants read access to every
// student's progress. Parents and students only see their linked records.
func (r UserRole) CanViewAllStudents() bool {
	return r == RoleTeacher || r == RoleAdmin
}

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:255"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`

	// Profile info
	FullName string  `json:"full_name" gorm:"size:100"`
	Phone    *string `json:"phone" gorm:"size:20"`

	// A student account may be linked to the student record it belongs to;
	// a parent account to the child it supervises.
	StudentID *string `json:"student_id" gorm:"size:255;index"`

	IsActive bool `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
