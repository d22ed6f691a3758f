package validator

import (
	"time"

	"github.com/Adetops/edu-progress-tracker/internal/models"
)

// StudentCreateRequest represents the request structure for creating students
type StudentCreateRequest struct {
	Name        string  `json:"name" validate:"required,student_name"`
	Email       string  `json:"email" validate:"required,email"`
	Grade       string  `json:"grade" validate:"omitempty,max=50"`
	ParentPhone *string `json:"parent_phone" validate:"omitempty,phone_number"`

	// When present, a login account linked to the new student record is
	// created in the same transaction.
	Account *StudentAccountRequest `json:"account"`
}

// StudentAccountRequest carries the credentials for an optional login
// account created alongside a student
type StudentAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// StudentUpdateRequest represents the request structure for updating students
type StudentUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,student_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Grade       *string `json:"grade" validate:"omitempty,max=50"`
	ParentPhone *string `json:"parent_phone" validate:"omitempty,phone_number"`
}

// CourseCreateRequest represents the request structure for creating courses
type CourseCreateRequest struct {
	Title       string   `json:"title" validate:"required,course_title"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Topics      []string `json:"topics" validate:"omitempty,dive,required,max=200"`
}

// CourseUpdateRequest represents the request structure for updating courses
type CourseUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,course_title"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Topics      []string `json:"topics" validate:"omitempty,dive,required,max=200"`
}

// ActivityCreateRequest represents the request structure for recording activities
type ActivityCreateRequest struct {
	StudentID string              `json:"student_id" validate:"required"`
	CourseID  string              `json:"course_id" validate:"required"`
	Topic     string              `json:"topic" validate:"required,min=1,max=200"`
	Type      models.ActivityType `json:"activity_type" validate:"required,activity_type"`
	Score     *float64            `json:"score" validate:"omitempty,score_range"`
	Notes     *string             `json:"notes" validate:"omitempty,max=1000"`

	// Defaults to the current time when omitted.
	CompletedAt *time.Time `json:"completed_at"`
}

// RegisterRequest represents the request structure for account registration
type RegisterRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6,max=128"`

	// Defaults to teacher when omitted.
	Role models.UserRole `json:"role" validate:"omitempty,user_role"`
	FullName string          `json:"full_name" validate:"omitempty,max=100"`
	Phone    *string         `json:"phone" validate:"omitempty,phone_number"`

	// Links a student or parent account to a student record.
	StudentID *string `json:"student_id"`
}

// LoginRequest represents the request structure for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request structure for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=128"`
}
