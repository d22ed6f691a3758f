package services

import (
	"context"

	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type RecordActivityRequest = validator.ActivityCreateRequest
type RegisterUserRequest = validator.RegisterRequest
type LoginUserRequest = validator.LoginRequest
type ChangeUserPasswordRequest = validator.ChangePasswordRequest

// ===== SERVICE MANAGER =====

// ServiceManager provides access to all services after Initialize
type ServiceManager interface {
	Student() StudentService
	Course() CourseService
	Activity() ActivityService
	Progress() ProgressService
	Dashboard() DashboardService
	User() UserService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
