package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/events"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

// ===== RESPONSE DTOs =====

type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

// StudentDetailResponse combines a student with their activity history,
// per-course progress and overall totals.
type StudentDetailResponse struct {
	Student    *models.Student           `json:"student"`
	Activities []*models.Activity        `json:"activities"`
	Progress   []*CourseProgressResponse `json:"progress"`

	TotalActivities int      `json:"total_activities"`
	AverageScore    *float64 `json:"average_score"`
}

// ===== SERVICE INTERFACE =====

type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetDetail(ctx context.Context, id string) (*StudentDetailResponse, error)
	Update(ctx context.Context, id string, req *UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type studentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	progress  ProgressService
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, progress ProgressService) StudentService {
	return &studentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
		progress:  progress,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	if errs := s.validator.ValidateStudentCreate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	// Emails are stored lowercase so uniqueness is case-insensitive.
	email := strings.ToLower(req.Email)

	exists, err := s.repo.Student().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check student email: %w", err)
	}
	if exists {
		return nil, ErrStudentEmailExists
	}

	if req.Account != nil {
		taken, err := s.repo.User().ExistsByUsername(ctx, req.Account.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, ErrUsernameExists
		}
	}

	student := &models.Student{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: email,
		Grade: req.Grade,
	}
	if req.ParentPhone != nil {
		normalized := validator.NormalizePhoneNumber(*req.ParentPhone)
		student.ParentPhone = &normalized
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Student().Create(ctx, student); err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		if req.Account == nil {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Account.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		account := &models.User{
			ID:           uuid.NewString(),
			Username:     req.Account.Username,
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
			FullName:     req.Name,
			StudentID:    &student.ID,
			IsActive:     true,
		}
		if err := tx.User().Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create linked account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventStudentCreated, student)
	s.logger.Info("Student created", "student_id", student.ID)

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetDetail(ctx context.Context, id string) (*StudentDetailResponse, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.Activity().GetByStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student activities: %w", err)
	}

	progress, err := s.progress.ProgressByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute student progress: %w", err)
	}

	return &StudentDetailResponse{
		Student:         student,
		Activities:      activities,
		Progress:        progress,
		TotalActivities: len(activities),
		AverageScore:    averageScore(activities),
	}, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *UpdateStudentRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != student.Email {
			exists, err := s.repo.Student().ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check student email: %w", err)
			}
			if exists {
				return nil, ErrStudentEmailExists
			}
			student.Email = email
		}
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.ParentPhone != nil {
		normalized := validator.NormalizePhoneNumber(*req.ParentPhone)
		student.ParentPhone = &normalized
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.publishEvent(ctx, events.EventStudentUpdated, student)

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.publishEvent(ctx, events.EventStudentDeleted, map[string]string{"student_id": id})
	s.logger.Info("Student deleted", "student_id", id)

	return nil
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	size := filters.Limit
	if size <= 0 {
		size = 50
	}
	page := 1
	if filters.Offset > 0 {
		page = filters.Offset/size + 1
	}

	return &StudentListResponse{
		Students: students,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

// publishEvent publishes without failing the business operation
func (s *studentService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
