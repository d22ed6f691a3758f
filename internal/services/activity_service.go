package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/events"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

// ===== RESPONSE DTOs =====

type ActivityListResponse struct {
	Activities []*models.Activity `json:"activities"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
}

// ===== SERVICE INTERFACE =====

type ActivityService interface {
	Record(ctx context.Context, req *RecordActivityRequest) (*models.Activity, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.ActivityFilters) (*ActivityListResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type activityService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewActivityService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ActivityService {
	return &activityService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *activityService) Record(ctx context.Context, req *RecordActivityRequest) (*models.Activity, error) {
	if errs := s.validator.ValidateActivityCreate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	// Both referenced records must exist; a dangling activity would silently
	// vanish from every progress view.
	studentExists, err := s.repo.Student().ExistsByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !studentExists {
		return nil, ErrStudentNotFound
	}

	courseExists, err := s.repo.Course().ExistsByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !courseExists {
		return nil, ErrCourseNotFound
	}

	completedAt := time.Now().UTC()
	if req.CompletedAt != nil {
		completedAt = req.CompletedAt.UTC()
	}

	// Topic free text is deliberately not checked against the course topic
	// set. Unmatched topics never count toward completion, nothing more.
	activity := &models.Activity{
		ID:          uuid.NewString(),
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		Topic:       req.Topic,
		Type:        req.Type,
		Score:       req.Score,
		Notes:       req.Notes,
		CompletedAt: completedAt,
	}

	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	s.publishEvent(ctx, events.EventActivityRecorded, activity)
	s.logger.Info("Activity recorded",
		"activity_id", activity.ID,
		"student_id", activity.StudentID,
		"course_id", activity.CourseID)

	return activity, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	activity, err := s.repo.Activity().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Activity().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.publishEvent(ctx, events.EventActivityDeleted, map[string]string{"activity_id": id})

	return nil
}

func (s *activityService) List(ctx context.Context, filters repositories.ActivityFilters) (*ActivityListResponse, error) {
	activities, total, err := s.repo.Activity().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	size := filters.Limit
	if size <= 0 {
		size = 50
	}
	page := 1
	if filters.Offset > 0 {
		page = filters.Offset/size + 1
	}

	return &ActivityListResponse{
		Activities: activities,
		Total:      total,
		Page:       page,
		Size:       size,
	}, nil
}

func (s *activityService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
