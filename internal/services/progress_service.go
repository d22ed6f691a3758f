package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

// ===== RESPONSE DTOs =====

// CourseProgressResponse is one per-course row of a student's progress.
// AverageScore is nil when none of the matching activities carry a score;
// a recorded score of zero still counts toward the mean.
type CourseProgressResponse struct {
	CourseID        string     `json:"course_id"`
	CourseTitle     string     `json:"course_title"`
	TotalActivities int        `json:"total_activities"`
	AverageScore    *float64   `json:"average_score"`
	LastActivity    *time.Time `json:"last_activity"`
}

// StudentProgressResponse is one per-student row within a course report.
// CompletionRate is nil only when the course declares no topics; a computed
// rate of exactly zero is reported as 0.0.
type StudentProgressResponse struct {
	StudentID       string     `json:"student_id"`
	StudentName     string     `json:"student_name"`
	TotalActivities int        `json:"total_activities"`
	AverageScore    *float64   `json:"average_score"`
	CompletionRate  *float64   `json:"completion_rate"`
	LastActivity    *time.Time `json:"last_activity"`
}

// CourseReportResponse pairs a course with the per-student progress rows of
// every student that has activity in it.
type CourseReportResponse struct {
	Course   *models.Course             `json:"course"`
	Students []*StudentProgressResponse `json:"students"`
}

// ===== SERVICE INTERFACE =====

// ProgressService computes read-only progress aggregates. Every call reads a
// fresh snapshot from the repositories and recomputes from scratch; nothing
// is cached and no state is held between calls.
type ProgressService interface {
	// ProgressByCourse returns one row per course the student has activity
	// in, in course insertion order. An unknown student is not an error, it
	// yields an empty result.
	ProgressByCourse(ctx context.Context, studentID string) ([]*CourseProgressResponse, error)

	// ProgressByStudent returns the course and one row per student with
	// activity in it, in student insertion order. Returns ErrCourseNotFound
	// only when the course id does not resolve.
	ProgressByStudent(ctx context.Context, courseID string) (*CourseReportResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type progressService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewProgressService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ProgressService {
	return &progressService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *progressService) ProgressByCourse(ctx context.Context, studentID string) ([]*CourseProgressResponse, error) {
	s.logger.Info("Computing progress by course", "student_id", studentID)

	courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	activities, err := s.repo.Activity().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student activities: %w", err)
	}

	byCourse := make(map[string][]*models.Activity)
	for _, activity := range activities {
		byCourse[activity.CourseID] = append(byCourse[activity.CourseID], activity)
	}

	result := make([]*CourseProgressResponse, 0, len(courses))
	for _, course := range courses {
		matching := byCourse[course.ID]
		if len(matching) == 0 {
			// No output row for a course without activity, not a zero row.
			continue
		}

		result = append(result, &CourseProgressResponse{
			CourseID:        course.ID,
			CourseTitle:     course.Title,
			TotalActivities: len(matching),
			AverageScore:    averageScore(matching),
			LastActivity:    lastActivity(matching),
		})
	}

	return result, nil
}

func (s *progressService) ProgressByStudent(ctx context.Context, courseID string) (*CourseReportResponse, error) {
	s.logger.Info("Computing progress by student", "course_id", courseID)

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	students, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	activities, err := s.repo.Activity().GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course activities: %w", err)
	}

	byStudent := make(map[string][]*models.Activity)
	for _, activity := range activities {
		byStudent[activity.StudentID] = append(byStudent[activity.StudentID], activity)
	}

	rows := make([]*StudentProgressResponse, 0, len(students))
	for _, student := range students {
		matching := byStudent[student.ID]
		if len(matching) == 0 {
			continue
		}

		rows = append(rows, &StudentProgressResponse{
			StudentID:       student.ID,
			StudentName:     student.Name,
			TotalActivities: len(matching),
			AverageScore:    averageScore(matching),
			CompletionRate:  completionRate(course.Topics, matching),
			LastActivity:    lastActivity(matching),
		})
	}

	return &CourseReportResponse{
		Course:   course,
		Students: rows,
	}, nil
}

// ===== AGGREGATION HELPERS =====

// averageScore returns the mean of every recorded score rounded to one
// decimal, or nil when no activity carries a score.
func averageScore(activities []*models.Activity) *float64 {
	var sum float64
	var scored int
	for _, activity := range activities {
		if activity.Score != nil {
			sum += *activity.Score
			scored++
		}
	}
	if scored == 0 {
		return nil
	}
	avg := roundFloat(sum/float64(scored), 1)
	return &avg
}

// completionRate returns the percentage of course topics covered by the
// activities, matched case-sensitively against distinct activity topics.
// Nil only when the course declares no topics; zero coverage is 0.0.
func completionRate(topics []string, activities []*models.Activity) *float64 {
	if len(topics) == 0 {
		return nil
	}

	declared := make(map[string]bool, len(topics))
	for _, topic := range topics {
		declared[topic] = true
	}

	covered := make(map[string]bool)
	for _, activity := range activities {
		if declared[activity.Topic] {
			covered[activity.Topic] = true
		}
	}

	rate := roundFloat(float64(len(covered))/float64(len(topics))*100, 1)
	return &rate
}

// lastActivity selects the maximum completion timestamp explicitly rather
// than trusting store ordering.
func lastActivity(activities []*models.Activity) *time.Time {
	var last *time.Time
	for _, activity := range activities {
		t := activity.CompletedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
