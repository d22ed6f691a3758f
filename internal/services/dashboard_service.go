package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

// ===== RESPONSE DTOs =====

type DashboardStatsResponse struct {
	TotalStudents    int64 `json:"total_students"`
	TotalCourses     int64 `json:"total_courses"`
	TotalActivities  int64 `json:"total_activities"`
	RecentActivities int64 `json:"recent_activities"`

	// Mean of every recorded score across all activities. Zero, not null,
	// when nothing has been scored yet.
	AverageScore float64 `json:"average_score"`

	// Ten most recently completed activities, newest first.
	LatestActivities []*models.Activity `json:"latest_activities"`
}

// ===== SERVICE INTERFACE =====

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger

	now func() time.Time
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	s.logger.Info("Getting dashboard stats")

	totalStudents, err := s.repo.Dashboard().GetTotalStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total students: %w", err)
	}

	totalCourses, err := s.repo.Dashboard().GetTotalCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total courses: %w", err)
	}

	totalActivities, err := s.repo.Dashboard().GetTotalActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total activities: %w", err)
	}

	// Trailing 7x24h window, lower bound inclusive.
	weekAgo := s.now().UTC().Add(-7 * 24 * time.Hour)
	recentActivities, err := s.repo.Dashboard().GetActivitiesSince(ctx, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent activities: %w", err)
	}

	avg, scored, err := s.repo.Dashboard().GetAverageScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get average score: %w", err)
	}

	averageScore := 0.0
	if scored > 0 {
		averageScore = roundFloat(avg, 1)
	}

	latest, _, err := s.repo.Activity().List(ctx, repositories.ActivityFilters{Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to list latest activities: %w", err)
	}

	return &DashboardStatsResponse{
		TotalStudents:    totalStudents,
		TotalCourses:     totalCourses,
		TotalActivities:  totalActivities,
		RecentActivities: recentActivities,
		AverageScore:     averageScore,
		LatestActivities: latest,
	}, nil
}
