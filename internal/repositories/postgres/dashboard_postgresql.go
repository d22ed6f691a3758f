package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetTotalStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count students")
	}
	return count, nil
}

func (r *dashboardRepository) GetTotalCourses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count courses")
	}
	return count, nil
}

func (r *dashboardRepository) GetTotalActivities(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count activities")
	}
	return count, nil
}

func (r *dashboardRepository) GetActivitiesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("completed_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count activities since")
	}
	return count, nil
}

func (r *dashboardRepository) GetAverageScore(ctx context.Context) (float64, int64, error) {
	var result struct {
		Avg    float64
		Scored int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(score) AS scored").
		Where("score IS NOT NULL").
		Scan(&result).Error
	if err != nil {
		return 0, 0, handleDBError(err, "average activity score")
	}
	return result.Avg, result.Scored, nil
}
