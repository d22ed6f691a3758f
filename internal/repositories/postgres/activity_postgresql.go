package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &activityRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return handleDBError(err, "create activity")
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get activity by id")
	}
	return &activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return handleDBError(err, "update activity")
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id).Error; err != nil {
		return handleDBError(err, "delete activity")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *activityRepository) List(ctx context.Context, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	var activities []*models.Activity
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Activity{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count activities")
	}

	query = applyPagination(query.Order("completed_at DESC"), filters.Limit, filters.Offset)

	if err := query.Find(&activities).Error; err != nil {
		return nil, 0, handleDBError(err, "list activities")
	}
	return activities, total, nil
}

func (r *activityRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&activities).Error
	if err != nil {
		return nil, handleDBError(err, "get activities by student")
	}
	return activities, nil
}

func (r *activityRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("created_at ASC").
		Find(&activities).Error
	if err != nil {
		return nil, handleDBError(err, "get activities by student and course")
	}
	return activities, nil
}

func (r *activityRepository) GetByCourse(ctx context.Context, courseID string) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&activities).Error
	if err != nil {
		return nil, handleDBError(err, "get activities by course")
	}
	return activities, nil
}

func (r *activityRepository) applyFilters(query *gorm.DB, filters repositories.ActivityFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}
	return query
}
