package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}
	return &student, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "email = ?", email).Error; err != nil {
		return nil, handleDBError(err, "get student by email")
	}
	return &student, nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Student{}, "id = ?", id).Error; err != nil {
		return handleDBError(err, "delete student")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *studentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if filters.Grade != nil {
		query = query.Where("grade = ?", *filters.Grade)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count students")
	}

	sortBy := filters.SortBy
	if sortBy != "name" && sortBy != "created_at" {
		sortBy = "created_at"
	}
	query = applyPagination(query.Order(sortBy+" ASC"), filters.Limit, filters.Offset)

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, handleDBError(err, "list students")
	}
	return students, total, nil
}

// ===== VALIDATION AND CHECKS =====

func (r *studentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check student exists")
	}
	return count > 0, nil
}

func (r *studentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check student email exists")
	}
	return count > 0, nil
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count students")
	}
	return count, nil
}
