package repositories

import (
	"context"
	"time"

	"github.com/Adetops/edu-progress-tracker/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Query  string `json:"query"` // Matches name or email, case-insensitive
	Grade  *string
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	SortBy string `json:"sort_by"` // "name", "created_at"
}

type CourseFilters struct {
	Query     string `json:"query"` // Matches title, case-insensitive
	CreatedBy *string
	Limit     int `json:"limit"`
	Offset    int `json:"offset"`
}

type ActivityFilters struct {
	StudentID *string              `json:"student_id"`
	CourseID  *string              `json:"course_id"`
	Type      *models.ActivityType `json:"activity_type"`
	DateFrom  *time.Time           `json:"date_from"`
	DateTo    *time.Time           `json:"date_to"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // Matches username or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByTitle(ctx context.Context, title string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error

	// List returns courses ordered by creation time ascending so progress
	// reports keep a stable course order.
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters ActivityFilters) ([]*models.Activity, int64, error)

	// Aggregation reads. Results are ordered by creation time ascending.
	GetByStudent(ctx context.Context, studentID string) ([]*models.Activity, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]*models.Activity, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.Activity, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

// DashboardRepository interface for dashboard analytics operations
type DashboardRepository interface {
	GetTotalStudents(ctx context.Context) (int64, error)
	GetTotalCourses(ctx context.Context) (int64, error)
	GetTotalActivities(ctx context.Context) (int64, error)
	GetActivitiesSince(ctx context.Context, since time.Time) (int64, error)

	// GetAverageScore averages every recorded score across all activities.
	// scored reports how many activities carried a score at all.
	GetAverageScore(ctx context.Context) (avg float64, scored int64, err error)
}
