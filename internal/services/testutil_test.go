package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory repositories.Repository. Slices keep
// insertion order, matching the creation-time ordering of the real store.
type fakeRepository struct {
	students   []*models.Student
	courses    []*models.Course
	activities []*models.Activity
	users      []*models.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (f *fakeRepository) Student() repositories.StudentRepository     { return &fakeStudentRepo{f} }
func (f *fakeRepository) Course() repositories.CourseRepository       { return &fakeCourseRepo{f} }
func (f *fakeRepository) Activity() repositories.ActivityRepository   { return &fakeActivityRepo{f} }
func (f *fakeRepository) User() repositories.UserRepository           { return &fakeUserRepo{f} }
func (f *fakeRepository) Dashboard() repositories.DashboardRepository { return &fakeDashboardRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}
func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== STUDENT =====

type fakeStudentRepo struct{ f *fakeRepository }

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.f.students = append(r.f.students, student)
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("get student: %w", repositories.ErrNotFound)
}

func (r *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, fmt.Errorf("get student: %w", repositories.ErrNotFound)
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	for i, s := range r.f.students {
		if s.ID == student.ID {
			r.f.students[i] = student
			return nil
		}
	}
	return fmt.Errorf("update student: %w", repositories.ErrNotFound)
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	for i, s := range r.f.students {
		if s.ID == id {
			r.f.students = append(r.f.students[:i], r.f.students[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete student: %w", repositories.ErrNotFound)
}

func (r *fakeStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	result := make([]*models.Student, 0, len(r.f.students))
	for _, s := range r.f.students {
		if filters.Query != "" &&
			!strings.Contains(strings.ToLower(s.Name), strings.ToLower(filters.Query)) &&
			!strings.Contains(strings.ToLower(s.Email), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.Grade != nil && s.Grade != *filters.Grade {
			continue
		}
		result = append(result, s)
	}
	return result, int64(len(result)), nil
}

func (r *fakeStudentRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	for _, s := range r.f.students {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, s := range r.f.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.f.students)), nil
}

// ===== COURSE =====

type fakeCourseRepo struct{ f *fakeRepository }

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.f.courses = append(r.f.courses, course)
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	for _, c := range r.f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("get course: %w", repositories.ErrNotFound)
}

func (r *fakeCourseRepo) GetByTitle(ctx context.Context, title string) (*models.Course, error) {
	for _, c := range r.f.courses {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, fmt.Errorf("get course: %w", repositories.ErrNotFound)
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	for i, c := range r.f.courses {
		if c.ID == course.ID {
			r.f.courses[i] = course
			return nil
		}
	}
	return fmt.Errorf("update course: %w", repositories.ErrNotFound)
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	for i, c := range r.f.courses {
		if c.ID == id {
			r.f.courses = append(r.f.courses[:i], r.f.courses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete course: %w", repositories.ErrNotFound)
}

func (r *fakeCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	result := make([]*models.Course, 0, len(r.f.courses))
	for _, c := range r.f.courses {
		if filters.Query != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.CreatedBy != nil && c.CreatedBy != *filters.CreatedBy {
			continue
		}
		result = append(result, c)
	}
	return result, int64(len(result)), nil
}

func (r *fakeCourseRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	for _, c := range r.f.courses {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.f.courses)), nil
}

// ===== ACTIVITY =====

type fakeActivityRepo struct{ f *fakeRepository }

func (r *fakeActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	r.f.activities = append(r.f.activities, activity)
	return nil
}

func (r *fakeActivityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	for _, a := range r.f.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("get activity: %w", repositories.ErrNotFound)
}

func (r *fakeActivityRepo) Update(ctx context.Context, activity *models.Activity) error {
	for i, a := range r.f.activities {
		if a.ID == activity.ID {
			r.f.activities[i] = activity
			return nil
		}
	}
	return fmt.Errorf("update activity: %w", repositories.ErrNotFound)
}

func (r *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	for i, a := range r.f.activities {
		if a.ID == id {
			r.f.activities = append(r.f.activities[:i], r.f.activities[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete activity: %w", repositories.ErrNotFound)
}

func (r *fakeActivityRepo) List(ctx context.Context, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	result := make([]*models.Activity, 0, len(r.f.activities))
	for _, a := range r.f.activities {
		if filters.StudentID != nil && a.StudentID != *filters.StudentID {
			continue
		}
		if filters.CourseID != nil && a.CourseID != *filters.CourseID {
			continue
		}
		if filters.Type != nil && a.Type != *filters.Type {
			continue
		}
		result = append(result, a)
	}
	// Newest first, like the real repository.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	total := int64(len(result))
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, total, nil
}

func (r *fakeActivityRepo) GetByStudent(ctx context.Context, studentID string) ([]*models.Activity, error) {
	var result []*models.Activity
	for _, a := range r.f.activities {
		if a.StudentID == studentID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeActivityRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]*models.Activity, error) {
	var result []*models.Activity
	for _, a := range r.f.activities {
		if a.StudentID == studentID && a.CourseID == courseID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeActivityRepo) GetByCourse(ctx context.Context, courseID string) ([]*models.Activity, error) {
	var result []*models.Activity
	for _, a := range r.f.activities {
		if a.CourseID == courseID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ===== USER =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.f.users = append(r.f.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", repositories.ErrNotFound)
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", repositories.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", repositories.ErrNotFound)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	for i, u := range r.f.users {
		if u.ID == user.ID {
			r.f.users[i] = user
			return nil
		}
	}
	return fmt.Errorf("update user: %w", repositories.ErrNotFound)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	for i, u := range r.f.users {
		if u.ID == id {
			r.f.users = append(r.f.users[:i], r.f.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete user: %w", repositories.ErrNotFound)
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	result := make([]*models.User, 0, len(r.f.users))
	for _, u := range r.f.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.Query != "" &&
			!strings.Contains(strings.ToLower(u.Username), strings.ToLower(filters.Query)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(filters.Query)) {
			continue
		}
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range r.f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	for _, u := range r.f.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ===== DASHBOARD =====

type fakeDashboardRepo struct{ f *fakeRepository }

func (r *fakeDashboardRepo) GetTotalStudents(ctx context.Context) (int64, error) {
	return int64(len(r.f.students)), nil
}

func (r *fakeDashboardRepo) GetTotalCourses(ctx context.Context) (int64, error) {
	return int64(len(r.f.courses)), nil
}

func (r *fakeDashboardRepo) GetTotalActivities(ctx context.Context) (int64, error) {
	return int64(len(r.f.activities)), nil
}

func (r *fakeDashboardRepo) GetActivitiesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, a := range r.f.activities {
		if !a.CompletedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeDashboardRepo) GetAverageScore(ctx context.Context) (float64, int64, error) {
	var sum float64
	var scored int64
	for _, a := range r.f.activities {
		if a.Score != nil {
			sum += *a.Score
			scored++
		}
	}
	if scored == 0 {
		return 0, 0, nil
	}
	return sum / float64(scored), scored, nil
}

// ===== BUILDERS =====

func ptrFloat(v float64) *float64 { return &v }

func addStudent(f *fakeRepository, id, name string) *models.Student {
	s := &models.Student{ID: id, Name: name, Email: id + "@school.test", Grade: "10"}
	f.students = append(f.students, s)
	return s
}

func addCourse(f *fakeRepository, id, title string, topics ...string) *models.Course {
	c := &models.Course{ID: id, Title: title, Topics: topics}
	f.courses = append(f.courses, c)
	return c
}

func addActivity(f *fakeRepository, studentID, courseID, topic string, score *float64, completedAt time.Time) *models.Activity {
	a := &models.Activity{
		ID:          fmt.Sprintf("act-%d", len(f.activities)+1),
		StudentID:   studentID,
		CourseID:    courseID,
		Topic:       topic,
		Type:        models.ActivityExercise,
		Score:       score,
		CompletedAt: completedAt,
	}
	f.activities = append(f.activities, a)
	return a
}
