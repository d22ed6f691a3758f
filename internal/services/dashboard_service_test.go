package services

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	newService := func(f *fakeRepository) *dashboardService {
		return &dashboardService{
			repo:   f,
			logger: testLogger(),
			now:    func() time.Time { return now },
		}
	}

	t.Run("empty system reports zeroes", func(t *testing.T) {
		f := newFakeRepository()

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalStudents != 0 || stats.TotalCourses != 0 || stats.TotalActivities != 0 {
			t.Errorf("expected zero totals, got %+v", stats)
		}
		if stats.AverageScore != 0.0 {
			t.Errorf("expected average 0.0 when nothing is scored, got %v", stats.AverageScore)
		}
	})

	t.Run("counts all entities", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addStudent(f, "s2", "Grace")
		addCourse(f, "c1", "Algebra I")
		addActivity(f, "s1", "c1", "Lines", ptrFloat(80), now)
		addActivity(f, "s2", "c1", "Lines", nil, now)
		addActivity(f, "s2", "c1", "Slopes", ptrFloat(90), now)

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalStudents != 2 || stats.TotalCourses != 1 || stats.TotalActivities != 3 {
			t.Errorf("unexpected totals: %+v", stats)
		}
		if stats.AverageScore != 85.0 {
			t.Errorf("expected average 85.0, got %v", stats.AverageScore)
		}
	})

	t.Run("recent window is a trailing seven days, lower bound inclusive", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")

		weekAgo := now.Add(-7 * 24 * time.Hour)
		addActivity(f, "s1", "c1", "too old", nil, weekAgo.Add(-time.Second))
		addActivity(f, "s1", "c1", "boundary", nil, weekAgo)
		addActivity(f, "s1", "c1", "recent", nil, now.Add(-6*24*time.Hour))

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.RecentActivities != 2 {
			t.Errorf("expected 2 recent activities, got %d", stats.RecentActivities)
		}
		if stats.TotalActivities != 3 {
			t.Errorf("expected 3 total activities, got %d", stats.TotalActivities)
		}
	})

	t.Run("unscored activities are excluded from the average", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		addActivity(f, "s1", "c1", "Lines", ptrFloat(0), now)
		addActivity(f, "s1", "c1", "Slopes", nil, now)

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// A recorded zero is a real score, so the average is 0.0 over one score.
		if stats.AverageScore != 0.0 {
			t.Errorf("expected average 0.0, got %v", stats.AverageScore)
		}
	})

	t.Run("latest activities are capped at ten, newest first", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		for i := 0; i < 12; i++ {
			addActivity(f, "s1", "c1", fmt.Sprintf("topic-%d", i), nil, now.Add(time.Duration(i)*time.Minute))
		}

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stats.LatestActivities) != 10 {
			t.Fatalf("expected 10 latest activities, got %d", len(stats.LatestActivities))
		}
		if stats.LatestActivities[0].Topic != "topic-11" {
			t.Errorf("expected newest activity first, got %q", stats.LatestActivities[0].Topic)
		}
	})

	t.Run("average is rounded to one decimal", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		addActivity(f, "s1", "c1", "Lines", ptrFloat(70), now)
		addActivity(f, "s1", "c1", "Slopes", ptrFloat(80), now)
		addActivity(f, "s1", "c1", "Graphs", ptrFloat(85), now)

		stats, err := newService(f).GetDashboardStats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.AverageScore != 78.3 {
			t.Errorf("expected average 78.3, got %v", stats.AverageScore)
		}
	})
}
