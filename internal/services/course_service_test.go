package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Adetops/edu-progress-tracker/internal/events"
	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

func newCourseService(f *fakeRepository, publisher events.EventPublisher) CourseService {
	return NewCourseService(f, nil, testLogger(), validator.New(), publisher)
}

func TestCourseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with topics and creator", func(t *testing.T) {
		f := newFakeRepository()
		svc := newCourseService(f, nil)

		course, err := svc.Create(ctx, &CreateCourseRequest{
			Title:  "Algebra I",
			Topics: []string{"Linear Equations", "Quadratic Equations"},
		}, "user-1")
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if course.ID == "" {
			t.Errorf("expected generated id")
		}
		if course.CreatedBy != "user-1" {
			t.Errorf("expected creator user-1, got %s", course.CreatedBy)
		}
		if len(course.Topics) != 2 {
			t.Errorf("expected 2 topics, got %d", len(course.Topics))
		}
	})

	t.Run("duplicate topics are rejected", func(t *testing.T) {
		f := newFakeRepository()
		svc := newCourseService(f, nil)

		_, err := svc.Create(ctx, &CreateCourseRequest{
			Title:  "Algebra I",
			Topics: []string{"Lines", "Lines"},
		}, "user-1")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("topics are optional", func(t *testing.T) {
		f := newFakeRepository()
		svc := newCourseService(f, nil)

		course, err := svc.Create(ctx, &CreateCourseRequest{Title: "Seminar"}, "user-1")
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if len(course.Topics) != 0 {
			t.Errorf("expected no topics, got %v", course.Topics)
		}
	})
}

func TestCourseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replacing topics changes completion input", func(t *testing.T) {
		f := newFakeRepository()
		addCourse(f, "c1", "Algebra I", "Lines")
		svc := newCourseService(f, nil)

		course, err := svc.Update(ctx, "c1", &UpdateCourseRequest{
			Topics: []string{"Lines", "Slopes", "Graphs"},
		})
		if err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if len(course.Topics) != 3 {
			t.Errorf("expected 3 topics, got %d", len(course.Topics))
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		f := newFakeRepository()
		svc := newCourseService(f, nil)

		title := "Renamed"
		_, err := svc.Update(ctx, "ghost", &UpdateCourseRequest{Title: &title})
		if !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}
	})
}
