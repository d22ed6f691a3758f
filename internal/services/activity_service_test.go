package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adetops/edu-progress-tracker/internal/events"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

func newActivityService(f *fakeRepository, publisher events.EventPublisher) ActivityService {
	return NewActivityService(f, nil, testLogger(), validator.New(), publisher)
}

func TestActivityRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("records with explicit completion time", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I", "Lines")
		publisher := events.NewMockEventPublisher(testLogger())
		svc := newActivityService(f, publisher)

		completedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		activity, err := svc.Record(ctx, &RecordActivityRequest{
			StudentID:   "s1",
			CourseID:    "c1",
			Topic:       "Lines",
			Type:        models.ActivityQuiz,
			Score:       ptrFloat(88),
			CompletedAt: &completedAt,
		})
		if err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		if activity.ID == "" {
			t.Errorf("expected generated id")
		}
		if !activity.CompletedAt.Equal(completedAt) {
			t.Errorf("expected completion %v, got %v", completedAt, activity.CompletedAt)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventActivityRecorded {
			t.Errorf("expected one %s event, got %+v", events.EventActivityRecorded, published)
		}
	})

	t.Run("completion time defaults to now", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		svc := newActivityService(f, nil)

		before := time.Now().UTC()
		activity, err := svc.Record(ctx, &RecordActivityRequest{
			StudentID: "s1",
			CourseID:  "c1",
			Topic:     "Lines",
			Type:      models.ActivityLesson,
		})
		if err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		if activity.CompletedAt.Before(before) || activity.CompletedAt.After(time.Now().UTC()) {
			t.Errorf("expected completion near now, got %v", activity.CompletedAt)
		}
	})

	t.Run("unknown student is rejected", func(t *testing.T) {
		f := newFakeRepository()
		addCourse(f, "c1", "Algebra I")
		svc := newActivityService(f, nil)

		_, err := svc.Record(ctx, &RecordActivityRequest{
			StudentID: "ghost",
			CourseID:  "c1",
			Topic:     "Lines",
			Type:      models.ActivityLesson,
		})
		if !errors.Is(err, ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("unknown course is rejected", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		svc := newActivityService(f, nil)

		_, err := svc.Record(ctx, &RecordActivityRequest{
			StudentID: "s1",
			CourseID:  "ghost",
			Topic:     "Lines",
			Type:      models.ActivityLesson,
		})
		if !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}
	})

	t.Run("score outside range fails validation", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		svc := newActivityService(f, nil)

		_, err := svc.Record(ctx, &RecordActivityRequest{
			StudentID: "s1",
			CourseID:  "c1",
			Topic:     "Lines",
			Type:      models.ActivityQuiz,
			Score:     ptrFloat(101),
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestActivityDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted activities leave progress immediately", func(t *testing.T) {
		f := newFakeRepository()
		addStudent(f, "s1", "Ada")
		addCourse(f, "c1", "Algebra I")
		activity := addActivity(f, "s1", "c1", "Lines", ptrFloat(80), time.Now().UTC())

		svc := newActivityService(f, nil)
		if err := svc.Delete(ctx, activity.ID); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		progress, err := newProgressService(f).ProgressByCourse(ctx, "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(progress) != 0 {
			t.Errorf("expected no progress rows after delete, got %d", len(progress))
		}
	})

	t.Run("unknown activity", func(t *testing.T) {
		f := newFakeRepository()
		svc := newActivityService(f, nil)

		if err := svc.Delete(ctx, "ghost"); !errors.Is(err, ErrActivityNotFound) {
			t.Fatalf("expected ErrActivityNotFound, got %v", err)
		}
	})
}
