package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityLesson     ActivityType = "lesson"
	ActivityExercise   ActivityType = "exercise"
	ActivityQuiz       ActivityType = "quiz"
	ActivityTest       ActivityType = "test"
	ActivityAssignment ActivityType = "assignment"
)

// Activity records one completed unit of work by a student within a course.
// Score is optional: lessons are typically unscored, quizzes carry a 0-100
// score. A recorded score of zero is a real score, not an absent one.
type Activity struct {
	ID        string       `json:"id" gorm:"primaryKey;size:255"`
	StudentID string       `json:"student_id" gorm:"not null;size:255;index" validate:"required"`
	CourseID  string       `json:"course_id" gorm:"not null;size:255;index" validate:"required"`
	Topic     string       `json:"topic" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Type      ActivityType `json:"activity_type" gorm:"not null;size:20" validate:"required,oneof=lesson exercise quiz test assignment"`

	Score       *float64  `json:"score" validate:"omitempty,min=0,max=100"`
	Notes       *string   `json:"notes,omitempty" gorm:"type:text" validate:"omitempty,max=1000"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Activity) TableName() string {
	return "activities"
}
