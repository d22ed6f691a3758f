package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID    string `json:"id" gorm:"primaryKey;size:255"`
	Name  string `json:"name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Grade string `json:"grade" gorm:"size:50" validate:"omitempty,max=50"`

	// Guardian contact, stored in normalized E.164 form.
	ParentPhone *string `json:"parent_phone" gorm:"size:20" validate:"omitempty,phone_number"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}
