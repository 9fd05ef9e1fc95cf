package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson.CourseID is immutable once created: enrollment and progress
// authorization resolve through it.
type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_course_order,unique" json:"course_id"`
	Course      *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Order       int       `gorm:"not null;column:lesson_order;index:idx_course_order,unique" json:"order"`
	ContentText string    `gorm:"column:content_text" json:"content_text,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Files []File `gorm:"foreignKey:LessonID" json:"files,omitempty"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
