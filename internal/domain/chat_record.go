package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatScope restricts a chat query to one lesson or a whole course.
type ChatScope string

const (
	ScopeLesson ChatScope = "lesson"
	ScopeCourse ChatScope = "course"
)

func (s ChatScope) Valid() bool {
	switch s {
	case ScopeLesson, ScopeCourse:
		return true
	}
	return false
}

// ChatRecord is an append-only audit of exchanges with the external AI
// service. Nothing is written for a failed exchange.
type ChatRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Scope     ChatScope      `gorm:"not null;column:scope" json:"scope"`
	LessonID  *uuid.UUID     `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	CourseID  *uuid.UUID     `gorm:"type:uuid;index" json:"course_id,omitempty"`
	Query     string         `gorm:"not null;column:query" json:"query"`
	Response  string         `gorm:"not null;column:response" json:"response"`
	Sources   datatypes.JSON `gorm:"column:sources" json:"sources,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (ChatRecord) TableName() string { return "chat_record" }

func (cr *ChatRecord) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == uuid.Nil {
		cr.ID = uuid.New()
	}
	return nil
}
