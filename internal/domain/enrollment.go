package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment existence is the sole authorization fact for learner-level
// access to a course's lessons, files and chat. The (user_id, course_id)
// pair is unique at the storage layer; duplicate enrollment attempts
// surface as conflicts, never silent no-ops.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
