package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is fixed at creation time. There is no self-promotion path:
// registration always produces a learner, admins come from seeding.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleLearner Role = "LEARNER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLearner:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	FullName     string    `gorm:"not null;column:full_name" json:"full_name"`
	Role         Role      `gorm:"not null;column:role" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
