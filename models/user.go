package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleAgent = "AGENT"
)

// User covers both back-office admins and listing agents. Phone is a
// pointer so projections that do not select it drop the key entirely.
type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:VARCHAR(255);not null"`
	Email        string    `json:"email" gorm:"type:VARCHAR(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:VARCHAR(64);not null"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:VARCHAR(30)"`
	Role         string    `json:"role" gorm:"type:VARCHAR(10);not null;default:'AGENT'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
