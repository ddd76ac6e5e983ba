package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InsuranceProduct is a catalog entry on the sigorta pages.
// IsActive carries no column default: gorm skips zero-valued fields that
// have one on INSERT, which would turn an explicit false into true.
type InsuranceProduct struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:VARCHAR(255);not null"`
	Slug        string    `json:"slug" gorm:"type:VARCHAR(255);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:TEXT"`
	IsActive    bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *InsuranceProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// InsuranceQuote is a lead submitted from the quote form. Details is a
// free-form jsonb payload forwarded from the form as-is.
type InsuranceQuote struct {
	ID        string            `json:"id" gorm:"type:uuid;primaryKey"`
	FullName  string            `json:"fullName" gorm:"type:VARCHAR(255);not null"`
	Email     string            `json:"email" gorm:"type:VARCHAR(255);not null"`
	Phone     string            `json:"phone" gorm:"type:VARCHAR(30);not null"`
	City      *string           `json:"city,omitempty" gorm:"type:VARCHAR(100)"`
	Details   datatypes.JSON    `json:"details,omitempty" gorm:"type:jsonb"`
	ProductID string            `json:"productId" gorm:"type:uuid;index;not null"`
	Product   *InsuranceProduct `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (q *InsuranceQuote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
