package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Slot struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID string    `gorm:"type:uuid;not null;index" json:"resource_id"`
	StartTime  time.Time `gorm:"type:timestamptz;not null" json:"start_time"`
	Open       bool      `gorm:"not null;default:true" json:"open"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Slot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
