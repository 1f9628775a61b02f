package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceKind string

const (
	KindField ResourceKind = "field"
	KindCoach ResourceKind = "coach"
)

func (k ResourceKind) Valid() bool {
	return k == KindField || k == KindCoach
}

// Resource is a bookable field or coach. It owns its slots.
type Resource struct {
	ID        string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Kind      ResourceKind `gorm:"type:varchar(10);not null;index" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Slots []Slot `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Resource) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
