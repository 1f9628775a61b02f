package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationKind string

const (
	KindFieldBooking  ReservationKind = "field"
	KindLessonBooking ReservationKind = "lesson"
)

// FieldParticipants is the fixed size of a field booking's participant list.
const FieldParticipants = 4

// ResourceKind returns the kind of resource this booking kind may target.
func (k ReservationKind) ResourceKind() (ResourceKind, bool) {
	switch k {
	case KindFieldBooking:
		return KindField, true
	case KindLessonBooking:
		return KindCoach, true
	}
	return "", false
}

// Reservation references one slot. UserID is the creator: participant 0 of a
// field booking, or the single user of a lesson.
type Reservation struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID string          `gorm:"type:uuid;not null;index" json:"resource_id"`
	SlotID     string          `gorm:"type:uuid;not null;uniqueIndex" json:"slot_id"`
	Kind       ReservationKind `gorm:"type:varchar(10);not null" json:"kind"`
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Participants []Participant `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Slot         *Slot         `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ParticipantIDs returns user ids ordered by position.
func (r *Reservation) ParticipantIDs() []string {
	ids := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		ids[i] = p.UserID
	}
	return ids
}

// Involves reports whether userID is the lesson user or one of the field participants.
func (r *Reservation) Involves(userID string) bool {
	if r.Kind == KindLessonBooking {
		return r.UserID == userID
	}
	for _, p := range r.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type Participant struct {
	ReservationID string `gorm:"type:uuid;primaryKey" json:"-"`
	Position      int    `gorm:"primaryKey;autoIncrement:false" json:"position"`
	UserID        string `gorm:"type:uuid;not null;index" json:"user_id"`
}

// NewParticipants builds positioned rows for a reservation.
func NewParticipants(reservationID string, userIDs []string) []Participant {
	out := make([]Participant, len(userIDs))
	for i, id := range userIDs {
		out[i] = Participant{ReservationID: reservationID, Position: i, UserID: id}
	}
	return out
}
