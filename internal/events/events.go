package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys on the topic exchange.
const (
	RKReservationCreated     = "reservation.created"
	RKReservationCancelled   = "reservation.cancelled"
	RKReservationRescheduled = "reservation.rescheduled"
	RKReservationUpdated     = "reservation.updated"

	RKUserUpserted = "user.upserted"
	RKUserDeleted  = "user.deleted"
)

// ReservationEvent carries enough to build a message for every participant.
type ReservationEvent struct {
	ReservationID     string     `json:"reservation_id"`
	Kind              string     `json:"kind"`
	ResourceID        string     `json:"resource_id"`
	ResourceName      string     `json:"resource_name"`
	SlotID            string     `json:"slot_id"`
	StartTime         time.Time  `json:"start_time"`
	PreviousStartTime *time.Time `json:"previous_start_time,omitempty"`
	UserIDs           []string   `json:"user_ids"`
}

// UserUpserted mirrors a profile record owned by the identity service.
type UserUpserted struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Admin          bool   `json:"admin"`
	Banned         bool   `json:"banned"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
	// Friends and Reports replace the stored sets on every upsert.
	Friends []string `json:"friends"`
	Reports []Report `json:"reports"`
}

type Report struct {
	ReportedByID string    `json:"reported_by_id"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
}

type UserDeleted struct {
	ID string `json:"id"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
