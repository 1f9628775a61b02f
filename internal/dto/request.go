package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

type CreateResourceRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type RenameResourceRequest struct {
	Name string `json:"name"`
}

type CreateSlotRequest struct {
	StartTime SlotTime `json:"startTime"`
}

// SlotTimeFormats lists what SlotTime accepts, for error messages.
const SlotTimeFormats = "RFC 3339 (2006-01-02T15:04:05Z07:00) or UTC local time (2006-01-02T15:04[:05] or 2006-01-02 15:04[:05])"

// Layouts without an offset are read as UTC.
var slotLocalLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// SlotTime is a start time that also accepts ISO local date-times.
type SlotTime struct {
	time.Time
}

func (t *SlotTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("startTime must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range slotLocalLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("startTime %q: want %s", s, SlotTimeFormats)
}

// CreateReservationRequest carries Participants for a field booking and
// UserID for a lesson.
type CreateReservationRequest struct {
	ResourceID   string   `json:"resourceId"`
	SlotID       string   `json:"slotId"`
	Kind         string   `json:"kind"`
	Participants []string `json:"participants,omitempty"`
	UserID       string   `json:"userId,omitempty"`
}

// EditReservationRequest reschedules, replaces participants, or both.
type EditReservationRequest struct {
	NewSlotID    string   `json:"newSlotId,omitempty"`
	Participants []string `json:"participants,omitempty"`
}
