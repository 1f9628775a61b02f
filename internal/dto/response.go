package dto

import (
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
)

type ResourceResponse struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Kind models.ResourceKind `json:"kind"`
}

type SlotResponse struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resourceId"`
	StartTime  time.Time `json:"startTime"`
	Open       bool      `json:"open"`
}

type ReservationResponse struct {
	ID           string                 `json:"id"`
	ResourceID   string                 `json:"resourceId"`
	SlotID       string                 `json:"slotId"`
	Kind         models.ReservationKind `json:"kind"`
	UserID       string                 `json:"userId"`
	Participants []string               `json:"participants,omitempty"`
	StartTime    *time.Time             `json:"startTime,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}

type UserResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToResourceResponse(r *models.Resource) ResourceResponse {
	return ResourceResponse{ID: r.ID, Name: r.Name, Kind: r.Kind}
}

func ToResourceResponses(rs []models.Resource) []ResourceResponse {
	resp := make([]ResourceResponse, len(rs))
	for i := range rs {
		resp[i] = ToResourceResponse(&rs[i])
	}
	return resp
}

func ToSlotResponse(s *models.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		ResourceID: s.ResourceID,
		StartTime:  s.StartTime,
		Open:       s.Open,
	}
}

func ToSlotResponses(ss []models.Slot) []SlotResponse {
	resp := make([]SlotResponse, len(ss))
	for i := range ss {
		resp[i] = ToSlotResponse(&ss[i])
	}
	return resp
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		SlotID:     r.SlotID,
		Kind:       r.Kind,
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt,
	}
	if r.Kind == models.KindFieldBooking {
		resp.Participants = r.ParticipantIDs()
	}
	if r.Slot != nil {
		start := r.Slot.StartTime
		resp.StartTime = &start
	}
	return resp
}

func ToReservationResponses(rs []models.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(rs))
	for i := range rs {
		resp[i] = ToReservationResponse(&rs[i])
	}
	return resp
}

func ToUserResponses(us []models.User) []UserResponse {
	resp := make([]UserResponse, len(us))
	for i := range us {
		resp[i] = UserResponse{
			ID:          us[i].ID,
			FirstName:   us[i].FirstName,
			LastName:    us[i].LastName,
			DisplayName: us[i].DisplayName(),
		}
	}
	return resp
}
