package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
)

// AvailabilityService is the read and admin side of a resource's slots.
// Flipping a slot's open flag belongs to BookingService.
type AvailabilityService interface {
	ListOpenSlots(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error)
	AddSlot(ctx context.Context, resourceID string, startTime time.Time) (*models.Slot, error)
	PurgeStale(ctx context.Context, retention time.Duration) (int64, error)
}

type availabilityService struct {
	resourceRepo repository.ResourceRepository
	slotRepo     repository.SlotRepository
	now          func() time.Time
}

func NewAvailabilityService(resourceRepo repository.ResourceRepository, slotRepo repository.SlotRepository) AvailabilityService {
	return &availabilityService{
		resourceRepo: resourceRepo,
		slotRepo:     slotRepo,
		now:          time.Now,
	}
}

func (s *availabilityService) ListOpenSlots(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error) {
	if _, err := s.resourceRepo.FindByID(ctx, resourceID); err != nil {
		return nil, resourceError(resourceID, err)
	}
	slots, err := s.slotRepo.FindOpen(ctx, resourceID, after)
	if err != nil {
		return nil, storeError(err)
	}
	return slots, nil
}

func (s *availabilityService) AddSlot(ctx context.Context, resourceID string, startTime time.Time) (*models.Slot, error) {
	if !startTime.After(s.now()) {
		return nil, ErrInvalidSlot
	}
	if _, err := s.resourceRepo.FindByID(ctx, resourceID); err != nil {
		return nil, resourceError(resourceID, err)
	}

	slot := &models.Slot{
		ResourceID: resourceID,
		StartTime:  startTime.UTC(),
		Open:       true,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, storeError(fmt.Errorf("create slot: %w", err))
	}
	return slot, nil
}

// PurgeStale deletes open slots that started more than retention ago.
// Booked slots stay while their reservation exists.
func (s *availabilityService) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.slotRepo.DeleteOpenBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, storeError(fmt.Errorf("purge slots: %w", err))
	}
	return n, nil
}
