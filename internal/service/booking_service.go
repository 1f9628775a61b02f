package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/events"
	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/Eursukkul/paddle-center/booking-service/internal/service")

// Caller is the authenticated user on whose behalf an operation runs.
type Caller struct {
	UserID string
	Admin  bool
}

// ReserveRequest describes a booking. Field bookings carry four participants,
// lessons a single UserID.
type ReserveRequest struct {
	ResourceID   string
	SlotID       string
	Kind         models.ReservationKind
	Participants []string
	UserID       string
}

// EditRequest changes the slot, the participants, or both in one step.
type EditRequest struct {
	NewSlotID    string
	Participants []string
}

// Publisher delivers a JSON message to the notification exchange.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

// BookingService is the only writer of a slot's open flag. Each operation
// claims, releases or moves slots and updates the reservation ledger in one
// transaction.
type BookingService interface {
	Reserve(ctx context.Context, caller Caller, req ReserveRequest) (*models.Reservation, error)
	Cancel(ctx context.Context, caller Caller, reservationID string) (*models.Reservation, error)
	Reschedule(ctx context.Context, caller Caller, reservationID, newSlotID string) (*models.Reservation, error)
	UpdateParticipants(ctx context.Context, caller Caller, reservationID string, participants []string) (*models.Reservation, error)
	Edit(ctx context.Context, caller Caller, reservationID string, req EditRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error)
}

type bookingService struct {
	tx              repository.Transactor
	resourceRepo    repository.ResourceRepository
	slotRepo        repository.SlotRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	publisher       Publisher
	now             func() time.Time
}

func NewBookingService(
	tx repository.Transactor,
	resourceRepo repository.ResourceRepository,
	slotRepo repository.SlotRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	publisher Publisher,
) BookingService {
	return &bookingService{
		tx:              tx,
		resourceRepo:    resourceRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *bookingService) Reserve(ctx context.Context, caller Caller, req ReserveRequest) (result *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Reserve", trace.WithAttributes(
		attribute.String("resource.id", req.ResourceID),
		attribute.String("slot.id", req.SlotID),
	))
	defer func() { endSpan(span, err) }()

	wantKind, ok := req.Kind.ResourceKind()
	if !ok {
		return nil, fmt.Errorf("%w: unknown reservation kind %q", ErrInvalidInput, req.Kind)
	}

	userIDs := req.Participants
	if req.Kind == models.KindLessonBooking {
		userIDs = []string{req.UserID}
	}
	if err := s.resolveParticipants(ctx, req.Kind, userIDs); err != nil {
		return nil, err
	}
	if !caller.Admin && !slices.Contains(userIDs, caller.UserID) {
		return nil, fmt.Errorf("%w: caller must take part in the booking", ErrUnauthorized)
	}

	resource, err := s.resourceRepo.FindByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resource %s: %w", req.ResourceID, ErrSlotUnavailable)
		}
		return nil, storeError(err)
	}
	if resource.Kind != wantKind {
		return nil, fmt.Errorf("%w: %s booking on %s", ErrKindMismatch, req.Kind, resource.Kind)
	}

	reservation := &models.Reservation{
		ResourceID:   resource.ID,
		SlotID:       req.SlotID,
		Kind:         req.Kind,
		UserID:       userIDs[0],
		Participants: models.NewParticipants("", userIDs),
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		slot, err := s.claimSlot(ctx, tx, resource.ID, req.SlotID)
		if err != nil {
			return err
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("slot %s: %w", req.SlotID, ErrSlotUnavailable)
			}
			return err
		}
		reservation.Slot = slot
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	log.Printf("[BookingService] reserved slot %s on %s as %s", reservation.SlotID, reservation.ResourceID, reservation.ID)
	s.notify(ctx, events.RKReservationCreated, reservation, resource.Name, nil)
	return reservation, nil
}

func (s *bookingService) Cancel(ctx context.Context, caller Caller, reservationID string) (result *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Cancel", trace.WithAttributes(
		attribute.String("reservation.id", reservationID),
	))
	defer func() { endSpan(span, err) }()

	var reservation *models.Reservation
	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		r, err := s.lockReservation(ctx, tx, caller, reservationID)
		if err != nil {
			return err
		}

		slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, r.SlotID)
		if err != nil {
			return fmt.Errorf("load slot %s: %w", r.SlotID, err)
		}
		if err := s.reservationRepo.Delete(ctx, tx, r.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %s: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if err := s.releaseSlot(ctx, tx, r.ResourceID, r.SlotID); err != nil {
			return err
		}

		slot.Open = true
		r.Slot = slot
		reservation = r
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	log.Printf("[BookingService] cancelled %s, slot %s reopened", reservation.ID, reservation.SlotID)
	s.notify(ctx, events.RKReservationCancelled, reservation, "", nil)
	return reservation, nil
}

func (s *bookingService) Reschedule(ctx context.Context, caller Caller, reservationID, newSlotID string) (*models.Reservation, error) {
	return s.Edit(ctx, caller, reservationID, EditRequest{NewSlotID: newSlotID})
}

func (s *bookingService) UpdateParticipants(ctx context.Context, caller Caller, reservationID string, participants []string) (*models.Reservation, error) {
	return s.Edit(ctx, caller, reservationID, EditRequest{Participants: participants})
}

// Edit moves the reservation to NewSlotID and/or replaces its participants.
// Nothing is written unless every check passes.
func (s *bookingService) Edit(ctx context.Context, caller Caller, reservationID string, req EditRequest) (result *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Edit", trace.WithAttributes(
		attribute.String("reservation.id", reservationID),
		attribute.String("slot.new_id", req.NewSlotID),
	))
	defer func() { endSpan(span, err) }()

	if req.NewSlotID == "" && req.Participants == nil {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}

	var (
		reservation *models.Reservation
		previous    *time.Time
	)
	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		r, err := s.lockReservation(ctx, tx, caller, reservationID)
		if err != nil {
			return err
		}
		if req.Participants != nil {
			if r.Kind != models.KindFieldBooking {
				return fmt.Errorf("%w: only field bookings have participants", ErrKindMismatch)
			}
			if err := s.resolveParticipants(ctx, r.Kind, req.Participants); err != nil {
				return err
			}
			if !caller.Admin && !slices.Contains(req.Participants, caller.UserID) {
				return fmt.Errorf("%w: caller must take part in the booking", ErrUnauthorized)
			}
		}

		edit := repository.ReservationEdit{Participants: req.Participants}
		if req.NewSlotID != "" {
			oldSlot, newSlot, err := s.moveSlot(ctx, tx, r, req.NewSlotID)
			if err != nil {
				return err
			}
			previous = &oldSlot.StartTime
			edit.ResourceID = &newSlot.ResourceID
			edit.SlotID = &newSlot.ID
			r.ResourceID = newSlot.ResourceID
			r.SlotID = newSlot.ID
			r.Slot = newSlot
		}

		if err := s.reservationRepo.Edit(ctx, tx, r.ID, edit); err != nil {
			return err
		}
		if req.Participants != nil {
			r.Participants = models.NewParticipants(r.ID, req.Participants)
			r.UserID = req.Participants[0]
		}
		if r.Slot == nil {
			slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, r.SlotID)
			if err != nil {
				return err
			}
			r.Slot = slot
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	key := events.RKReservationUpdated
	if previous != nil {
		key = events.RKReservationRescheduled
		log.Printf("[BookingService] moved %s to slot %s", reservation.ID, reservation.SlotID)
	}
	s.notify(ctx, key, reservation, "", previous)
	return reservation, nil
}

func (s *bookingService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
		}
		return nil, storeError(err)
	}
	return reservation, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.ListForUser(ctx, userID, after)
	if err != nil {
		return nil, storeError(err)
	}
	return reservations, nil
}

// claimSlot locks the slot and flips it from open to taken.
func (s *bookingService) claimSlot(ctx context.Context, tx *gorm.DB, resourceID, slotID string) (*models.Slot, error) {
	slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("slot %s: %w", slotID, ErrSlotUnavailable)
		}
		return nil, err
	}
	if slot.ResourceID != resourceID || !slot.Open || !slot.StartTime.After(s.now()) {
		return nil, fmt.Errorf("slot %s: %w", slotID, ErrSlotUnavailable)
	}

	changed, err := s.slotRepo.SetOpen(ctx, tx, resourceID, slotID, false)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("slot %s: %w", slotID, ErrSlotUnavailable)
	}
	slot.Open = false
	return slot, nil
}

func (s *bookingService) releaseSlot(ctx context.Context, tx *gorm.DB, resourceID, slotID string) error {
	changed, err := s.slotRepo.SetOpen(ctx, tx, resourceID, slotID, true)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("slot %s was open while reserved", slotID)
	}
	return nil
}

// moveSlot locks both slots in id order, then releases the old one and claims
// the new one.
func (s *bookingService) moveSlot(ctx context.Context, tx *gorm.DB, r *models.Reservation, newSlotID string) (*models.Slot, *models.Slot, error) {
	if newSlotID == r.SlotID {
		return nil, nil, fmt.Errorf("slot %s: %w", newSlotID, ErrSlotUnavailable)
	}

	locked := make(map[string]*models.Slot, 2)
	order := []string{r.SlotID, newSlotID}
	slices.Sort(order)
	for _, id := range order {
		slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) && id == newSlotID {
				return nil, nil, fmt.Errorf("slot %s: %w", id, ErrSlotUnavailable)
			}
			return nil, nil, err
		}
		locked[id] = slot
	}

	oldSlot, newSlot := locked[r.SlotID], locked[newSlotID]
	if !newSlot.Open || !newSlot.StartTime.After(s.now()) {
		return nil, nil, fmt.Errorf("slot %s: %w", newSlotID, ErrSlotUnavailable)
	}
	if newSlot.ResourceID != r.ResourceID {
		resource, err := s.resourceRepo.FindByID(ctx, newSlot.ResourceID)
		if err != nil {
			return nil, nil, err
		}
		wantKind, _ := r.Kind.ResourceKind()
		if resource.Kind != wantKind {
			return nil, nil, fmt.Errorf("%w: %s booking on %s", ErrKindMismatch, r.Kind, resource.Kind)
		}
	}

	if err := s.releaseSlot(ctx, tx, oldSlot.ResourceID, oldSlot.ID); err != nil {
		return nil, nil, err
	}
	changed, err := s.slotRepo.SetOpen(ctx, tx, newSlot.ResourceID, newSlot.ID, false)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return nil, nil, fmt.Errorf("slot %s: %w", newSlotID, ErrSlotUnavailable)
	}
	oldSlot.Open = true
	newSlot.Open = false
	return oldSlot, newSlot, nil
}

func (s *bookingService) lockReservation(ctx context.Context, tx *gorm.DB, caller Caller, id string) (*models.Reservation, error) {
	r, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if !caller.Admin && r.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: only the creator or an admin may change reservation %s", ErrUnauthorized, id)
	}
	return r, nil
}

// resolveParticipants checks count, blanks, duplicates and that every id is a known user.
func (s *bookingService) resolveParticipants(ctx context.Context, kind models.ReservationKind, userIDs []string) error {
	want := 1
	if kind == models.KindFieldBooking {
		want = models.FieldParticipants
	}
	if len(userIDs) != want {
		return fmt.Errorf("%w: want %d, got %d", ErrInvalidParticipants, want, len(userIDs))
	}

	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: blank user id", ErrInvalidParticipants)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidParticipants, id)
		}
		seen[id] = struct{}{}
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return storeError(err)
	}
	if len(users) != len(userIDs) {
		return fmt.Errorf("%w: unknown user", ErrInvalidParticipants)
	}
	return nil
}

// notify is fire-and-forget: publish failures are logged and dropped.
func (s *bookingService) notify(ctx context.Context, key string, r *models.Reservation, resourceName string, previous *time.Time) {
	if s.publisher == nil {
		return
	}
	if resourceName == "" {
		if resource, err := s.resourceRepo.FindByID(ctx, r.ResourceID); err == nil {
			resourceName = resource.Name
		}
	}

	ev := events.ReservationEvent{
		ReservationID:     r.ID,
		Kind:              string(r.Kind),
		ResourceID:        r.ResourceID,
		ResourceName:      resourceName,
		SlotID:            r.SlotID,
		PreviousStartTime: previous,
		UserIDs:           r.ParticipantIDs(),
	}
	if r.Slot != nil {
		ev.StartTime = r.Slot.StartTime
	}

	if err := s.publisher.PublishJSON(ctx, key, ev); err != nil {
		log.Printf("[BookingService] publish %s for %s failed: %v", key, r.ID, err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
