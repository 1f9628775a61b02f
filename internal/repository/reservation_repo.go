package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationEdit replaces the non-nil fields of a reservation. It does not
// touch slot state.
type ReservationEdit struct {
	ResourceID   *string
	SlotID       *string
	Participants []string
}

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Reservation, error)
	ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error)
	Edit(ctx context.Context, tx *gorm.DB, id string, edit ReservationEdit) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Omit("Slot").Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Participants", orderByPosition).
		Preload("Slot").
		Where("id = ?", id).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByIDForUpdate locks the reservation row, then loads its participants
// with a plain read inside the same transaction.
func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Reservation, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var reservation models.Reservation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).
		Where("reservation_id = ?", id).
		Order("position ASC").
		Find(&reservation.Participants).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListForUser returns reservations the user takes part in whose slot starts
// after the given time, ordered by slot start.
func (r *reservationRepository) ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if !validID(userID) {
		return reservations, nil
	}
	err := r.db.WithContext(ctx).
		Joins("JOIN slots ON slots.id = reservations.slot_id").
		Where("slots.start_time > ?", after).
		Where(
			r.db.Where("reservations.kind = ? AND reservations.user_id = ?", models.KindLessonBooking, userID).
				Or("reservations.kind = ? AND EXISTS (SELECT 1 FROM participants p WHERE p.reservation_id = reservations.id AND p.user_id = ?)",
					models.KindFieldBooking, userID),
		).
		Order("slots.start_time ASC, reservations.id ASC").
		Preload("Participants", orderByPosition).
		Preload("Slot").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) Edit(ctx context.Context, tx *gorm.DB, id string, edit ReservationEdit) error {
	updates := map[string]any{"updated_at": time.Now()}
	if edit.ResourceID != nil {
		updates["resource_id"] = *edit.ResourceID
	}
	if edit.SlotID != nil {
		updates["slot_id"] = *edit.SlotID
	}

	res := tx.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if edit.Participants == nil {
		return nil
	}
	if err := tx.WithContext(ctx).Where("reservation_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
		return err
	}
	if len(edit.Participants) == 0 {
		return nil
	}
	rows := models.NewParticipants(id, edit.Participants)
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	// participant 0 is the creator
	return tx.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("user_id", edit.Participants[0]).Error
}

func (r *reservationRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if !validID(id) {
		return gorm.ErrRecordNotFound
	}
	res := tx.WithContext(ctx).Where("id = ?", id).Delete(&models.Reservation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
