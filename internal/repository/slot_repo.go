package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	FindOpen(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Slot, error)
	SetOpen(ctx context.Context, tx *gorm.DB, resourceID, slotID string, open bool) (bool, error)
	DeleteOpenBefore(ctx context.Context, before time.Time) (int64, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *models.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// FindOpen reads without locking; callers that act on the result must re-check under lock.
func (r *slotRepository) FindOpen(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	if !validID(resourceID) {
		return slots, nil
	}
	if err := r.db.WithContext(ctx).
		Where("resource_id = ? AND open = ? AND start_time > ?", resourceID, true, after).
		Order("start_time ASC, id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// FindByIDForUpdate acquires a row-level lock on the slot within the given transaction.
func (r *slotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Slot, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var slot models.Slot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// SetOpen flips the flag only if it currently holds the opposite value and
// reports whether a row changed. Booking flows call it inside their transaction.
func (r *slotRepository) SetOpen(ctx context.Context, tx *gorm.DB, resourceID, slotID string, open bool) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ? AND resource_id = ? AND open = ?", slotID, resourceID, !open).
		Updates(map[string]any{"open": open, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteOpenBefore prunes stale open slots. Taken slots are kept.
func (r *slotRepository) DeleteOpenBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("open = ? AND start_time < ?", true, before).
		Delete(&models.Slot{})
	return res.RowsAffected, res.Error
}
