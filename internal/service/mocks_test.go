package service

import (
	"context"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	"gorm.io/gorm"
)

// --- Mock Transactor ---

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.calls++
	return fn(nil)
}

// --- Mock ResourceRepository ---

type mockResourceRepo struct {
	createFn     func(ctx context.Context, resource *models.Resource) error
	findByIDFn   func(ctx context.Context, id string) (*models.Resource, error)
	findByKindFn func(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error)
	renameFn     func(ctx context.Context, id, name string) error
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	return m.createFn(ctx, resource)
}
func (m *mockResourceRepo) FindByID(ctx context.Context, id string) (*models.Resource, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockResourceRepo) FindByKind(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error) {
	return m.findByKindFn(ctx, kind)
}
func (m *mockResourceRepo) Rename(ctx context.Context, id, name string) error {
	return m.renameFn(ctx, id, name)
}
func (m *mockResourceRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- Mock SlotRepository ---

type mockSlotRepo struct {
	createFn           func(ctx context.Context, slot *models.Slot) error
	findOpenFn         func(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error)
	findForUpdateFn    func(ctx context.Context, id string) (*models.Slot, error)
	setOpenFn          func(ctx context.Context, resourceID, slotID string, open bool) (bool, error)
	deleteOpenBeforeFn func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	return m.createFn(ctx, slot)
}
func (m *mockSlotRepo) FindOpen(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error) {
	return m.findOpenFn(ctx, resourceID, after)
}
func (m *mockSlotRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Slot, error) {
	return m.findForUpdateFn(ctx, id)
}
func (m *mockSlotRepo) SetOpen(ctx context.Context, tx *gorm.DB, resourceID, slotID string, open bool) (bool, error) {
	return m.setOpenFn(ctx, resourceID, slotID, open)
}
func (m *mockSlotRepo) DeleteOpenBefore(ctx context.Context, before time.Time) (int64, error) {
	return m.deleteOpenBeforeFn(ctx, before)
}

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn        func(ctx context.Context, r *models.Reservation) error
	findByIDFn      func(ctx context.Context, id string) (*models.Reservation, error)
	findForUpdateFn func(ctx context.Context, id string) (*models.Reservation, error)
	listForUserFn   func(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error)
	editFn          func(ctx context.Context, id string, edit repository.ReservationEdit) error
	deleteFn        func(ctx context.Context, id string) error
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = "res-1"
	return nil
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReservationRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Reservation, error) {
	return m.findForUpdateFn(ctx, id)
}
func (m *mockReservationRepo) ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	return m.listForUserFn(ctx, userID, after)
}
func (m *mockReservationRepo) Edit(ctx context.Context, tx *gorm.DB, id string, edit repository.ReservationEdit) error {
	if m.editFn != nil {
		return m.editFn(ctx, id, edit)
	}
	return nil
}
func (m *mockReservationRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	findByIDFn  func(ctx context.Context, id string) (*models.User, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]models.User, error)
	searchFn    func(ctx context.Context, prefix, excludeID string, limit int) ([]models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if m.findByIDsFn != nil {
		return m.findByIDsFn(ctx, ids)
	}
	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = models.User{ID: id}
	}
	return users, nil
}
func (m *mockUserRepo) Search(ctx context.Context, prefix, excludeID string, limit int) ([]models.User, error) {
	return m.searchFn(ctx, prefix, excludeID, limit)
}
func (m *mockUserRepo) FindSocial(ctx context.Context, id string) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) Upsert(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id string) error          { return nil }

// --- Mock Publisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	err  error
	sent []published
}

func (m *mockPublisher) PublishJSON(ctx context.Context, routingKey string, payload any) error {
	m.sent = append(m.sent, published{key: routingKey, payload: payload})
	return m.err
}
