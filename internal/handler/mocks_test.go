package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/middleware"
	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock CatalogService ---

type mockCatalog struct {
	listFn   func(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error)
	createFn func(ctx context.Context, kind models.ResourceKind, name string) (*models.Resource, error)
	getFn    func(ctx context.Context, id string) (*models.Resource, error)
	renameFn func(ctx context.Context, id, name string) (*models.Resource, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCatalog) List(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error) {
	return m.listFn(ctx, kind)
}
func (m *mockCatalog) Create(ctx context.Context, kind models.ResourceKind, name string) (*models.Resource, error) {
	return m.createFn(ctx, kind, name)
}
func (m *mockCatalog) Get(ctx context.Context, id string) (*models.Resource, error) {
	return m.getFn(ctx, id)
}
func (m *mockCatalog) Rename(ctx context.Context, id, name string) (*models.Resource, error) {
	return m.renameFn(ctx, id, name)
}
func (m *mockCatalog) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- Mock AvailabilityService ---

type mockAvailability struct {
	listFn func(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error)
	addFn  func(ctx context.Context, resourceID string, startTime time.Time) (*models.Slot, error)
}

func (m *mockAvailability) ListOpenSlots(ctx context.Context, resourceID string, after time.Time) ([]models.Slot, error) {
	return m.listFn(ctx, resourceID, after)
}
func (m *mockAvailability) AddSlot(ctx context.Context, resourceID string, startTime time.Time) (*models.Slot, error) {
	return m.addFn(ctx, resourceID, startTime)
}
func (m *mockAvailability) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	return 0, nil
}

// --- Mock BookingService ---

type mockBooking struct {
	reserveFn func(ctx context.Context, caller service.Caller, req service.ReserveRequest) (*models.Reservation, error)
	cancelFn  func(ctx context.Context, caller service.Caller, id string) (*models.Reservation, error)
	editFn    func(ctx context.Context, caller service.Caller, id string, req service.EditRequest) (*models.Reservation, error)
	getFn     func(ctx context.Context, id string) (*models.Reservation, error)
	listFn    func(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error)
}

func (m *mockBooking) Reserve(ctx context.Context, caller service.Caller, req service.ReserveRequest) (*models.Reservation, error) {
	return m.reserveFn(ctx, caller, req)
}
func (m *mockBooking) Cancel(ctx context.Context, caller service.Caller, id string) (*models.Reservation, error) {
	return m.cancelFn(ctx, caller, id)
}
func (m *mockBooking) Reschedule(ctx context.Context, caller service.Caller, id, newSlotID string) (*models.Reservation, error) {
	return m.editFn(ctx, caller, id, service.EditRequest{NewSlotID: newSlotID})
}
func (m *mockBooking) UpdateParticipants(ctx context.Context, caller service.Caller, id string, participants []string) (*models.Reservation, error) {
	return m.editFn(ctx, caller, id, service.EditRequest{Participants: participants})
}
func (m *mockBooking) Edit(ctx context.Context, caller service.Caller, id string, req service.EditRequest) (*models.Reservation, error) {
	return m.editFn(ctx, caller, id, req)
}
func (m *mockBooking) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *mockBooking) ListForUser(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	return m.listFn(ctx, userID, after)
}

// --- Mock UserService ---

type mockUsers struct {
	searchFn func(ctx context.Context, query, callerID string) ([]models.User, error)
}

func (m *mockUsers) Resolve(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (m *mockUsers) Search(ctx context.Context, query, callerID string) ([]models.User, error) {
	return m.searchFn(ctx, query, callerID)
}

// newContext builds a request context authenticated as user.
func newContext(method, target string, body io.Reader, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}
