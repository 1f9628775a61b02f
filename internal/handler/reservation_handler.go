package handler

import (
	"net/http"

	"github.com/Eursukkul/paddle-center/booking-service/internal/dto"
	"github.com/Eursukkul/paddle-center/booking-service/internal/middleware"
	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.BookingService
}

func NewReservationHandler(svc service.BookingService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(g *echo.Group) {
	reservations := g.Group("/reservations")
	reservations.POST("", h.CreateReservation)
	reservations.GET("/:id", h.GetReservation)
	reservations.PATCH("/:id", h.EditReservation)
	reservations.DELETE("/:id", h.CancelReservation)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ResourceID == "" || req.SlotID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "resourceId and slotId are required")
	}

	reservation, err := h.svc.Reserve(c.Request().Context(), callerOf(middleware.CurrentUser(c)), service.ReserveRequest{
		ResourceID:   req.ResourceID,
		SlotID:       req.SlotID,
		Kind:         models.ReservationKind(req.Kind),
		Participants: req.Participants,
		UserID:       req.UserID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

// GetReservation is visible to anyone taking part and to admins.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	reservation, err := h.svc.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	user := middleware.CurrentUser(c)
	if !user.Admin && !reservation.Involves(user.ID) {
		return echo.NewHTTPError(http.StatusForbidden, "not allowed")
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) EditReservation(c echo.Context) error {
	var req dto.EditReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.NewSlotID == "" && req.Participants == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "newSlotId or participants is required")
	}

	reservation, err := h.svc.Edit(c.Request().Context(), callerOf(middleware.CurrentUser(c)), c.Param("id"), service.EditRequest{
		NewSlotID:    req.NewSlotID,
		Participants: req.Participants,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	reservation, err := h.svc.Cancel(c.Request().Context(), callerOf(middleware.CurrentUser(c)), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}
