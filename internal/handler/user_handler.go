package handler

import (
	"net/http"

	"github.com/Eursukkul/paddle-center/booking-service/internal/dto"
	"github.com/Eursukkul/paddle-center/booking-service/internal/middleware"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users    service.UserService
	bookings service.BookingService
}

func NewUserHandler(users service.UserService, bookings service.BookingService) *UserHandler {
	return &UserHandler{users: users, bookings: bookings}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.SearchUsers)
	g.GET("/users/:id/reservations", h.ListReservations)
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	users, err := h.users.Search(c.Request().Context(), c.QueryParam("q"), caller.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// ListReservations returns upcoming reservations in start order. Users may
// only list their own unless they are admins.
func (h *UserHandler) ListReservations(c echo.Context) error {
	userID := c.Param("id")
	caller := middleware.CurrentUser(c)
	if caller.ID != userID && !caller.Admin {
		return echo.NewHTTPError(http.StatusForbidden, "not allowed")
	}

	after, err := parseAfter(c)
	if err != nil {
		return err
	}

	reservations, err := h.bookings.ListForUser(c.Request().Context(), userID, after)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}
