package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto status codes. Anything unmapped falls
// through to the echo error handler as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidParticipants),
		errors.Is(err, service.ErrInvalidSlot),
		errors.Is(err, service.ErrKindMismatch),
		errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable, try again")
	}
	return err
}

func callerOf(u *models.User) service.Caller {
	return service.Caller{UserID: u.ID, Admin: u.Admin}
}

// parseAfter reads an RFC 3339 "after" query parameter, defaulting to now.
func parseAfter(c echo.Context) (time.Time, error) {
	s := c.QueryParam("after")
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "after must be an RFC 3339 timestamp")
	}
	return t, nil
}
