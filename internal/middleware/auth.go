package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/service"
	"github.com/Eursukkul/paddle-center/booking-service/pkg/auth"
	"github.com/labstack/echo/v4"
)

const userKey = "user"

type userResolver interface {
	Resolve(ctx context.Context, id string) (*models.User, error)
}

// JWTAuth validates the bearer token and loads the caller from the local
// user replica. Banned users are refused before any handler runs.
func JWTAuth(parser *auth.TokenParser, users userResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(h, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := parser.ParseValidate(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.Resolve(c.Request().Context(), claims.Sub)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
				}
				log.Printf("[Auth] resolve %s: %v", claims.Sub, err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "user store unavailable")
			}
			if user.Banned {
				return echo.NewHTTPError(http.StatusForbidden, "user is banned")
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Admin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userKey).(*models.User)
	return user
}

func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userKey, user)
}
