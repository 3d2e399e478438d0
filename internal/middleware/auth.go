package middleware

import (
	"log/slog"
	"net/http"

	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey is the context key for the authenticated user's ID
	UserIDContextKey = "user_id"
	// UserEmailContextKey is the context key for the authenticated user's email
	UserEmailContextKey = "user_email"
)

// RequireAuth gates a route group behind a valid session cookie. Requests
// without a valid session are redirected to the login page rather than
// answered with an error body.
func RequireAuth(tokens services.TokenServiceInterface, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			claims, err := tokens.Validate(cookie.Value)
			if err != nil {
				slog.Warn("session rejected",
					"trace_id", GetTraceID(c),
					"path", c.Request().URL.Path,
					"error", err.Error(),
				)
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(UserIDContextKey, userID)
			c.Set(UserEmailContextKey, claims.Email)
			return next(c)
		}
	}
}
