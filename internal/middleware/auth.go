package middleware

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

// RequireUser rejects requests from sessions without a signed-in user.
func RequireUser(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil || !sess.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrNotSignedIn.Error())
			}
			user := auth.CurrentUser(c.Request().Context(), sess.ID)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrNotSignedIn.Error())
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin is RequireUser restricted to the ADMIN role.
func RequireAdmin(auth service.AuthService) echo.MiddlewareFunc {
	requireUser := RequireUser(auth)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireUser(func(c echo.Context) error {
			if !UserFrom(c).IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		})
	}
}
