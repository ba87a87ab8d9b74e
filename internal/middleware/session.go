package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "ad_session"

	sessionContextKey = "session"
	userContextKey    = "user"
)

type SessionConfig struct {
	Sessions repository.SessionRepository
	Secure   bool
	MaxAge   time.Duration
}

// Session loads the browser session named by the ad_session cookie, issuing a new one when the
// cookie is missing or unknown, and attaches the session's backend cookies to the request context.
// A store failure yields 503 and leaves the browser's cookie untouched.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sess, err := loadSession(c, cfg.Sessions)
			if err != nil {
				log.Printf("[Session] load: %v", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if sess == nil {
				now := time.Now().UTC()
				sess = &models.Session{ID: uuid.NewString(), CreatedAt: now, LastSeenAt: now}
				if err := cfg.Sessions.Save(ctx, sess); err != nil {
					log.Printf("[Session] create %s: %v", sess.ID, err)
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// loadSession returns nil without error when the cookie is absent, malformed or unknown.
func loadSession(c echo.Context, sessions repository.SessionRepository) (*models.Session, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, nil
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, nil
	}
	sess, err := sessions.Find(c.Request().Context(), cookie.Value)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", cookie.Value, err)
	}
	return sess, nil
}

// SessionFrom returns the session loaded by the Session middleware.
func SessionFrom(c echo.Context) *models.Session {
	sess, _ := c.Get(sessionContextKey).(*models.Session)
	return sess
}

// SetSession stores sess on the context, as the Session middleware does.
func SetSession(c echo.Context, sess *models.Session) {
	c.Set(sessionContextKey, sess)
	ctx := apiclient.WithCredentials(c.Request().Context(), apiclient.Credentials{SessionID: sess.ID, Cookies: sess.Cookies})
	c.SetRequest(c.Request().WithContext(ctx))
}

// UserFrom returns the user set by RequireUser or RequireAdmin.
func UserFrom(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
