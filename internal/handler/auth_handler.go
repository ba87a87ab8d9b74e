package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
	g.POST("/revalidate", h.Revalidate)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Login(c.Request().Context(), middleware.SessionFrom(c), apiclient.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if apiclient.StatusCode(err) == http.StatusUnauthorized {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: true, User: user})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), middleware.SessionFrom(c), apiclient.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.SessionResponse{Authenticated: true, User: user})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if !sess.Authenticated() {
		return c.JSON(http.StatusOK, dto.SessionResponse{})
	}
	user := h.auth.CurrentUser(c.Request().Context(), sess.ID)
	return c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: user != nil, User: user})
}

// Revalidate re-checks the session against the backend, as the UI does when a tab regains focus.
func (h *AuthHandler) Revalidate(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	user, err := h.auth.Revalidate(c.Request().Context(), sess)
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return err
	}
	if err != nil {
		log.Printf("[Auth] revalidate %s: %v", sess.ID, err)
	}
	return c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: user != nil, User: user})
}
