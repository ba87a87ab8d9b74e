package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	profile service.ProfileService
}

func NewProfileHandler(profile service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetProfile)
	g.PUT("", h.UpdateProfile)
	g.PUT("/password", h.ChangePassword)
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.profile.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req dto.ProfileUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.profile.Update(c.Request().Context(), middleware.SessionFrom(c).ID, apiclient.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.profile.ChangePassword(c.Request().Context(), apiclient.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
