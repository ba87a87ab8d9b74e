package handler

import (
	"errors"
	"net/http"

	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

// serviceError maps service sentinels to HTTP errors. Backend and validation
// errors pass through to middleware.ErrorHandler unchanged.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrOrderTypeRequired),
		errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrNoTimeSelected),
		errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrStatusUnchanged):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCartItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTransitionNotAllowed),
		errors.Is(err, service.ErrUpdateInFlight),
		errors.Is(err, service.ErrCannotCancel):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotSignedIn):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return err
}

// bind decodes the request into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}
