package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

// CodeSessionExpired tells the UI to show the session-expired prompt.
const CodeSessionExpired = "SESSION_EXPIRED"

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, resp := classify(err)
	if code >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, resp)
}

func classify(err error) (int, dto.ErrorResponse) {
	var (
		he     *echo.HTTPError
		ve     *service.ValidationError
		apiErr *apiclient.APIError
	)

	switch {
	case errors.Is(err, apiclient.ErrSessionExpired):
		return http.StatusUnauthorized, dto.ErrorResponse{Message: "session expired", Code: CodeSessionExpired}
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		return he.Code, dto.ErrorResponse{Message: msg}
	case errors.As(err, &ve):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "validation failed", Fields: ve.Fields}
	case errors.As(err, &apiErr):
		return backendStatus(apiErr.StatusCode), dto.ErrorResponse{Message: apiErr.Message}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()}
}

// backendStatus maps a backend response code onto the code the web tier answers with.
func backendStatus(code int) int {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return http.StatusBadRequest
	case http.StatusForbidden, http.StatusNotFound, http.StatusConflict:
		return code
	case 0:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
