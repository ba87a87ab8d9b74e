package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	reservations service.ReservationService
	availability service.AvailabilityService
	auth         service.AuthService
}

func NewReservationHandler(reservations service.ReservationService, availability service.AvailabilityService, auth service.AuthService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, availability: availability, auth: auth}
}

// RegisterRoutes mounts the booking wizard and code lookup for any session, and the
// member's own reservations behind requireUser.
func (h *ReservationHandler) RegisterRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.GET("/availability", h.GetAvailability)
	g.GET("/booking", h.GetBooking)
	g.PUT("/booking/query", h.SetQuery)
	g.PUT("/booking/time", h.SelectTime)
	g.DELETE("/booking", h.ResetBooking)
	g.POST("", h.Book)
	g.GET("/code/:code", h.GetByCode)

	g.GET("/my", h.ListMine, requireUser)
	g.GET("/:id", h.GetReservation, requireUser)
	g.POST("/:id/cancel", h.Cancel, requireUser)
}

// GetAvailability starts a wizard query for the date and party size in the query string.
func (h *ReservationHandler) GetAvailability(c echo.Context) error {
	var q dto.AvailabilityQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	return h.query(c, q)
}

func (h *ReservationHandler) SetQuery(c echo.Context) error {
	var q dto.AvailabilityQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	return h.query(c, q)
}

func (h *ReservationHandler) query(c echo.Context, q dto.AvailabilityQuery) error {
	st, err := h.availability.SetQuery(c.Request().Context(), middleware.SessionFrom(c).ID, q.Date, q.PartySize)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(st))
}

func (h *ReservationHandler) GetBooking(c echo.Context) error {
	st := h.availability.State(c.Request().Context(), middleware.SessionFrom(c).ID)
	return c.JSON(http.StatusOK, dto.ToBookingResponse(st))
}

func (h *ReservationHandler) SelectTime(c echo.Context) error {
	var req dto.SelectTimeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	st, err := h.availability.SelectTime(c.Request().Context(), middleware.SessionFrom(c).ID, req.Time)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(st))
}

func (h *ReservationHandler) ResetBooking(c echo.Context) error {
	h.availability.Reset(c.Request().Context(), middleware.SessionFrom(c).ID)
	return c.NoContent(http.StatusNoContent)
}

// Book submits the wizard selection for the signed-in member, or as a guest when signed out.
func (h *ReservationHandler) Book(c echo.Context) error {
	var req dto.BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)
	var user *models.User
	if sess.Authenticated() {
		user = h.auth.CurrentUser(ctx, sess.ID)
	}

	in := service.BookingInput{SpecialRequests: req.SpecialRequests, PreOrderID: req.PreOrderID}
	if user == nil {
		in.Guest = &service.GuestDetails{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone}
	}

	r, err := h.reservations.Book(ctx, sess.ID, user, in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *ReservationHandler) GetByCode(c echo.Context) error {
	r, err := h.reservations.FindByCode(c.Request().Context(), c.Param("code"))
	if apiclient.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "no reservation with that confirmation code")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) ListMine(c echo.Context) error {
	list, err := h.reservations.Mine(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Reservation{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	r, err := h.reservations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	r, err := h.reservations.CancelMine(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, r)
}
