package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) GetAvailability(ctx context.Context, date string, partySize int) (*Availability, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("partySize", strconv.Itoa(partySize))
	var out Availability
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/reservation/availability", query: q, anonymous: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReservation books for the signed-in member.
func (c *Client) CreateReservation(ctx context.Context, in ReservationRequest) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/reservation", body: in}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateGuestReservation(ctx context.Context, in ReservationRequest) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/reservation/guest", body: in, anonymous: true}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListMyReservations(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/reservation/my"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/reservation/" + url.PathEscape(id)}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) GetReservationByCode(ctx context.Context, code string) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/reservation/code/" + url.PathEscape(code), anonymous: true}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CancelMyReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodPut, path: "/api/reservation/" + url.PathEscape(id) + "/cancel"}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListReservations(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	var out []models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/reservation/admin", query: q}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id string, in StatusUpdate) (*models.Reservation, error) {
	var r models.Reservation
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/reservation/admin/" + url.PathEscape(id) + "/status", body: in}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
