package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/events"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/querycache"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationStatusHandler(status models.ReservationStatus, sent *[]apiclient.StatusUpdate) *StatusHandler[models.Reservation] {
	wf := service.NewStatusWorkflow(service.WorkflowConfig[models.Reservation]{
		Policy:    service.ReservationPolicy(),
		CacheKind: "reservation",
		Topic:     events.TopicReservationStatusChanged,
		Fetch: func(ctx context.Context, id string) (*models.Reservation, error) {
			return &models.Reservation{ID: id, Status: status}, nil
		},
		Update: func(ctx context.Context, id string, in apiclient.StatusUpdate) (*models.Reservation, error) {
			*sent = append(*sent, in)
			return &models.Reservation{ID: id, Status: models.ReservationStatus(in.Status)}, nil
		},
		StatusOf: func(r *models.Reservation) string { return string(r.Status) },
	}, querycache.New(), events.NewEmitter())
	return NewStatusHandler(wf)
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func TestStatusOptions_Handler(t *testing.T) {
	var sent []apiclient.StatusUpdate
	h := reservationStatusHandler(models.ReservationConfirmed, &sent)

	c, rec := newContext(http.MethodGet, "/api/admin/reservations/r1/status-options", "", nil)
	withID(c, "r1")
	err := h.Options(c)

	assert.NoError(t, err)
	var resp dto.StatusOptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp.Current)
	enabled := []string{}
	for _, o := range resp.Options {
		if o.Enabled {
			enabled = append(enabled, o.Status)
		}
	}
	assert.Equal(t, []string{"CONFIRMED", "SEATED", "CANCELLED", "NO_SHOW"}, enabled)
}

func TestStatusSelect_Handler(t *testing.T) {
	var sent []apiclient.StatusUpdate
	h := reservationStatusHandler(models.ReservationPending, &sent)

	c, rec := newContext(http.MethodPost, "/api/admin/reservations/r1/status/select", `{"status":"CANCELLED"}`, nil)
	withID(c, "r1")
	err := h.Select(c)

	assert.NoError(t, err)
	var resp service.SelectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.SelectionConfirm, resp.Action)
	assert.Equal(t, "Order cancelled by admin", resp.DefaultReason)
	assert.Empty(t, sent)
}

func TestStatusCommit_Handler(t *testing.T) {
	var sent []apiclient.StatusUpdate
	h := reservationStatusHandler(models.ReservationPending, &sent)

	c, rec := newContext(http.MethodPut, "/api/admin/reservations/r1/status", `{"status":"CONFIRMED","reason":""}`, nil)
	withID(c, "r1")
	err := h.Commit(c)

	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"status":"CONFIRMED"`)
	require.Len(t, sent, 1)
	assert.Equal(t, "", sent[0].Reason)
}

func TestStatusCommit_Handler_DisallowedTransition(t *testing.T) {
	var sent []apiclient.StatusUpdate
	h := reservationStatusHandler(models.ReservationCompleted, &sent)

	c, _ := newContext(http.MethodPut, "/api/admin/reservations/r1/status", `{"status":"PENDING"}`, nil)
	withID(c, "r1")
	err := h.Commit(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Empty(t, sent)
}
