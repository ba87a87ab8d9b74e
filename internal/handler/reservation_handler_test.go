package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	bookFn       func(ctx context.Context, ns string, user *models.User, in service.BookingInput) (*models.Reservation, error)
	mineFn       func(ctx context.Context) ([]models.Reservation, error)
	getFn        func(ctx context.Context, id string) (*models.Reservation, error)
	findByCodeFn func(ctx context.Context, code string) (*models.Reservation, error)
	cancelMineFn func(ctx context.Context, id string) (*models.Reservation, error)
}

func (m *mockReservationService) Book(ctx context.Context, ns string, user *models.User, in service.BookingInput) (*models.Reservation, error) {
	return m.bookFn(ctx, ns, user, in)
}
func (m *mockReservationService) Mine(ctx context.Context) ([]models.Reservation, error) {
	return m.mineFn(ctx)
}
func (m *mockReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *mockReservationService) FindByCode(ctx context.Context, code string) (*models.Reservation, error) {
	return m.findByCodeFn(ctx, code)
}
func (m *mockReservationService) CancelMine(ctx context.Context, id string) (*models.Reservation, error) {
	return m.cancelMineFn(ctx, id)
}

// --- Stub availability backend ---

type stubAvailability struct{}

func (stubAvailability) GetAvailability(ctx context.Context, date string, partySize int) (*apiclient.Availability, error) {
	return &apiclient.Availability{Date: date, PartySize: partySize, Slots: []models.TimeSlot{
		{Time: "18:00", TablesAvailable: 3},
		{Time: "18:30", TablesAvailable: 0},
	}}, nil
}

func newWizard() service.AvailabilityService {
	now := func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return service.NewAvailabilityService(stubAvailability{}, newMemState(), now)
}

func decodeBooking(t *testing.T, body []byte) dto.BookingResponse {
	t.Helper()
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// --- Tests ---

func TestGetAvailability_Handler(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{}, newWizard(), &mockAuthService{})

	c, rec := newContext(http.MethodGet, "/api/reservations/availability?date=2026-10-20&partySize=4", "", nil)
	err := h.GetAvailability(c)

	assert.NoError(t, err)
	resp := decodeBooking(t, rec.Body.Bytes())
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, 4, resp.PartySize)
	assert.Len(t, resp.Slots, 2)
	assert.False(t, resp.Complete)
}

func TestGetAvailability_Handler_PartyTooLarge(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{}, newWizard(), &mockAuthService{})

	c, _ := newContext(http.MethodGet, "/api/reservations/availability?date=2026-10-20&partySize=21", "", nil)
	err := h.GetAvailability(c)

	assert.True(t, service.IsValidation(err))
}

func TestSelectTime_Handler_FullSlotRejected(t *testing.T) {
	wizard := newWizard()
	_, err := wizard.SetQuery(context.Background(), "s1", "2026-10-20", 2)
	require.NoError(t, err)
	h := NewReservationHandler(&mockReservationService{}, wizard, &mockAuthService{})

	c, _ := newContext(http.MethodPut, "/api/reservations/booking/time", `{"time":"18:30"}`, nil)
	err = h.SelectTime(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	c, rec := newContext(http.MethodPut, "/api/reservations/booking/time", `{"time":"18:00"}`, nil)
	assert.NoError(t, h.SelectTime(c))
	assert.True(t, decodeBooking(t, rec.Body.Bytes()).Complete)
}

func TestBook_Handler_GuestWhenSignedOut(t *testing.T) {
	svc := &mockReservationService{bookFn: func(ctx context.Context, ns string, user *models.User, in service.BookingInput) (*models.Reservation, error) {
		assert.Nil(t, user)
		require.NotNil(t, in.Guest)
		assert.Equal(t, "Bo", in.Guest.Name)
		return &models.Reservation{ID: "r1", ConfirmationCode: "AP-7"}, nil
	}}
	h := NewReservationHandler(svc, newWizard(), &mockAuthService{})

	body := `{"guestName":"Bo","guestEmail":"bo@example.com","guestPhone":"555"}`
	c, rec := newContext(http.MethodPost, "/api/reservations", body, nil)
	err := h.Book(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBook_Handler_MemberWhenSignedIn(t *testing.T) {
	auth := &mockAuthService{currentUserFn: func(ctx context.Context, ns string) *models.User {
		return &models.User{ID: "u1"}
	}}
	svc := &mockReservationService{bookFn: func(ctx context.Context, ns string, user *models.User, in service.BookingInput) (*models.Reservation, error) {
		require.NotNil(t, user)
		assert.Nil(t, in.Guest)
		return nil, service.ErrNoTimeSelected
	}}
	h := NewReservationHandler(svc, newWizard(), auth)

	c, _ := newContext(http.MethodPost, "/api/reservations", `{}`, signedIn("s1"))
	err := h.Book(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCancel_Handler_TooLate(t *testing.T) {
	svc := &mockReservationService{cancelMineFn: func(ctx context.Context, id string) (*models.Reservation, error) {
		return nil, service.ErrCannotCancel
	}}
	h := NewReservationHandler(svc, newWizard(), &mockAuthService{})

	c, _ := newContext(http.MethodPost, "/api/reservations/r1/cancel", "", signedIn("s1"))
	c.SetParamNames("id")
	c.SetParamValues("r1")
	err := h.Cancel(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestGetByCode_Handler_UnknownCode(t *testing.T) {
	svc := &mockReservationService{findByCodeFn: func(ctx context.Context, code string) (*models.Reservation, error) {
		assert.Equal(t, "AP-404", code)
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "Reservation not found"}
	}}
	h := NewReservationHandler(svc, newWizard(), &mockAuthService{})

	c, _ := newContext(http.MethodGet, "/api/reservations/code/AP-404", "", nil)
	c.SetParamNames("code")
	c.SetParamValues("AP-404")
	err := h.GetByCode(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "no reservation with that confirmation code", he.Message)
}
