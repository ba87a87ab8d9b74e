package service

import (
	"testing"

	"github.com/aperture-dining/web-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNextReservationStatuses(t *testing.T) {
	cases := []struct {
		current models.ReservationStatus
		want    []models.ReservationStatus
	}{
		{models.ReservationPending, []models.ReservationStatus{models.ReservationConfirmed, models.ReservationCancelled}},
		{models.ReservationConfirmed, []models.ReservationStatus{models.ReservationSeated, models.ReservationCancelled, models.ReservationNoShow}},
		{models.ReservationSeated, []models.ReservationStatus{models.ReservationCompleted}},
		{models.ReservationCompleted, []models.ReservationStatus{}},
		{models.ReservationCancelled, []models.ReservationStatus{}},
		{models.ReservationNoShow, []models.ReservationStatus{}},
		{"ARCHIVED", []models.ReservationStatus{}},
		{"", []models.ReservationStatus{}},
	}

	for _, tt := range cases {
		got := NextReservationStatuses(tt.current)
		assert.ElementsMatch(t, tt.want, got, "NextReservationStatuses(%q)", tt.current)
		assert.NotNil(t, got)
	}
}

func TestNextReservationStatuses_ReturnsCopy(t *testing.T) {
	got := NextReservationStatuses(models.ReservationPending)
	got[0] = models.ReservationNoShow

	assert.Equal(t, models.ReservationConfirmed, NextReservationStatuses(models.ReservationPending)[0])
}

func TestCanTransitionReservation_NoBackTransitions(t *testing.T) {
	for _, from := range models.ReservationStatuses {
		assert.False(t, CanTransitionReservation(from, models.ReservationPending), "%s -> PENDING", from)
	}
	for _, to := range models.ReservationStatuses {
		assert.False(t, CanTransitionReservation(models.ReservationCancelled, to), "CANCELLED -> %s", to)
	}
}

func TestOrderPolicy_Unrestricted(t *testing.T) {
	p := OrderPolicy()

	next := p.Next(string(models.OrderCompleted))
	assert.Len(t, next, len(models.OrderStatuses)-1)
	assert.Contains(t, next, string(models.OrderPending))
	assert.NotContains(t, next, string(models.OrderCompleted))

	assert.Empty(t, p.Next("LOST"))
	assert.Equal(t, "Order cancelled by admin", p.DefaultReason(string(models.OrderCancelled)))
}

func TestPaymentPolicy_Unrestricted(t *testing.T) {
	p := PaymentPolicy()

	assert.ElementsMatch(t, []string{"PENDING", "PAID", "FAILED"}, p.Next("REFUNDED"))
	assert.Equal(t, "payment", p.Kind())
}

func TestReservationPolicy_DefaultReasons(t *testing.T) {
	p := ReservationPolicy()

	for _, s := range models.ReservationStatuses {
		assert.NotEmpty(t, p.DefaultReason(string(s)), "default reason for %s", s)
	}
	assert.Equal(t, "Order cancelled by admin", p.DefaultReason("CANCELLED"))
	assert.Equal(t, []string{"COMPLETED"}, p.Next("SEATED"))
}
