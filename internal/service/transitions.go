package service

import (
	"slices"

	"github.com/aperture-dining/web-service/internal/models"
)

// reservationTransitions is advisory; the backend re-validates every change.
var reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationSeated, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationSeated:    {models.ReservationCompleted},
	models.ReservationCompleted: {},
	models.ReservationCancelled: {},
	models.ReservationNoShow:    {},
}

// NextReservationStatuses returns the statuses a reservation in current may move to.
// Unknown statuses have no successors.
func NextReservationStatuses(current models.ReservationStatus) []models.ReservationStatus {
	next := reservationTransitions[current]
	out := make([]models.ReservationStatus, len(next))
	copy(out, next)
	return out
}

func CanTransitionReservation(from, to models.ReservationStatus) bool {
	return slices.Contains(reservationTransitions[from], to)
}

var reservationReasons = map[string]string{
	string(models.ReservationPending):   "Reservation set to pending by admin",
	string(models.ReservationConfirmed): "Reservation confirmed by admin",
	string(models.ReservationSeated):    "Guests seated",
	string(models.ReservationCompleted): "Reservation completed",
	string(models.ReservationCancelled): "Order cancelled by admin",
	string(models.ReservationNoShow):    "Guest did not arrive",
}

var orderReasons = map[string]string{
	string(models.OrderPending):        "Order set to pending by admin",
	string(models.OrderConfirmed):      "Order confirmed by admin",
	string(models.OrderPreparing):      "Order is being prepared",
	string(models.OrderReady):          "Order is ready",
	string(models.OrderOutForDelivery): "Order is out for delivery",
	string(models.OrderDelivered):      "Order delivered",
	string(models.OrderCompleted):      "Order completed",
	string(models.OrderCancelled):      "Order cancelled by admin",
}

var paymentReasons = map[string]string{
	string(models.PaymentPending):  "Payment set to pending by admin",
	string(models.PaymentPaid):     "Payment received",
	string(models.PaymentFailed):   "Payment failed",
	string(models.PaymentRefunded): "Payment refunded by admin",
}

// StatusPolicy decides which statuses an operator may pick for one kind of record.
type StatusPolicy interface {
	Kind() string
	All() []string
	Next(current string) []string
	DefaultReason(target string) string
}

type restrictedPolicy struct {
	kind    string
	all     []string
	next    func(current string) []string
	reasons map[string]string
}

func (p restrictedPolicy) Kind() string { return p.kind }
func (p restrictedPolicy) All() []string { return p.all }
func (p restrictedPolicy) Next(current string) []string { return p.next(current) }
func (p restrictedPolicy) DefaultReason(target string) string { return p.reasons[target] }

// unrestrictedPolicy lets the operator pick any known status other than the current one.
type unrestrictedPolicy struct {
	kind    string
	all     []string
	reasons map[string]string
}

func (p unrestrictedPolicy) Kind() string { return p.kind }
func (p unrestrictedPolicy) All() []string { return p.all }

func (p unrestrictedPolicy) Next(current string) []string {
	if !slices.Contains(p.all, current) {
		return []string{}
	}
	out := make([]string, 0, len(p.all)-1)
	for _, s := range p.all {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}

func (p unrestrictedPolicy) DefaultReason(target string) string { return p.reasons[target] }

func ReservationPolicy() StatusPolicy {
	all := make([]string, len(models.ReservationStatuses))
	for i, s := range models.ReservationStatuses {
		all[i] = string(s)
	}
	return restrictedPolicy{
		kind: "reservation",
		all:  all,
		next: func(current string) []string {
			next := NextReservationStatuses(models.ReservationStatus(current))
			out := make([]string, len(next))
			for i, s := range next {
				out[i] = string(s)
			}
			return out
		},
		reasons: reservationReasons,
	}
}

func OrderPolicy() StatusPolicy {
	all := make([]string, len(models.OrderStatuses))
	for i, s := range models.OrderStatuses {
		all[i] = string(s)
	}
	return unrestrictedPolicy{kind: "order", all: all, reasons: orderReasons}
}

func PaymentPolicy() StatusPolicy {
	all := make([]string, len(models.PaymentStatuses))
	for i, s := range models.PaymentStatuses {
		all[i] = string(s)
	}
	return unrestrictedPolicy{kind: "payment", all: all, reasons: paymentReasons}
}
