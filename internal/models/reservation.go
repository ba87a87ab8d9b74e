package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

// ReservationStatuses lists every reservation status in display order.
var ReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationSeated,
	ReservationCompleted,
	ReservationCancelled,
	ReservationNoShow,
}

type Reservation struct {
	ID               string            `json:"id"`
	ConfirmationCode string            `json:"confirmationCode"`
	UserID           *string           `json:"userId,omitempty"`
	GuestName        string            `json:"guestName,omitempty"`
	GuestEmail       string            `json:"guestEmail,omitempty"`
	GuestPhone       string            `json:"guestPhone,omitempty"`
	Table            *Table            `json:"table,omitempty"`
	PartySize        int               `json:"partySize"`
	ReservationDate  string            `json:"reservationDate"`
	StartTime        string            `json:"startTime"`
	EndTime          string            `json:"endTime"`
	Status           ReservationStatus `json:"status"`
	SpecialRequests  string            `json:"specialRequests,omitempty"`
	PreOrderID       *string           `json:"preOrderId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// IsGuest reports whether the reservation was made without an account.
func (r *Reservation) IsGuest() bool {
	return r.UserID == nil || *r.UserID == ""
}

// TimeSlot is one bookable start time for a date and party size.
type TimeSlot struct {
	Time            string `json:"time"`
	TablesAvailable int    `json:"tablesAvailable"`
}

func (s TimeSlot) Selectable() bool {
	return s.TablesAvailable > 0
}
