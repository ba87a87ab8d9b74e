package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
)

type ReservationBackend interface {
	CreateReservation(ctx context.Context, in apiclient.ReservationRequest) (*models.Reservation, error)
	CreateGuestReservation(ctx context.Context, in apiclient.ReservationRequest) (*models.Reservation, error)
	ListMyReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	GetReservationByCode(ctx context.Context, code string) (*models.Reservation, error)
	CancelMyReservation(ctx context.Context, id string) (*models.Reservation, error)
}

// GuestDetails are required when booking without an account.
type GuestDetails struct {
	Name  string
	Email string
	Phone string
}

type BookingInput struct {
	SpecialRequests string
	PreOrderID      *string
	Guest           *GuestDetails
}

type ReservationService interface {
	Book(ctx context.Context, ns string, user *models.User, in BookingInput) (*models.Reservation, error)
	Mine(ctx context.Context) ([]models.Reservation, error)
	Get(ctx context.Context, id string) (*models.Reservation, error)
	FindByCode(ctx context.Context, code string) (*models.Reservation, error)
	CancelMine(ctx context.Context, id string) (*models.Reservation, error)
}

type reservationService struct {
	backend      ReservationBackend
	availability AvailabilityService
}

func NewReservationService(backend ReservationBackend, availability AvailabilityService) ReservationService {
	return &reservationService{backend: backend, availability: availability}
}

// Book submits the wizard's current selection, as the signed-in member or as a guest.
func (s *reservationService) Book(ctx context.Context, ns string, user *models.User, in BookingInput) (*models.Reservation, error) {
	st := s.availability.State(ctx, ns)
	if !st.Complete() {
		return nil, ErrNoTimeSelected
	}

	req := apiclient.ReservationRequest{
		ReservationDate: st.Date,
		StartTime:       st.SelectedTime,
		PartySize:       st.PartySize,
		SpecialRequests: in.SpecialRequests,
		PreOrderID:      in.PreOrderID,
	}

	var (
		r   *models.Reservation
		err error
	)
	if user != nil {
		r, err = s.backend.CreateReservation(ctx, req)
	} else {
		if in.Guest == nil || in.Guest.Name == "" || in.Guest.Email == "" || in.Guest.Phone == "" {
			return nil, fieldError("guest", "name, email and phone are required to book as a guest")
		}
		req.GuestName = in.Guest.Name
		req.GuestEmail = in.Guest.Email
		req.GuestPhone = in.Guest.Phone
		r, err = s.backend.CreateGuestReservation(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.availability.Reset(ctx, ns)
	log.Printf("[Reservation] booked %s for %s %s x%d", r.ConfirmationCode, st.Date, st.SelectedTime, st.PartySize)
	return r, nil
}

func (s *reservationService) Mine(ctx context.Context) ([]models.Reservation, error) {
	return s.backend.ListMyReservations(ctx)
}

func (s *reservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return s.backend.GetReservation(ctx, id)
}

func (s *reservationService) FindByCode(ctx context.Context, code string) (*models.Reservation, error) {
	return s.backend.GetReservationByCode(ctx, code)
}

// CancelMine cancels a reservation that has not been seated or closed yet.
func (s *reservationService) CancelMine(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.backend.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionReservation(r.Status, models.ReservationCancelled) {
		return nil, fmt.Errorf("reservation %s is %s: %w", id, r.Status, ErrCannotCancel)
	}
	return s.backend.CancelMyReservation(ctx, id)
}
