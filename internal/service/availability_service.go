package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
)

const (
	dateLayout   = "2006-01-02"
	MinPartySize = 1
	MaxPartySize = 20
)

type AvailabilityBackend interface {
	GetAvailability(ctx context.Context, date string, partySize int) (*apiclient.Availability, error)
}

// BookingState is the reservation wizard's selection for one browser session.
type BookingState struct {
	Date         string            `json:"date"`
	PartySize    int               `json:"partySize"`
	SelectedTime string            `json:"selectedTime,omitempty"`
	Slots        []models.TimeSlot `json:"slots"`
	Generation   uint64            `json:"generation"`
	FetchFailed  bool              `json:"fetchFailed,omitempty"`
}

func (b *BookingState) Complete() bool {
	return b.Date != "" && b.PartySize > 0 && b.SelectedTime != ""
}

type AvailabilityService interface {
	State(ctx context.Context, ns string) *BookingState
	SetQuery(ctx context.Context, ns, date string, partySize int) (*BookingState, error)
	SetDate(ctx context.Context, ns, date string) (*BookingState, error)
	SetPartySize(ctx context.Context, ns string, partySize int) (*BookingState, error)
	SelectTime(ctx context.Context, ns, slot string) (*BookingState, error)
	Reset(ctx context.Context, ns string)
}

type availabilityService struct {
	backend AvailabilityBackend
	state   repository.StateRepository
	now     func() time.Time
}

func NewAvailabilityService(backend AvailabilityBackend, state repository.StateRepository, now func() time.Time) AvailabilityService {
	if now == nil {
		now = time.Now
	}
	return &availabilityService{backend: backend, state: state, now: now}
}

func (s *availabilityService) State(ctx context.Context, ns string) *BookingState {
	raw, err := s.state.Get(ctx, ns, BookingKey)
	if err != nil {
		return &BookingState{Slots: []models.TimeSlot{}}
	}
	var st BookingState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		_ = s.state.Delete(ctx, ns, BookingKey)
		return &BookingState{Slots: []models.TimeSlot{}}
	}
	if st.Slots == nil {
		st.Slots = []models.TimeSlot{}
	}
	return &st
}

func (s *availabilityService) save(ctx context.Context, ns string, st *BookingState) {
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := s.state.Set(ctx, ns, BookingKey, string(raw)); err != nil {
		log.Printf("[Availability] save booking state %s: %v", ns, err)
	}
}

func (s *availabilityService) SetDate(ctx context.Context, ns, date string) (*BookingState, error) {
	st := s.State(ctx, ns)
	partySize := st.PartySize
	if partySize == 0 {
		partySize = 2
	}
	return s.SetQuery(ctx, ns, date, partySize)
}

func (s *availabilityService) SetPartySize(ctx context.Context, ns string, partySize int) (*BookingState, error) {
	st := s.State(ctx, ns)
	if st.Date == "" {
		return nil, fieldError("date", "select a date first")
	}
	return s.SetQuery(ctx, ns, st.Date, partySize)
}

// SetQuery changes date and party size, drops the selected time and loads fresh slots.
// Each query takes the next value of the session's generation counter; a response is applied
// only while its generation is still the newest.
func (s *availabilityService) SetQuery(ctx context.Context, ns, date string, partySize int) (*BookingState, error) {
	if err := s.validateQuery(date, partySize); err != nil {
		return nil, err
	}

	n, err := s.state.Incr(ctx, ns, BookingGenKey)
	if err != nil {
		return nil, fmt.Errorf("start availability query: %w", err)
	}
	gen := uint64(n)
	st := &BookingState{Date: date, PartySize: partySize, Slots: []models.TimeSlot{}, Generation: gen}
	s.save(ctx, ns, st)

	avail, fetchErr := s.backend.GetAvailability(ctx, date, partySize)

	if cur := s.generation(ctx, ns); cur != gen {
		log.Printf("[Availability] discarding stale slots for %s (generation %d, current %d)", ns, gen, cur)
		return s.State(ctx, ns), nil
	}
	if fetchErr != nil {
		log.Printf("[Availability] fetch %s x%d: %v", date, partySize, fetchErr)
		st.FetchFailed = true
	} else if avail.Slots != nil {
		st.Slots = avail.Slots
	}
	// TODO: make this save conditional on the generation (WATCH in Redis, a guarded UPDATE in Postgres);
	// a newer query that starts and completes between the check above and this write loses to it.
	s.save(ctx, ns, st)
	return st, nil
}

// generation reads the session's query counter; zero when unset or unreadable.
func (s *availabilityService) generation(ctx context.Context, ns string) uint64 {
	raw, err := s.state.Get(ctx, ns, BookingGenKey)
	if err != nil {
		return 0
	}
	n, _ := strconv.ParseUint(raw, 10, 64)
	return n
}

func (s *availabilityService) SelectTime(ctx context.Context, ns, slot string) (*BookingState, error) {
	st := s.State(ctx, ns)
	for _, ts := range st.Slots {
		if ts.Time == slot {
			if !ts.Selectable() {
				return nil, ErrSlotUnavailable
			}
			st.SelectedTime = slot
			s.save(ctx, ns, st)
			return st, nil
		}
	}
	return nil, ErrSlotUnavailable
}

// Reset clears the wizard and bumps the generation so in-flight queries are discarded.
func (s *availabilityService) Reset(ctx context.Context, ns string) {
	if _, err := s.state.Incr(ctx, ns, BookingGenKey); err != nil {
		log.Printf("[Availability] reset %s: %v", ns, err)
	}
	if err := s.state.Delete(ctx, ns, BookingKey); err != nil && !errors.Is(err, repository.ErrStateNotFound) {
		log.Printf("[Availability] reset %s: %v", ns, err)
	}
}

func (s *availabilityService) validateQuery(date string, partySize int) error {
	ve := &ValidationError{Fields: map[string]string{}}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		ve.Fields["date"] = "date must be YYYY-MM-DD"
	} else {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			ve.Fields["date"] = "date cannot be in the past"
		}
	}
	if partySize < MinPartySize || partySize > MaxPartySize {
		ve.Fields["partySize"] = "party size must be between 1 and 20"
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}
