package events

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	TopicSessionExpired           = "session.expired"
	TopicReservationStatusChanged = "reservation.status_changed"
	TopicOrderStatusChanged       = "order.status_changed"
	TopicPaymentStatusChanged     = "payment.status_changed"
)

// Event is a notification raised inside the web tier.
type Event struct {
	Topic      string    `json:"topic"`
	SessionID  string    `json:"session_id,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Handler func(ctx context.Context, evt Event) error

// Publisher is what services depend on to raise events.
type Publisher interface {
	Emit(ctx context.Context, evt Event)
}

// Emitter fans events out synchronously to the handlers subscribed to their topic.
// A handler subscribed to "*" receives every event.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]Handler)}
}

func (e *Emitter) Subscribe(topic string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[topic] = append(e.handlers[topic], h)
}

func (e *Emitter) Emit(ctx context.Context, evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	e.mu.RLock()
	hs := make([]Handler, 0, len(e.handlers[evt.Topic])+len(e.handlers["*"]))
	hs = append(hs, e.handlers[evt.Topic]...)
	hs = append(hs, e.handlers["*"]...)
	e.mu.RUnlock()

	for _, h := range hs {
		if err := h(ctx, evt); err != nil {
			log.Printf("[Events] handler for %s failed: %v", evt.Topic, err)
		}
	}
}
