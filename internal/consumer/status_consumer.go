package consumer

import (
	"encoding/json"
	"log"

	"github.com/aperture-dining/web-service/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Invalidator drops a cached record. *service.StatusWorkflow satisfies it.
type Invalidator interface {
	Forget(id string)
}

// StatusConsumer evicts cached orders and reservations when another web instance changes
// their status, so the next admin read refetches from the backend.
type StatusConsumer struct {
	self    string
	targets map[string]Invalidator
}

func NewStatusConsumer(self string) *StatusConsumer {
	return &StatusConsumer{self: self, targets: make(map[string]Invalidator)}
}

func (sc *StatusConsumer) Register(topic string, inv Invalidator) {
	sc.targets[topic] = inv
}

func (sc *StatusConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			sc.handleMessage(msg)
		}
		log.Println("[StatusConsumer] channel closed, stopping consumer")
	}()
}

func (sc *StatusConsumer) handleMessage(msg amqp.Delivery) {
	if msg.AppId == sc.self {
		msg.Ack(false)
		return
	}

	var evt events.Event
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		log.Printf("[StatusConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}
	if evt.Topic == "" {
		evt.Topic = msg.RoutingKey
	}
	if evt.EntityID == "" {
		log.Printf("[StatusConsumer] %s without entity id, dropping", evt.Topic)
		msg.Nack(false, false)
		return
	}

	inv, ok := sc.targets[evt.Topic]
	if !ok {
		msg.Ack(false)
		return
	}
	inv.Forget(evt.EntityID)
	log.Printf("[StatusConsumer] %s %s -> %s, cache evicted", evt.Topic, evt.EntityID, evt.Status)
	msg.Ack(false)
}
