package events

import (
	"context"
	"fmt"
)

// Sink publishes a payload under a routing key. *rabbitmq.Publisher satisfies it.
type Sink interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Forward returns a handler that republishes events to sink with the topic as routing key.
// Session ids never leave the process.
func Forward(sink Sink) Handler {
	return func(ctx context.Context, evt Event) error {
		evt.SessionID = ""
		if err := sink.Publish(ctx, evt.Topic, evt); err != nil {
			return fmt.Errorf("forward %s: %w", evt.Topic, err)
		}
		return nil
	}
}
