package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	keys     []string
	payloads []any
	err      error
}

func (s *fakeSink) Publish(ctx context.Context, routingKey string, payload any) error {
	s.keys = append(s.keys, routingKey)
	s.payloads = append(s.payloads, payload)
	return s.err
}

func TestForward_PublishesUnderTopic(t *testing.T) {
	sink := &fakeSink{}
	e := NewEmitter()
	e.Subscribe("*", Forward(sink))

	e.Emit(context.Background(), Event{Topic: TopicOrderStatusChanged, EntityID: "o1", Status: "READY"})
	e.Emit(context.Background(), Event{Topic: TopicSessionExpired, SessionID: "secret"})

	assert.Equal(t, []string{TopicOrderStatusChanged, TopicSessionExpired}, sink.keys)
	require.Len(t, sink.payloads, 2)
	assert.Equal(t, "READY", sink.payloads[0].(Event).Status)
	assert.Empty(t, sink.payloads[1].(Event).SessionID)
}

func TestForward_WrapsSinkError(t *testing.T) {
	sink := &fakeSink{err: errors.New("channel closed")}

	err := Forward(sink)(context.Background(), Event{Topic: TopicPaymentStatusChanged})

	assert.ErrorContains(t, err, "forward payment.status_changed")
	assert.ErrorIs(t, err, sink.err)
}
