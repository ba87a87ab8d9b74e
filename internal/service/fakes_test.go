package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/aperture-dining/web-service/internal/events"
	"github.com/aperture-dining/web-service/internal/repository"
)

// --- In-memory StateRepository ---

type memState struct {
	mu       sync.Mutex
	data     map[string]string
	failSet  bool
	failIncr bool
}

func newMemState() *memState {
	return &memState{data: make(map[string]string)}
}

func (m *memState) Get(ctx context.Context, ns, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[ns+"/"+key]
	if !ok {
		return "", repository.ErrStateNotFound
	}
	return v, nil
}

func (m *memState) Set(ctx context.Context, ns, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("storage unavailable")
	}
	m.data[ns+"/"+key] = value
	return nil
}

func (m *memState) Delete(ctx context.Context, ns string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, ns+"/"+k)
	}
	return nil
}

func (m *memState) Incr(ctx context.Context, ns, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIncr {
		return 0, errors.New("storage unavailable")
	}
	n, _ := strconv.ParseInt(m.data[ns+"/"+key], 10, 64)
	n++
	m.data[ns+"/"+key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *memState) raw(ns, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[ns+"/"+key]
	return v, ok
}

func (m *memState) put(ns, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ns+"/"+key] = value
}

// --- Recording events.Publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Emit(ctx context.Context, evt events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}
