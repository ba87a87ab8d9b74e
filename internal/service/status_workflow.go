package service

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/events"
	"github.com/aperture-dining/web-service/internal/querycache"
)

type SelectionAction string

const (
	SelectionNoOp     SelectionAction = "noop"
	SelectionDisabled SelectionAction = "disabled"
	SelectionInFlight SelectionAction = "in_flight"
	SelectionConfirm  SelectionAction = "confirm"
)

type StatusOption struct {
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
	Current bool   `json:"current"`
}

type SelectResult struct {
	Action        SelectionAction `json:"action"`
	Current       string          `json:"current"`
	Target        string          `json:"target"`
	DefaultReason string          `json:"defaultReason,omitempty"`
}

// WorkflowConfig wires a StatusWorkflow to the backend calls for one kind of record.
type WorkflowConfig[T any] struct {
	Policy    StatusPolicy
	CacheKind string
	Topic     string
	Fetch     func(ctx context.Context, id string) (*T, error)
	Update    func(ctx context.Context, id string, in apiclient.StatusUpdate) (*T, error)
	StatusOf  func(*T) string
}

// StatusWorkflow drives the select, confirm and commit steps of an operator status change.
// The record it returns after a commit is always the backend's representation.
type StatusWorkflow[T any] struct {
	cfg    WorkflowConfig[T]
	cache  *querycache.Cache
	events events.Publisher

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewStatusWorkflow[T any](cfg WorkflowConfig[T], cache *querycache.Cache, pub events.Publisher) *StatusWorkflow[T] {
	return &StatusWorkflow[T]{
		cfg:      cfg,
		cache:    cache,
		events:   pub,
		inFlight: make(map[string]struct{}),
	}
}

func (w *StatusWorkflow[T]) Policy() StatusPolicy {
	return w.cfg.Policy
}

func (w *StatusWorkflow[T]) StatusOf(rec *T) string {
	return w.cfg.StatusOf(rec)
}

// Forget drops the cached copy of id so the next read goes to the backend.
func (w *StatusWorkflow[T]) Forget(id string) {
	w.cache.Invalidate(querycache.Key(w.cfg.CacheKind, id))
}

// Get returns the record, served from the query cache when present.
func (w *StatusWorkflow[T]) Get(ctx context.Context, id string) (*T, error) {
	key := querycache.Key(w.cfg.CacheKind, id)
	if v, ok := w.cache.Get(key); ok {
		if rec, ok := v.(*T); ok {
			return rec, nil
		}
	}
	tok := w.cache.Begin(key)
	rec, err := w.cfg.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	w.cache.Commit(tok, rec)
	return rec, nil
}

// Options lists every status with Enabled set for the current one and its permitted successors.
func (w *StatusWorkflow[T]) Options(current string) []StatusOption {
	next := w.cfg.Policy.Next(current)
	all := w.cfg.Policy.All()
	out := make([]StatusOption, len(all))
	for i, s := range all {
		out[i] = StatusOption{
			Status:  s,
			Current: s == current,
			Enabled: s == current || slices.Contains(next, s),
		}
	}
	return out
}

// Select classifies an operator's pick without calling the backend update.
func (w *StatusWorkflow[T]) Select(ctx context.Context, id, target string) (SelectResult, error) {
	rec, err := w.Get(ctx, id)
	if err != nil {
		return SelectResult{}, err
	}
	current := w.cfg.StatusOf(rec)
	res := SelectResult{Current: current, Target: target}

	switch {
	case w.busy(id):
		res.Action = SelectionInFlight
	case target == current:
		res.Action = SelectionNoOp
	case !slices.Contains(w.cfg.Policy.Next(current), target):
		res.Action = SelectionDisabled
	default:
		res.Action = SelectionConfirm
		res.DefaultReason = w.cfg.Policy.DefaultReason(target)
	}
	return res, nil
}

// Commit sends the status change. A nil reason falls back to the status default.
func (w *StatusWorkflow[T]) Commit(ctx context.Context, id, target string, reason *string) (*T, error) {
	rec, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current := w.cfg.StatusOf(rec)
	if target == current {
		return nil, ErrStatusUnchanged
	}
	if !slices.Contains(w.cfg.Policy.Next(current), target) {
		return nil, fmt.Errorf("%s %s -> %s: %w", w.cfg.Policy.Kind(), current, target, ErrTransitionNotAllowed)
	}
	if !w.acquire(id) {
		return nil, ErrUpdateInFlight
	}
	defer w.release(id)

	text := w.cfg.Policy.DefaultReason(target)
	if reason != nil {
		text = *reason
	}

	key := querycache.Key(w.cfg.CacheKind, id)
	tok := w.cache.Begin(key)
	updated, err := w.cfg.Update(ctx, id, apiclient.StatusUpdate{Status: target, Reason: text})
	if err != nil {
		// the request may have changed the record server side; refetch on next read
		w.cache.Invalidate(key)
		log.Printf("[StatusWorkflow] %s %s -> %s failed: %v", w.cfg.Policy.Kind(), id, target, err)
		return nil, err
	}
	if !w.cache.Commit(tok, updated) {
		log.Printf("[StatusWorkflow] %s %s: response overtaken by a newer request, cache not updated", w.cfg.Policy.Kind(), id)
	}

	if w.events != nil {
		w.events.Emit(ctx, events.Event{
			Topic:    w.cfg.Topic,
			EntityID: id,
			Status:   w.cfg.StatusOf(updated),
			Reason:   text,
		})
	}
	return updated, nil
}

func (w *StatusWorkflow[T]) busy(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inFlight[id]
	return ok
}

func (w *StatusWorkflow[T]) acquire(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[id]; ok {
		return false
	}
	w.inFlight[id] = struct{}{}
	return true
}

func (w *StatusWorkflow[T]) release(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, id)
}
