package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aperture-dining/web-service/internal/models"
)

const sessionKey = "aperture_session"

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Find(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
}

type sessionRepository struct {
	state StateRepository
}

func NewSessionRepository(state StateRepository) SessionRepository {
	return &sessionRepository{state: state}
}

func (r *sessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.state.Get(ctx, id, sessionKey)
	if errors.Is(err, ErrStateNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		_ = r.state.Delete(ctx, id, sessionKey)
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.state.Set(ctx, s.ID, sessionKey, string(raw))
}
