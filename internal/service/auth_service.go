package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
)

type AuthBackend interface {
	Login(ctx context.Context, in apiclient.LoginRequest) (*models.User, map[string]string, error)
	Register(ctx context.Context, in apiclient.RegisterRequest) (*models.User, map[string]string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
}

// AuthService owns the session's signed-in user: the backend cookies on the session record
// and the cached user object under UserKey.
type AuthService interface {
	Login(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error)
	Register(ctx context.Context, sess *models.Session, in apiclient.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context, sess *models.Session) error
	CurrentUser(ctx context.Context, ns string) *models.User
	CacheUser(ctx context.Context, ns string, user *models.User)
	Revalidate(ctx context.Context, sess *models.Session) (*models.User, error)
	HandleSessionExpired(ctx context.Context, ns string) error
}

type authService struct {
	backend  AuthBackend
	sessions repository.SessionRepository
	state    repository.StateRepository
}

func NewAuthService(backend AuthBackend, sessions repository.SessionRepository, state repository.StateRepository) AuthService {
	return &authService{backend: backend, sessions: sessions, state: state}
}

func (s *authService) Login(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error) {
	user, cookies, err := s.backend.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.signIn(ctx, sess, user, cookies); err != nil {
		return nil, err
	}
	log.Printf("[Auth] session %s signed in as %s", sess.ID, user.ID)
	return user, nil
}

func (s *authService) Register(ctx context.Context, sess *models.Session, in apiclient.RegisterRequest) (*models.User, error) {
	user, cookies, err := s.backend.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.signIn(ctx, sess, user, cookies); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) signIn(ctx context.Context, sess *models.Session, user *models.User, cookies map[string]string) error {
	sess.Cookies = cookies
	sess.LastSeenAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}
	s.CacheUser(ctx, sess.ID, user)
	return nil
}

// Logout clears local session state even when the backend call fails.
func (s *authService) Logout(ctx context.Context, sess *models.Session) error {
	if sess.Authenticated() {
		if err := s.backend.Logout(ctx); err != nil {
			log.Printf("[Auth] backend logout for %s: %v", sess.ID, err)
		}
	}
	sess.Cookies = nil
	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}
	return s.state.Delete(ctx, sess.ID, UserKey, CartKey, OrderTypeKey)
}

// CurrentUser returns the cached user, or nil when signed out. Unreadable data is removed.
func (s *authService) CurrentUser(ctx context.Context, ns string) *models.User {
	raw, err := s.state.Get(ctx, ns, UserKey)
	if err != nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		_ = s.state.Delete(ctx, ns, UserKey)
		return nil
	}
	return &user
}

func (s *authService) CacheUser(ctx context.Context, ns string, user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.state.Set(ctx, ns, UserKey, string(raw)); err != nil {
		log.Printf("[Auth] cache user for %s: %v", ns, err)
	}
}

// Revalidate asks the backend who the session belongs to and refreshes the cached user.
func (s *authService) Revalidate(ctx context.Context, sess *models.Session) (*models.User, error) {
	if !sess.Authenticated() {
		_ = s.state.Delete(ctx, sess.ID, UserKey)
		return nil, nil
	}
	user, err := s.backend.Me(ctx)
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return nil, err
	}
	if err != nil {
		return s.CurrentUser(ctx, sess.ID), err
	}
	s.CacheUser(ctx, sess.ID, user)
	return user, nil
}

func (s *authService) HandleSessionExpired(ctx context.Context, ns string) error {
	sess, err := s.sessions.Find(ctx, ns)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}
	if sess != nil {
		sess.Cookies = nil
		if err := s.sessions.Save(ctx, sess); err != nil {
			return err
		}
	}
	log.Printf("[Auth] session %s expired", ns)
	return s.state.Delete(ctx, ns, UserKey)
}
