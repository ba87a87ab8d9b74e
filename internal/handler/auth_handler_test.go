package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock AuthService ---

type mockAuthService struct {
	loginFn       func(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error)
	registerFn    func(ctx context.Context, sess *models.Session, in apiclient.RegisterRequest) (*models.User, error)
	logoutFn      func(ctx context.Context, sess *models.Session) error
	currentUserFn func(ctx context.Context, ns string) *models.User
	revalidateFn  func(ctx context.Context, sess *models.Session) (*models.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error) {
	return m.loginFn(ctx, sess, in)
}
func (m *mockAuthService) Register(ctx context.Context, sess *models.Session, in apiclient.RegisterRequest) (*models.User, error) {
	return m.registerFn(ctx, sess, in)
}
func (m *mockAuthService) Logout(ctx context.Context, sess *models.Session) error {
	return m.logoutFn(ctx, sess)
}
func (m *mockAuthService) CurrentUser(ctx context.Context, ns string) *models.User {
	if m.currentUserFn == nil {
		return nil
	}
	return m.currentUserFn(ctx, ns)
}
func (m *mockAuthService) CacheUser(ctx context.Context, ns string, user *models.User) {}
func (m *mockAuthService) Revalidate(ctx context.Context, sess *models.Session) (*models.User, error) {
	return m.revalidateFn(ctx, sess)
}
func (m *mockAuthService) HandleSessionExpired(ctx context.Context, ns string) error {
	return nil
}

// --- Tests ---

func TestLogin_Handler_Success(t *testing.T) {
	svc := &mockAuthService{loginFn: func(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error) {
		assert.Equal(t, "s1", sess.ID)
		assert.Equal(t, "ann@example.com", in.Email)
		return &models.User{ID: "u1", Email: in.Email, Role: models.RoleMember}, nil
	}}
	h := NewAuthHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret1"}`, nil)
	err := h.Login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLogin_Handler_ShortPasswordNeverReachesBackend(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"12345"}`, nil)
	err := h.Login(c)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "password")
}

func TestLogin_Handler_BadCredentials(t *testing.T) {
	svc := &mockAuthService{loginFn: func(ctx context.Context, sess *models.Session, in apiclient.LoginRequest) (*models.User, error) {
		return nil, &apiclient.APIError{StatusCode: 401, Message: "Invalid credentials"}
	}}
	h := NewAuthHandler(svc)

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"wrong-pass"}`, nil)
	err := h.Login(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRegister_Handler_PasswordMismatch(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	body := `{"email":"ann@example.com","password":"secret1","confirmPassword":"secret2","fullName":"Ann","phone":"555"}`
	c, _ := newContext(http.MethodPost, "/api/auth/register", body, nil)
	err := h.Register(c)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{"confirmPassword": "does not match"}, ve.Fields)
}

func TestSession_Handler_Anonymous(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	c, rec := newContext(http.MethodGet, "/api/auth/session", "", nil)
	err := h.Session(c)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":false,"user":null}`, rec.Body.String())
}

func TestRevalidate_Handler_SessionExpired(t *testing.T) {
	svc := &mockAuthService{revalidateFn: func(ctx context.Context, sess *models.Session) (*models.User, error) {
		return nil, &apiclient.APIError{StatusCode: 401, Err: apiclient.ErrSessionExpired}
	}}
	h := NewAuthHandler(svc)

	c, _ := newContext(http.MethodPost, "/api/auth/revalidate", "", signedIn("s1"))
	err := h.Revalidate(c)

	assert.ErrorIs(t, err, apiclient.ErrSessionExpired)
}

func TestRevalidate_Handler_TransientFailureKeepsUser(t *testing.T) {
	svc := &mockAuthService{revalidateFn: func(ctx context.Context, sess *models.Session) (*models.User, error) {
		return &models.User{ID: "u1"}, &apiclient.APIError{StatusCode: 502, Message: "bad gateway"}
	}}
	h := NewAuthHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/auth/revalidate", "", signedIn("s1"))
	err := h.Revalidate(c)

	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestLogout_Handler(t *testing.T) {
	called := false
	svc := &mockAuthService{logoutFn: func(ctx context.Context, sess *models.Session) error {
		called = true
		return nil
	}}
	h := NewAuthHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/auth/logout", "", signedIn("s1"))
	err := h.Logout(c)

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
