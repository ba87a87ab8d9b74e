package handler

import (
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
	"github.com/labstack/echo/v4"
)

// --- In-memory StateRepository ---

type memState struct {
	mu   sync.Mutex
	data map[string]string
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
	n, _ := strconv.ParseInt(m.data[ns+"/"+key], 10, 64)
	n++
	m.data[ns+"/"+key] = strconv.FormatInt(n, 10)
	return n, nil
}

// newContext builds an echo context with the validator registered and sess attached.
func newContext(method, target, body string, sess *models.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess == nil {
		sess = &models.Session{ID: "s1"}
	}
	middleware.SetSession(c, sess)
	return c, rec
}

func signedIn(id string) *models.Session {
	return &models.Session{ID: id, Cookies: map[string]string{"token": "abc"}}
}
