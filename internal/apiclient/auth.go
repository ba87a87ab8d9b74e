package apiclient

import (
	"context"
	"net/http"

	"github.com/aperture-dining/web-service/internal/models"
)

// Login authenticates against the backend and returns the user plus the cookies the
// backend set for the session.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*models.User, map[string]string, error) {
	var user models.User
	resp, err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: in, anonymous: true}, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, cookieValues(resp), nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*models.User, map[string]string, error) {
	var user models.User
	resp, err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: in, anonymous: true}, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, cookieValues(resp), nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/logout", anonymous: true}, nil)
	return err
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func cookieValues(resp *http.Response) map[string]string {
	cookies := make(map[string]string)
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck.Value
	}
	return cookies
}
