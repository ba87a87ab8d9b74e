package apiclient

import (
	"context"
	"net/http"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/profile"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, request{method: http.MethodPut, path: "/api/profile", body: in}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, in PasswordChange) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: "/api/profile/password", body: in}, nil)
	return err
}
