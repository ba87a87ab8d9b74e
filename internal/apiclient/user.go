package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/admin/users"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var u models.User
	body := map[string]models.Role{"role": role}
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/admin/users/" + url.PathEscape(id) + "/role", body: body}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) SetUserActive(ctx context.Context, id string, active bool) (*models.User, error) {
	var u models.User
	body := map[string]bool{"active": active}
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/admin/users/" + url.PathEscape(id) + "/active", body: body}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
