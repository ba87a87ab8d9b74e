package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) ListMenu(ctx context.Context, f MenuFilter) ([]models.MenuItem, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.AvailableOnly {
		q.Set("available", "true")
	}
	var items []models.MenuItem
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/menu", query: q, anonymous: true}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/menu/" + url.PathEscape(id), anonymous: true}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/menu", body: in}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, in MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if _, err := c.do(ctx, request{method: http.MethodPut, path: "/api/menu/" + url.PathEscape(id), body: in}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/api/menu/" + url.PathEscape(id)}, nil)
	return err
}

func (c *Client) SetMenuItemAvailability(ctx context.Context, id string, available bool) (*models.MenuItem, error) {
	var item models.MenuItem
	body := map[string]bool{"available": available}
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/menu/" + url.PathEscape(id) + "/availability", body: body}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
