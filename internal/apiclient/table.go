package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var out []models.Table
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/tables"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTable(ctx context.Context, in TableInput) (*models.Table, error) {
	var t models.Table
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/tables", body: in}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTable(ctx context.Context, id string, in TableInput) (*models.Table, error) {
	var t models.Table
	if _, err := c.do(ctx, request{method: http.MethodPut, path: "/api/tables/" + url.PathEscape(id), body: in}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTable(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/api/tables/" + url.PathEscape(id)}, nil)
	return err
}
