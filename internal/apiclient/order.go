package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aperture-dining/web-service/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, in OrderRequest) (*models.Order, error) {
	var o models.Order
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/orders", body: in}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders/my"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders/" + url.PathEscape(id)}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.PaymentStatus != "" {
		q.Set("paymentStatus", f.PaymentStatus)
	}
	if f.OrderType != "" {
		q.Set("orderType", f.OrderType)
	}
	var out []models.Order
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders/admin", query: q}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, in StatusUpdate) (*models.Order, error) {
	var o models.Order
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/orders/admin/" + url.PathEscape(id) + "/status", body: in}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id string, in StatusUpdate) (*models.Order, error) {
	var o models.Order
	if _, err := c.do(ctx, request{method: http.MethodPatch, path: "/api/orders/admin/" + url.PathEscape(id) + "/payment-status", body: in}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
