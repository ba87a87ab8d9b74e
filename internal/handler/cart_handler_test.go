package handler

import (
	"context"
	"encoding/json"
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

// --- Mock MenuService ---

type mockMenuService struct {
	listFn       func(ctx context.Context, category, search string) ([]models.MenuItem, error)
	getFn        func(ctx context.Context, id string) (*models.MenuItem, error)
	categoriesFn func(ctx context.Context) ([]string, error)
}

func (m *mockMenuService) List(ctx context.Context, category, search string) ([]models.MenuItem, error) {
	return m.listFn(ctx, category, search)
}
func (m *mockMenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return m.getFn(ctx, id)
}
func (m *mockMenuService) Categories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}

func menuWith(items ...models.MenuItem) *mockMenuService {
	return &mockMenuService{getFn: func(ctx context.Context, id string) (*models.MenuItem, error) {
		for _, it := range items {
			if it.ID == id {
				return &it, nil
			}
		}
		return nil, &apiclient.APIError{StatusCode: 404, Message: "Menu item not found"}
	}}
}

func decodeCart(t *testing.T, body []byte) dto.CartResponse {
	t.Helper()
	var resp dto.CartResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// --- Tests ---

func TestAddItem_Handler_UsesMenuPriceAndTotals(t *testing.T) {
	cart := service.NewCartService(newMemState())
	menu := menuWith(models.MenuItem{ID: "m1", Name: "Ribeye", Price: 32, Available: true})
	h := NewCartHandler(cart, menu, 0.08)

	c, rec := newContext(http.MethodPost, "/api/cart/items", `{"menuItemId":"m1","quantity":2}`, nil)
	err := h.AddItem(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec.Body.Bytes())
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 32.0, resp.Items[0].Price)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, "64.00", resp.Subtotal)
	assert.Equal(t, "5.12", resp.Tax)
	assert.Equal(t, "69.12", resp.Total)
}

func TestAddItem_Handler_UnavailableItem(t *testing.T) {
	cart := service.NewCartService(newMemState())
	h := NewCartHandler(cart, menuWith(models.MenuItem{ID: "m1", Price: 9, Available: false}), 0.08)

	c, _ := newContext(http.MethodPost, "/api/cart/items", `{"menuItemId":"m1"}`, nil)
	err := h.AddItem(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Empty(t, cart.LoadCart(context.Background(), "s1"))
}

func TestAddItem_Handler_MissingMenuItemID(t *testing.T) {
	h := NewCartHandler(service.NewCartService(newMemState()), menuWith(), 0.08)

	c, _ := newContext(http.MethodPost, "/api/cart/items", `{"quantity":1}`, nil)
	err := h.AddItem(c)

	assert.True(t, service.IsValidation(err))
}

func TestUpdateItem_Handler_ZeroQuantityRemoves(t *testing.T) {
	cart := service.NewCartService(newMemState())
	cart.AddItem(context.Background(), "s1", models.CartItem{ID: "m1", Price: 10, Quantity: 3})
	h := NewCartHandler(cart, menuWith(), 0.08)

	c, rec := newContext(http.MethodPatch, "/api/cart/items/m1", `{"quantity":0}`, nil)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	err := h.UpdateItem(c)

	assert.NoError(t, err)
	resp := decodeCart(t, rec.Body.Bytes())
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0.00", resp.Total)
}

func TestUpdateItem_Handler_UnknownItem(t *testing.T) {
	h := NewCartHandler(service.NewCartService(newMemState()), menuWith(), 0.08)

	c, _ := newContext(http.MethodPatch, "/api/cart/items/zz", `{"notes":"extra hot"}`, nil)
	c.SetParamNames("id")
	c.SetParamValues("zz")
	err := h.UpdateItem(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestSetOrderType_Handler(t *testing.T) {
	cart := service.NewCartService(newMemState())
	h := NewCartHandler(cart, menuWith(), 0.08)

	c, rec := newContext(http.MethodPut, "/api/cart/order-type", `{"orderType":"DELIVERY"}`, nil)
	assert.NoError(t, h.SetOrderType(c))
	assert.Equal(t, "DELIVERY", decodeCart(t, rec.Body.Bytes()).OrderType)

	c, _ = newContext(http.MethodPut, "/api/cart/order-type", `{"orderType":"DINE_IN"}`, nil)
	err := h.SetOrderType(c)
	assert.True(t, service.IsValidation(err))

	got, ok := cart.LoadOrderType(context.Background(), "s1")
	assert.True(t, ok)
	assert.Equal(t, models.OrderTypeDelivery, got)
}

func TestCart_Handler_IsolatedPerSession(t *testing.T) {
	cart := service.NewCartService(newMemState())
	cart.AddItem(context.Background(), "s1", models.CartItem{ID: "m1", Price: 10, Quantity: 1})
	h := NewCartHandler(cart, menuWith(), 0.08)

	c, rec := newContext(http.MethodGet, "/api/cart", "", signedIn("s2"))
	assert.NoError(t, h.GetCart(c))
	assert.Empty(t, decodeCart(t, rec.Body.Bytes()).Items)
}

func TestListMenu_Handler_PassesFilters(t *testing.T) {
	var gotCategory, gotSearch string
	svc := &mockMenuService{listFn: func(ctx context.Context, category, search string) ([]models.MenuItem, error) {
		gotCategory, gotSearch = category, search
		return []models.MenuItem{{ID: "1", Name: "Soup", Available: true}}, nil
	}}
	h := NewMenuHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/menu?category=Starters&search=sou", "", nil)
	err := h.ListMenu(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Starters", gotCategory)
	assert.Equal(t, "sou", gotSearch)
}
