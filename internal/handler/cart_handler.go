package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cart    service.CartService
	menu    service.MenuService
	taxRate float64
}

func NewCartHandler(cart service.CartService, menu service.MenuService, taxRate float64) *CartHandler {
	return &CartHandler{cart: cart, menu: menu, taxRate: taxRate}
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetCart)
	g.DELETE("", h.ClearCart)
	g.POST("/items", h.AddItem)
	g.PATCH("/items/:id", h.UpdateItem)
	g.DELETE("/items/:id", h.RemoveItem)
	g.PUT("/order-type", h.SetOrderType)
}

func (h *CartHandler) respond(c echo.Context, items []models.CartItem) error {
	orderType, _ := h.cart.LoadOrderType(c.Request().Context(), middleware.SessionFrom(c).ID)
	return c.JSON(http.StatusOK, dto.ToCartResponse(items, orderType, h.taxRate))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return h.respond(c, h.cart.LoadCart(c.Request().Context(), middleware.SessionFrom(c).ID))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.cart.Clear(c.Request().Context(), middleware.SessionFrom(c).ID)
	return h.respond(c, nil)
}

// AddItem takes name and price from the menu, never from the request.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req dto.AddCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := h.menu.Get(ctx, req.MenuItemID)
	if err != nil {
		return err
	}
	if !item.Available {
		return echo.NewHTTPError(http.StatusBadRequest, "menu item is not available")
	}

	line := models.NewCartItem(*item, req.Quantity)
	line.Notes = req.Notes
	items := h.cart.AddItem(ctx, middleware.SessionFrom(c).ID, line)
	return h.respond(c, items)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req dto.UpdateCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Quantity == nil && req.Notes == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity or notes is required")
	}

	ctx := c.Request().Context()
	ns := middleware.SessionFrom(c).ID
	id := c.Param("id")
	var (
		items []models.CartItem
		err   error
	)
	if req.Notes != nil {
		if items, err = h.cart.UpdateNotes(ctx, ns, id, *req.Notes); err != nil {
			return serviceError(err)
		}
	}
	if req.Quantity != nil {
		if items, err = h.cart.UpdateQuantity(ctx, ns, id, *req.Quantity); err != nil {
			return serviceError(err)
		}
	}
	return h.respond(c, items)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	items := h.cart.RemoveItem(c.Request().Context(), middleware.SessionFrom(c).ID, c.Param("id"))
	return h.respond(c, items)
}

func (h *CartHandler) SetOrderType(c echo.Context) error {
	var req dto.OrderTypeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	ns := middleware.SessionFrom(c).ID
	if err := h.cart.SaveOrderType(ctx, ns, models.OrderType(req.OrderType)); err != nil {
		return serviceError(err)
	}
	return h.respond(c, h.cart.LoadCart(ctx, ns))
}
