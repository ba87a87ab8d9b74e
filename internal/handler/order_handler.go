package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/middleware"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes mounts checkout for any session and the order history behind requireUser.
func (h *OrderHandler) RegisterRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.POST("/checkout", h.Checkout)
	g.GET("/orders/my", h.ListMyOrders, requireUser)
	g.GET("/orders/:id", h.GetOrder, requireUser)
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.Checkout(c.Request().Context(), middleware.SessionFrom(c).ID, service.CheckoutInput{
		OrderType:       models.OrderType(req.OrderType),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		PickupTime:      req.PickupTime,
		ReservationID:   req.ReservationID,
		Notes:           req.Notes,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	orders, err := h.orders.MyOrders(c.Request().Context())
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
