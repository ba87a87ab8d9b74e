package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	admin service.AdminService
	now   func() time.Time
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin, now: time.Now}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.Dashboard)

	g.GET("/menu", h.ListMenuItems)
	g.POST("/menu", h.CreateMenuItem)
	g.PUT("/menu/:id", h.UpdateMenuItem)
	g.DELETE("/menu/:id", h.DeleteMenuItem)
	g.PATCH("/menu/:id/availability", h.SetMenuItemAvailability)

	g.GET("/orders", h.ListOrders)
	g.GET("/reservations", h.ListReservations)

	g.GET("/tables", h.ListTables)
	g.POST("/tables", h.CreateTable)
	g.PUT("/tables/:id", h.UpdateTable)
	g.DELETE("/tables/:id", h.DeleteTable)

	g.GET("/users", h.ListUsers)
	g.PATCH("/users/:id/role", h.UpdateUserRole)
	g.PATCH("/users/:id/active", h.SetUserActive)
}

// listQuery reads ?search=, ?sort= and ?order=asc|desc.
func listQuery(c echo.Context) service.ListQuery {
	return service.ListQuery{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort"),
		Desc:   strings.EqualFold(c.QueryParam("order"), "desc"),
	}
}

func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" filter")
	}
	return &v, nil
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.admin.Dashboard(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListMenuItems(c echo.Context) error {
	available, err := optionalBool(c, "available")
	if err != nil {
		return err
	}
	items, err := h.admin.ListMenuItems(c.Request().Context(), service.MenuListFilter{
		Category:  c.QueryParam("category"),
		Available: available,
	}, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewListResponse(items))
}

func menuInput(req dto.MenuItemRequest) apiclient.MenuItemInput {
	return apiclient.MenuItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		Vegetarian:      req.Vegetarian,
		Spicy:           req.Spicy,
		PreparationTime: req.PreparationTime,
	}
}

func (h *AdminHandler) CreateMenuItem(c echo.Context) error {
	var req dto.MenuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.admin.CreateMenuItem(c.Request().Context(), menuInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) UpdateMenuItem(c echo.Context) error {
	var req dto.MenuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.admin.UpdateMenuItem(c.Request().Context(), c.Param("id"), menuInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	if err := h.admin.DeleteMenuItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) SetMenuItemAvailability(c echo.Context) error {
	var req dto.AvailabilityToggleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.admin.SetMenuItemAvailability(c.Request().Context(), c.Param("id"), req.Available)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.admin.ListOrders(c.Request().Context(), service.OrderListFilter{
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("paymentStatus"),
		OrderType:     c.QueryParam("orderType"),
	}, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewListResponse(orders))
}

func (h *AdminHandler) ListReservations(c echo.Context) error {
	list, err := h.admin.ListReservations(c.Request().Context(), service.ReservationListFilter{
		Status: c.QueryParam("status"),
		Date:   c.QueryParam("date"),
	}, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewListResponse(list))
}

func (h *AdminHandler) ListTables(c echo.Context) error {
	active, err := optionalBool(c, "active")
	if err != nil {
		return err
	}
	minCapacity := 0
	if raw := c.QueryParam("minCapacity"); raw != "" {
		if minCapacity, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid minCapacity filter")
		}
	}
	tables, err := h.admin.ListTables(c.Request().Context(), service.TableListFilter{
		Active:      active,
		MinCapacity: minCapacity,
	}, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewListResponse(tables))
}

func tableInput(req dto.TableRequest) apiclient.TableInput {
	return apiclient.TableInput{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Active:      req.Active,
	}
}

func (h *AdminHandler) CreateTable(c echo.Context) error {
	var req dto.TableRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	table, err := h.admin.CreateTable(c.Request().Context(), tableInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, table)
}

func (h *AdminHandler) UpdateTable(c echo.Context) error {
	var req dto.TableRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	table, err := h.admin.UpdateTable(c.Request().Context(), c.Param("id"), tableInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, table)
}

func (h *AdminHandler) DeleteTable(c echo.Context) error {
	if err := h.admin.DeleteTable(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	active, err := optionalBool(c, "active")
	if err != nil {
		return err
	}
	users, err := h.admin.ListUsers(c.Request().Context(), service.UserListFilter{
		Role:   c.QueryParam("role"),
		Active: active,
	}, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewListResponse(users))
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req dto.UserRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.admin.UpdateUserRole(c.Request().Context(), c.Param("id"), models.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) SetUserActive(c echo.Context) error {
	var req dto.UserActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.admin.SetUserActive(c.Request().Context(), c.Param("id"), req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
