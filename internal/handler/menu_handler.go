package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	menu service.MenuService
}

func NewMenuHandler(menu service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

func (h *MenuHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListMenu)
	g.GET("/categories", h.ListCategories)
	g.GET("/:id", h.GetMenuItem)
}

func (h *MenuHandler) ListMenu(c echo.Context) error {
	items, err := h.menu.List(c.Request().Context(), c.QueryParam("category"), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) ListCategories(c echo.Context) error {
	cats, err := h.menu.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	item, err := h.menu.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
