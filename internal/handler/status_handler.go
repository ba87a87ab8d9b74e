package handler

import (
	"net/http"

	"github.com/aperture-dining/web-service/internal/dto"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/labstack/echo/v4"
)

// StatusHandler exposes one status workflow: the option list, the selection check and the
// confirmed commit.
type StatusHandler[T any] struct {
	wf *service.StatusWorkflow[T]
}

func NewStatusHandler[T any](wf *service.StatusWorkflow[T]) *StatusHandler[T] {
	return &StatusHandler[T]{wf: wf}
}

// RegisterRoutes mounts /:id/<field>-options, /:id/<field>/select and /:id/<field>.
func (h *StatusHandler[T]) RegisterRoutes(g *echo.Group, field string) {
	g.GET("/:id/"+field+"-options", h.Options)
	g.POST("/:id/"+field+"/select", h.Select)
	g.PUT("/:id/"+field, h.Commit)
}

// Detail returns the record the workflow operates on, from the query cache when fresh.
func (h *StatusHandler[T]) Detail(c echo.Context) error {
	rec, err := h.wf.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *StatusHandler[T]) Options(c echo.Context) error {
	rec, err := h.wf.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	current := h.wf.StatusOf(rec)
	return c.JSON(http.StatusOK, dto.StatusOptionsResponse{Current: current, Options: h.wf.Options(current)})
}

func (h *StatusHandler[T]) Select(c echo.Context) error {
	var req dto.StatusSelectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.wf.Select(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *StatusHandler[T]) Commit(c echo.Context) error {
	var req dto.StatusCommitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.wf.Commit(c.Request().Context(), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
