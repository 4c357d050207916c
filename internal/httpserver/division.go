package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type DivisionHTTP struct {
	Svc *service.DivisionService
}

func (h *DivisionHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "division.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_divisions_failed", err, "cannot get divisions")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *DivisionHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "division.get")

	id, err := paramID(c, l, "get_division_failed")
	if err != nil {
		return err
	}
	d, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_division_failed", err, "cannot get division")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DivisionHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "division.create")

	var req transport.DivisionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("division_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	d, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "division_create_failed", err, "cannot create division")
	}

	l.Info("division_create_success", "division_id", d.ID)
	return c.JSON(http.StatusCreated, d)
}

func (h *DivisionHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "division.patch")

	id, err := paramID(c, l, "division_patch_failed")
	if err != nil {
		return err
	}
	var req transport.DivisionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("division_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	d, err := h.Svc.Patch(ctx, id, req)
	if err != nil {
		return fail(l, "division_patch_failed", err, "cannot update division")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DivisionHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "division.delete")

	id, err := paramID(c, l, "division_delete_failed")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "division_delete_failed", err, "cannot delete division")
	}
	return c.NoContent(http.StatusNoContent)
}
