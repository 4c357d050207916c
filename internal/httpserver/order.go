package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type OrderHTTP struct {
	Svc        *service.OrderService
	Sessions   gate.UserResolver
	Roles      gate.RoleLookup
	AdminRoles []string
}

// CreateOrder accepts guest orders. A signed-in caller always owns the order.
func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Sessions.Resolve(c)
	if err != nil {
		l.Error("order_create_failed", "status", 500, "reason", "cannot resolve session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve session")
	}
	req.UserID = nil
	if user != nil {
		req.UserID = &user.ID
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "order_create_failed", err, "cannot create order")
	}

	l.Info("order_create_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

// ListOrders lists the caller's own orders. Admin roles may list anyone's
// through user_id, or everything when it is absent.
func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	user, err := h.Sessions.Resolve(c)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "reason", "cannot resolve session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve session")
	}
	if user == nil {
		l.Warn("list_orders_failed", "status", 401, "reason", "no session")
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	role, err := h.Roles.RoleOf(ctx, user.ID)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "reason", "cannot load role", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load role")
	}

	f := service.OrderFilter{Status: c.QueryParam("status")}
	switch v := c.QueryParam("user_id"); {
	case !hasRole(h.AdminRoles, role):
		f.UserID = &user.ID
	case v != "":
		id, err := uuid.Parse(v)
		if err != nil {
			l.Warn("list_orders_failed", "status", 400, "reason", "user_id not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "user_id not a uuid")
		}
		f.UserID = &id
	}

	orders, err := h.Svc.ListOrders(ctx, f)
	if err != nil {
		return fail(l, "list_orders_failed", err, "cannot get orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

func (h *OrderHTTP) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.admin_list")

	orders, err := h.Svc.ListOrders(ctx, service.OrderFilter{Status: c.QueryParam("status")})
	if err != nil {
		return fail(l, "list_orders_failed", err, "cannot get orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := paramID(c, l, "get_order_failed")
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return fail(l, "get_order_failed", err, "cannot get order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := paramID(c, l, "order_status_failed")
	if err != nil {
		return err
	}
	var req transport.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "order_status_failed", err, "cannot update order")
	}

	l.Info("order_status_success", "order_id", id, "order_status", req.Status)
	return c.JSON(http.StatusOK, order)
}
