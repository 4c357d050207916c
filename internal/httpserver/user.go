package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	profiles, err := h.Svc.ListProfiles(ctx)
	if err != nil {
		return fail(l, "list_users_failed", err, "cannot get users")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": profiles})
}

func (h *UserHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	id, err := paramID(c, l, "role_update_failed")
	if err != nil {
		return err
	}
	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("role_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.UpdateRole(ctx, id, req.Role)
	if err != nil {
		return fail(l, "role_update_failed", err, "cannot update role")
	}

	actor := gate.UserFromContext(c)
	if actor != nil {
		l = l.With("actor_id", actor.ID)
	}
	l.Info("role_update_success", "user_id", id, "role", req.Role)
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := paramID(c, l, "user_delete_failed")
	if err != nil {
		return err
	}
	if actor := gate.UserFromContext(c); actor != nil && actor.ID == id {
		l.Warn("user_delete_failed", "status", 400, "reason", "cannot delete own profile")
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete own profile")
	}
	if err := h.Svc.DeleteProfile(ctx, id); err != nil {
		return fail(l, "user_delete_failed", err, "cannot delete user")
	}
	return c.NoContent(http.StatusNoContent)
}
