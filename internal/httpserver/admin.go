package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type AdminHTTP struct {
	Svc *service.DashboardService
}

// Dashboard is the admin landing view.
func (h *AdminHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dashboard")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(l, "dashboard_failed", err, "cannot load dashboard")
	}

	view := "checking"
	if v := gate.ViewFromContext(c); v != nil {
		view = v.Status().String()
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats": stats,
		"view":  view,
		"user":  gate.UserFromContext(c),
		"role":  gate.RoleFromContext(c),
	})
}
