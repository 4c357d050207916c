package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.submit")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("contact_submit_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sub, err := h.Svc.Submit(ctx, req)
	if err != nil {
		return fail(l, "contact_submit_failed", err, "cannot send message")
	}

	l.Info("contact_submit_success", "submission_id", sub.ID)
	return c.JSON(http.StatusCreated, sub)
}

func (h *ContactHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.list")

	subs, err := h.Svc.ListSubmissions(ctx)
	if err != nil {
		return fail(l, "list_contacts_failed", err, "cannot get submissions")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": subs})
}

func (h *ContactHTTP) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "newsletter.subscribe")

	var req transport.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("subscribe_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sub, err := h.Svc.Subscribe(ctx, req.Email)
	if err != nil {
		return fail(l, "subscribe_failed", err, "cannot subscribe")
	}
	return c.JSON(http.StatusOK, sub)
}
