package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/util"
)

// fail logs err under event and turns it into the HTTP error matching its
// service sentinel. Validation reasons are passed through to the caller.
func fail(l *slog.Logger, event string, err error, internal string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		msg := service.ValidationMessage(err)
		l.Warn(event, "status", 400, "reason", msg, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "already exists", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	}
	l.Error(event, "status", 500, "reason", internal, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, internal)
}

func paramID(c echo.Context, l *slog.Logger, event string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn(event, "status", 400, "reason", "id not a uuid", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}
	return id, nil
}

func page(c echo.Context) (pageNum, offset, limit int) {
	pageNum = util.ParseIntDefault(c.QueryParam("page"), 1)
	if pageNum < 1 {
		pageNum = 1
	}
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(pageNum, size)
	return pageNum, offset, limit
}

func paged(items any, pageNum, offset, limit int, total int64) map[string]any {
	return map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        pageNum,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    pageNum > 1,
			"has_next":    int64(offset+limit) < total,
		},
	}
}

func hasRole(set []string, role string) bool {
	for _, r := range set {
		if r == role && role != "" {
			return true
		}
	}
	return false
}
