package gate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/pkg/logging"
)

// Edge guards every request under Prefixes before any handler runs.
type Edge struct {
	Users    UserResolver
	Roles    RoleLookup
	Prefixes []string
	Allowed  []string

	SignInPath string
	HomePath   string
}

func NewEdge(users UserResolver, roles RoleLookup, prefixes, allowedRoles []string) *Edge {
	return &Edge{
		Users:      users,
		Roles:      roles,
		Prefixes:   prefixes,
		Allowed:    allowedRoles,
		SignInPath: "/signin",
		HomePath:   "/",
	}
}

// Middleware is registered with e.Use after request logging, so the context
// logger already carries the request id.
func (g *Edge) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !Protected(g.Prefixes, path) {
				return next(c)
			}

			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("component", "gate.edge", "path", path)

			user, err := g.Users.Resolve(c)
			if err != nil {
				l.Warn("edge_denied", "reason", "session lookup failed", "error", err)
				return c.Redirect(http.StatusTemporaryRedirect, signInURL(g.SignInPath, path))
			}
			if user == nil {
				l.Info("edge_denied", "reason", "no session")
				return c.Redirect(http.StatusTemporaryRedirect, signInURL(g.SignInPath, path))
			}

			role, err := g.Roles.RoleOf(ctx, user.ID)
			if err != nil {
				l.Warn("edge_denied", "reason", "profile lookup failed", "user_id", user.ID, "error", err)
				return c.Redirect(http.StatusTemporaryRedirect, g.HomePath)
			}
			if !allowed(g.Allowed, role) {
				l.Info("edge_denied", "reason", "role not allowed", "user_id", user.ID, "role", role)
				return c.Redirect(http.StatusTemporaryRedirect, g.HomePath)
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextRoleKey, role)
			return next(c)
		}
	}
}
