package gate

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/pkg/logging"
)

type ViewStatus int

const (
	ViewChecking ViewStatus = iota
	ViewGranted
	ViewDenied
)

func (s ViewStatus) String() string {
	switch s {
	case ViewGranted:
		return "granted"
	case ViewDenied:
		return "denied"
	default:
		return "checking"
	}
}

// View is one mount of a protected view. It starts in ViewChecking and
// settles exactly once.
type View struct {
	mu     sync.Mutex
	status ViewStatus
	reason string
}

func (v *View) Status() ViewStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *View) Reason() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reason
}

func (v *View) settle(s ViewStatus, reason string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != ViewChecking {
		return
	}
	v.status = s
	v.reason = reason
}

// ViewGate repeats the session and role checks for each mounted admin view.
// Any failure sends the caller to sign-in with ReturnTo.
type ViewGate struct {
	Users   UserResolver
	Roles   RoleLookup
	Allowed []string

	SignInPath string
	ReturnTo   string

	// OnMount, when set, observes each view before its check starts.
	OnMount func(*View)
}

func NewViewGate(users UserResolver, roles RoleLookup, allowedRoles []string) *ViewGate {
	return &ViewGate{
		Users:      users,
		Roles:      roles,
		Allowed:    allowedRoles,
		SignInPath: "/signin",
		ReturnTo:   "/admin",
	}
}

func (g *ViewGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := &View{}
			c.Set(contextViewKey, v)
			if g.OnMount != nil {
				g.OnMount(v)
			}

			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("component", "gate.view", "path", c.Request().URL.Path)

			deny := func(reason string, args ...any) error {
				v.settle(ViewDenied, reason)
				l.Warn("view_denied", append([]any{"reason", reason}, args...)...)
				return c.Redirect(http.StatusTemporaryRedirect, signInURL(g.SignInPath, g.ReturnTo))
			}

			user, err := g.Users.Resolve(c)
			if err != nil {
				return deny("session lookup failed", "error", err)
			}
			if user == nil {
				return deny("no session")
			}

			role, err := g.Roles.RoleOf(ctx, user.ID)
			if err != nil {
				return deny("profile lookup failed", "user_id", user.ID, "error", err)
			}
			if role == "" {
				return deny("no profile", "user_id", user.ID)
			}
			if !allowed(g.Allowed, role) {
				return deny("role not allowed", "user_id", user.ID, "role", role)
			}

			v.settle(ViewGranted, "")
			c.Set(ContextUserKey, user)
			c.Set(ContextRoleKey, role)
			return next(c)
		}
	}
}

func ViewFromContext(c echo.Context) *View {
	v, _ := c.Get(contextViewKey).(*View)
	return v
}
