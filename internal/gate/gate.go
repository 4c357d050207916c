// Package gate keeps unauthenticated callers and callers without a privileged
// role away from the admin area. Edge runs before routing; ViewGate runs again
// when an admin view is mounted. Both fail closed and neither trusts the other.
package gate

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/identity"
)

const (
	ContextUserKey = "gate.user"
	ContextRoleKey = "gate.role"
	contextViewKey = "gate.view"
)

type UserResolver interface {
	Resolve(c echo.Context) (*identity.User, error)
}

// RoleLookup returns "" without an error when the user has no profile.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (string, error)
}

func allowed(set []string, role string) bool {
	if role == "" {
		return false
	}
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}

func signInURL(signInPath, returnTo string) string {
	return signInPath + "?" + url.Values{"returnTo": {returnTo}}.Encode()
}

// Protected reports whether path equals one of prefixes or lies beneath one.
func Protected(prefixes []string, path string) bool {
	for _, p := range prefixes {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func UserFromContext(c echo.Context) *identity.User {
	u, _ := c.Get(ContextUserKey).(*identity.User)
	return u
}

func RoleFromContext(c echo.Context) string {
	r, _ := c.Get(ContextRoleKey).(string)
	return r
}
