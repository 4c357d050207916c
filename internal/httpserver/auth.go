package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/identity"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
	"github.com/Olajosh80/Realms/pkg/tokens"
)

type AuthHTTP struct {
	Svc        *identity.Service
	Users      *service.UserService
	Sessions   gate.UserResolver
	AdminRoles []string
	Secure     bool
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignUpRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.SignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidEmail), errors.Is(err, identity.ErrWeakPassword):
			l.Warn("signup_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, identity.ErrUserExists):
			l.Warn("signup_failed", "status", 409, "reason", err.Error())
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("signup_failed", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

// SignIn starts a session and tells the caller where to go next: admins and
// managers land on the admin area, everyone else on the home page.
func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signin")

	var req transport.SignInRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sess, err := h.Svc.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			l.Warn("signin_failed", "status", 401, "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		l.Error("signin_failed", "status", 500, "reason", "cannot sign in", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign in")
	}

	role, err := h.Users.RoleOf(ctx, sess.User.ID)
	if err != nil {
		l.Error("signin_role_lookup_failed", "user_id", sess.User.ID, "error", err)
		role = ""
	}

	identity.SetSessionCookies(c, sess, h.Secure)
	l.Info("signin_success", "user_id", sess.User.ID, "role", role)
	return c.JSON(http.StatusOK, echo.Map{
		"user":     sess.User,
		"role":     role,
		"redirect": service.HomeFor(role),
	})
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signout")

	var refresh string
	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		refresh = ck.Value
	}
	if err := h.Svc.SignOut(ctx, refresh); err != nil {
		l.Error("signout_failed", "status", 500, "reason", "cannot revoke session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot revoke session")
	}

	identity.ClearSessionCookies(c, h.Secure)
	l.Info("signout_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	ck, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || ck.Value == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "no refresh cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	sess, err := h.Svc.Refresh(ctx, ck.Value)
	if err != nil {
		if errors.Is(err, identity.ErrNoSession) || errors.Is(err, identity.ErrRefreshRevoked) {
			identity.ClearSessionCookies(c, h.Secure)
			l.Warn("refresh_failed", "status", 401, "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		l.Error("refresh_failed", "status", 500, "reason", "cannot refresh session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot refresh session")
	}

	identity.SetSessionCookies(c, sess, h.Secure)
	l.Info("refresh_success", "user_id", sess.User.ID)
	return c.JSON(http.StatusOK, echo.Map{"user": sess.User})
}

// User is getUser: the signed-in user with their profile, or 401.
func (h *AuthHTTP) User(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.user")

	user, err := h.Sessions.Resolve(c)
	if err != nil {
		l.Error("get_user_failed", "status", 500, "reason", "cannot resolve session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve session")
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.Users.Profile(ctx, user.ID)
	if err != nil {
		l.Error("get_user_failed", "status", 500, "reason", "cannot load profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}
	role := ""
	if profile != nil {
		role = profile.Role
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":     user,
		"profile":  profile,
		"is_admin": hasRole(h.AdminRoles, role),
	})
}
