package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/pkg/logging"
	"github.com/Olajosh80/Realms/pkg/tokens"
)

func SetSessionCookies(c echo.Context, sess *Session, secure bool) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, sess.AccessToken, "/", sess.AccessExp, secure))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, sess.RefreshToken, "/", sess.RefreshExp, secure))
}

func ClearSessionCookies(c echo.Context, secure bool) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", secure))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/", secure))
}

func cookieValue(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// SessionResolver reads the session cookies of a request. With Refresh set, an
// expired access token is rotated through the refresh cookie and the new
// cookies are written to the response.
type SessionResolver struct {
	Svc     *Service
	Refresh bool
	Secure  bool
}

// Resolve returns nil, nil for an anonymous caller. Errors are infrastructure failures.
func (r *SessionResolver) Resolve(c echo.Context) (*User, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("component", "identity.resolve")

	access := cookieValue(c.Request(), tokens.AccessCookie)
	u, err := r.Svc.GetUser(ctx, access)
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrNoSession) && access == "":
		// fall through to refresh
	case errors.Is(err, ErrNoSession):
		return nil, nil
	default:
		return nil, err
	}

	if !r.Refresh {
		return nil, nil
	}
	refresh := cookieValue(c.Request(), tokens.RefreshCookie)
	if refresh == "" {
		return nil, nil
	}

	sess, err := r.Svc.Refresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrNoSession) || errors.Is(err, ErrRefreshRevoked) {
			l.Info("session_refresh_rejected", "reason", err.Error())
			ClearSessionCookies(c, r.Secure)
			return nil, nil
		}
		return nil, err
	}
	SetSessionCookies(c, sess, r.Secure)
	replaceRequestCookie(c.Request(), tokens.AccessCookie, sess.AccessToken)
	replaceRequestCookie(c.Request(), tokens.RefreshCookie, sess.RefreshToken)
	return &sess.User, nil
}

// replaceRequestCookie lets later checks in the same request verify the
// rotated tokens instead of the spent ones.
func replaceRequestCookie(r *http.Request, name, value string) {
	cookies := r.Cookies()
	r.Header.Del("Cookie")
	found := false
	for _, ck := range cookies {
		if ck.Name == name {
			ck.Value = value
			found = true
		}
		r.AddCookie(ck)
	}
	if !found {
		r.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}
