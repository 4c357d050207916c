package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olajosh80/Realms/internal/identity"
)

type fakeUsers struct {
	user *identity.User
	err  error
	wait chan struct{}
}

func (f *fakeUsers) Resolve(echo.Context) (*identity.User, error) {
	if f.wait != nil {
		<-f.wait
	}
	return f.user, f.err
}

type fakeRoles struct {
	roles map[uuid.UUID]string
	err   error
	calls int
}

func (f *fakeRoles) RoleOf(_ context.Context, id uuid.UUID) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.roles[id], nil
}

func adminServer(mw echo.MiddlewareFunc, pre bool) *echo.Echo {
	e := echo.New()
	if pre {
		e.Pre(mw)
	}
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "page:"+c.Request().URL.Path+":"+RoleFromContext(c))
	}
	if pre {
		e.GET("/admin/goods", handler)
		e.GET("/admin", handler)
		e.GET("/shop", handler)
		e.GET("/administrator", handler)
	} else {
		e.GET("/admin/goods", handler, mw)
	}
	return e
}

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func returnTo(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	u, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	return u.Path, u.Query().Get("returnTo")
}

func TestEdge(t *testing.T) {
	t.Parallel()

	admin := &identity.User{ID: uuid.New(), Email: "admin@example.com"}
	customer := &identity.User{ID: uuid.New(), Email: "c@example.com"}
	orphan := &identity.User{ID: uuid.New(), Email: "o@example.com"}
	roles := map[uuid.UUID]string{admin.ID: "admin", customer.ID: "customer"}

	tests := []struct {
		name       string
		users      *fakeUsers
		rolesErr   error
		path       string
		wantStatus int
		wantLoc    string
		wantReturn string
		wantBody   string
	}{
		{name: "no session", users: &fakeUsers{}, path: "/admin/goods", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/signin", wantReturn: "/admin/goods"},
		{name: "session error", users: &fakeUsers{err: errors.New("db down")}, path: "/admin", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/signin", wantReturn: "/admin"},
		{name: "customer", users: &fakeUsers{user: customer}, path: "/admin/goods", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/"},
		{name: "no profile", users: &fakeUsers{user: orphan}, path: "/admin/goods", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/"},
		{name: "profile error", users: &fakeUsers{user: admin}, rolesErr: errors.New("timeout"), path: "/admin/goods", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/"},
		{name: "admin", users: &fakeUsers{user: admin}, path: "/admin/goods", wantStatus: http.StatusOK, wantBody: "page:/admin/goods:admin"},
		{name: "public path", users: &fakeUsers{}, path: "/shop", wantStatus: http.StatusOK, wantBody: "page:/shop:"},
		{name: "prefix is not a path segment", users: &fakeUsers{}, path: "/administrator", wantStatus: http.StatusOK, wantBody: "page:/administrator:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewEdge(tt.users, &fakeRoles{roles: roles, err: tt.rolesErr}, []string{"/admin"}, []string{"admin"})
			rec := serve(adminServer(g.Middleware(), true), tt.path)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLoc != "" {
				loc, ret := returnTo(t, rec)
				assert.Equal(t, tt.wantLoc, loc)
				assert.Equal(t, tt.wantReturn, ret)
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestEdge_SkipsRoleLookupWithoutSession(t *testing.T) {
	t.Parallel()
	roles := &fakeRoles{}
	g := NewEdge(&fakeUsers{}, roles, []string{"/admin"}, []string{"admin"})

	serve(adminServer(g.Middleware(), true), "/admin/goods")
	assert.Zero(t, roles.calls)
}

func TestEdge_ManagerNeedsConfiguredRole(t *testing.T) {
	t.Parallel()
	mgr := &identity.User{ID: uuid.New()}
	roles := &fakeRoles{roles: map[uuid.UUID]string{mgr.ID: "manager"}}

	strict := NewEdge(&fakeUsers{user: mgr}, roles, []string{"/admin"}, []string{"admin"})
	assert.Equal(t, http.StatusTemporaryRedirect, serve(adminServer(strict.Middleware(), true), "/admin").Code)

	relaxed := NewEdge(&fakeUsers{user: mgr}, roles, []string{"/admin"}, []string{"admin", "manager"})
	assert.Equal(t, http.StatusOK, serve(adminServer(relaxed.Middleware(), true), "/admin").Code)
}

func TestProtected(t *testing.T) {
	t.Parallel()
	prefixes := []string{"/admin/", "/ops"}
	assert.True(t, Protected(prefixes, "/admin"))
	assert.True(t, Protected(prefixes, "/admin/users/1"))
	assert.True(t, Protected(prefixes, "/ops"))
	assert.False(t, Protected(prefixes, "/adminx"))
	assert.False(t, Protected(prefixes, "/"))
	assert.False(t, Protected(nil, "/admin"))
}

func TestViewGate_DeniesToSignIn(t *testing.T) {
	t.Parallel()

	customer := &identity.User{ID: uuid.New()}
	tests := []struct {
		name   string
		users  *fakeUsers
		roles  *fakeRoles
		reason string
	}{
		{"no session", &fakeUsers{}, &fakeRoles{}, "no session"},
		{"session error", &fakeUsers{err: errors.New("boom")}, &fakeRoles{}, "session lookup failed"},
		{"no profile", &fakeUsers{user: customer}, &fakeRoles{}, "no profile"},
		{"profile error", &fakeUsers{user: customer}, &fakeRoles{err: errors.New("boom")}, "profile lookup failed"},
		{"wrong role", &fakeUsers{user: customer}, &fakeRoles{roles: map[uuid.UUID]string{customer.ID: "customer"}}, "role not allowed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var mounted *View
			g := NewViewGate(tt.users, tt.roles, []string{"admin"})
			g.OnMount = func(v *View) { mounted = v }

			rec := serve(adminServer(g.Middleware(), false), "/admin/goods")

			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			loc, ret := returnTo(t, rec)
			assert.Equal(t, "/signin", loc)
			assert.Equal(t, "/admin", ret)
			require.NotNil(t, mounted)
			assert.Equal(t, ViewDenied, mounted.Status())
			assert.Equal(t, tt.reason, mounted.Reason())
		})
	}
}

func TestViewGate_CheckingThenGranted(t *testing.T) {
	t.Parallel()

	admin := &identity.User{ID: uuid.New()}
	users := &fakeUsers{user: admin, wait: make(chan struct{})}
	roles := &fakeRoles{roles: map[uuid.UUID]string{admin.ID: "admin"}}

	mounted := make(chan *View, 1)
	g := NewViewGate(users, roles, []string{"admin"})
	g.OnMount = func(v *View) { mounted <- v }

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, ViewFromContext(c).Status().String())
	}, g.Middleware())

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- serve(e, "/admin") }()

	v := <-mounted
	assert.Equal(t, ViewChecking, v.Status())
	assert.Equal(t, "checking", v.Status().String())

	close(users.wait)
	rec := <-done

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", rec.Body.String())
	assert.Equal(t, ViewGranted, v.Status())
}

func TestViewGate_DoesNotTrustEdge(t *testing.T) {
	t.Parallel()

	admin := &identity.User{ID: uuid.New()}
	roles := &fakeRoles{roles: map[uuid.UUID]string{admin.ID: "admin"}}
	edge := NewEdge(&fakeUsers{user: admin}, roles, []string{"/admin"}, []string{"admin"})
	view := NewViewGate(&fakeUsers{}, roles, []string{"admin"})

	e := echo.New()
	e.Pre(edge.Middleware())
	e.GET("/admin/goods", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, view.Middleware())

	rec := serve(e, "/admin/goods")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	_, ret := returnTo(t, rec)
	assert.Equal(t, "/admin", ret)
}
