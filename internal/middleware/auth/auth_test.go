package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sandeepk/magshop/internal/tokens"
)

var secret = []byte("test-secret")

func request(path string, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func accessCookie(t *testing.T, roles string) *http.Cookie {
	token, err := tokens.NewAccessToken("7", roles, time.Now().Add(tokens.AccessTTL), secret)
	require.NoError(t, err)
	return &http.Cookie{Name: "accessToken", Value: token}
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestEnforcePublicPathNoCookie(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	for _, path := range []string{"/", "/login", "/register", "/refresh", "/health/live"} {
		c, rec := request(path, nil)
		require.NoError(t, g.Enforce(okHandler)(c), "path %q", path)
		require.Equal(t, http.StatusOK, rec.Code, "path %q", path)
	}
}

func TestEnforceUserPath(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	c, rec := request("/products", accessCookie(t, "ROLE_USER"))
	require.NoError(t, g.Enforce(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	id, err := CurrentUserID(c)
	require.NoError(t, err)
	require.EqualValues(t, 7, id)
	require.True(t, CurrentRoles(c).HasAny("ROLE_USER"))
}

func TestEnforceUserPathNoCookie(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	c, _ := request("/products", nil)
	err := g.Enforce(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestEnforceExpiredToken(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	token, err := tokens.NewAccessToken("7", "ROLE_USER", time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)
	c, _ := request("/products", &http.Cookie{Name: "accessToken", Value: token})

	err = g.Enforce(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestEnforceUnrecognizedRole(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	c, _ := request("/products", accessCookie(t, "ROLE_GUEST"))
	err := g.Enforce(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestEnforceAdminPath(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	c, rec := request("/admin/dashboard", accessCookie(t, "ROLE_ADMIN,ROLE_USER"))
	require.NoError(t, g.Enforce(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforceAdminPathRejectsUser(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	for _, path := range []string{"/admin/dashboard", "/users/delete/3", "/list"} {
		c, _ := request(path, accessCookie(t, "ROLE_USER"))
		err := g.Enforce(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError for %q", path)
		require.Equal(t, http.StatusForbidden, he.Code, "path %q", path)
	}
}

func TestEnforceUnlistedPathRequiresLogin(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	c, _ := request("/something-else", nil)
	err := g.Enforce(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestEnforceRoleWithWhitespace(t *testing.T) {
	g := &Guard{JWTSecret: secret}

	// stored roles may carry whitespace around the separator
	c, rec := request("/admin/dashboard", accessCookie(t, " ROLE_ADMIN , ROLE_USER "))
	require.NoError(t, g.Enforce(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
