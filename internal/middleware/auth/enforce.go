// Package auth holds the echo middleware enforcing the URL access
// policy declared in internal/authz: public paths pass through,
// everything else needs a valid access-token cookie carrying enough
// authority for the path.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/authz"
	"github.com/sandeepk/magshop/internal/tokens"
)

type Guard struct {
	JWTSecret []byte
}

func (g *Guard) claimsFromCookie(c echo.Context) (*tokens.AccessClaims, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	claims, err := tokens.AccessClaimsFromToken(cookie.Value, g.JWTSecret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return claims, nil
}

// Enforce answers every request from the authz policy table, so routes
// and access rules cannot drift apart: a route is only as open as the
// table says its path is.
func (g *Guard) Enforce(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if authz.RequiredAccess(path) == authz.AccessPublic {
			return next(c)
		}

		claims, err := g.claimsFromCookie(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)

		if !authz.Allowed(CurrentRoles(c), path) {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}
