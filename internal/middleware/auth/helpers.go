package auth

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/authz"
	"github.com/sandeepk/magshop/internal/tokens"
)

const (
	ctxUserID = "user_id"
	ctxRoles  = "roles"
)

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxRoles, authz.ParseRoles(claims.Roles))
}

// CurrentUserID returns the authenticated user's id from the request
// context, set by Enforce.
func CurrentUserID(c echo.Context) (uint, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return 0, errors.New("unauthorized")
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("unauthorized")
	}
	return uint(id), nil
}

func CurrentRoles(c echo.Context) authz.RoleSet {
	if roles, ok := c.Get(ctxRoles).(authz.RoleSet); ok {
		return roles
	}
	return authz.RoleSet{}
}
