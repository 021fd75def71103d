package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/sandeepk/magshop/internal/middleware/auth"
	"github.com/sandeepk/magshop/internal/service"
)

type UserHandler struct {
	Users *service.UserService
}

// Me backs the user dashboard page.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := authmw.CurrentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return c.JSON(http.StatusOK, user)
}
