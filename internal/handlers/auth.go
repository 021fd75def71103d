package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/authz"
	"github.com/sandeepk/magshop/internal/hash"
	"github.com/sandeepk/magshop/internal/logging"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/service"
	"github.com/sandeepk/magshop/internal/tokens"
	"github.com/sandeepk/magshop/internal/transport"
)

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error
	RevokeRefreshToken(ctx context.Context, hashedToken string) error
	RefreshTokenValid(ctx context.Context, jti string, now int64) (bool, error)
}

type AuthHandler struct {
	Users         *service.UserService
	Tokens        TokenStore
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      service.EventPublisher
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Age:      req.Age,
		DOB:      req.DOB,
		Roles:    string(authz.RoleUser),
	}

	ctx := c.Request().Context()
	if err := h.Users.Register(ctx, &user, req.Password); err != nil {
		switch {
		case errors.Is(err, repo.ErrUserExists):
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		case errors.Is(err, service.ErrUnderage):
			return echo.NewHTTPError(http.StatusBadRequest, "age should be greater than 18")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"UserID":   user.ID,
		"username": user.Username,
	}, fmt.Sprint(user.ID))

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	accessToken, refreshToken, err := h.issueTokens(c, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create tokens")
	}

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"UserID":   user.ID,
		"username": user.Username,
	}, fmt.Sprint(user.ID))

	// role-based landing page, decided once right after authentication
	roles := authz.ParseRoles(user.Roles)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"redirect":      authz.LoginTarget(roles),
		"is_admin":      roles.Has(authz.RoleAdmin),
	})
}

// Refresh rotates the token pair. The presented refresh token must be
// on record, unrevoked and unexpired; it is revoked and a fresh pair
// issued, so a replayed old token stops working after the first use.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshCookie.Value, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	ctx := c.Request().Context()
	valid, err := h.Tokens.RefreshTokenValid(ctx, claims.ID, time.Now().Unix())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	user, err := h.Users.GetByID(ctx, uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	if err := h.Tokens.RevokeRefreshToken(ctx, tokens.Sha256Hex(refreshCookie.Value)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	accessToken, refreshToken, err := h.issueTokens(c, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create tokens")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "not logged in")
	}

	ctx := c.Request().Context()
	if err := h.Tokens.RevokeRefreshToken(ctx, tokens.Sha256Hex(refreshCookie.Value)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(CreateCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "logged out",
		"redirect": "/",
	})
}

// issueTokens creates an access/refresh pair for user, stores the
// refresh token hashed, and sets both cookies.
func (h *AuthHandler) issueTokens(c echo.Context, user *models.User) (string, string, error) {
	ctx := c.Request().Context()

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.NewAccessToken(fmt.Sprint(user.ID), user.Roles, accessExp, h.JWTSecret)
	if err != nil {
		return "", "", err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.NewRefreshToken(fmt.Sprint(user.ID), refreshExp, h.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, h.RefreshSecret)
	if err != nil {
		return "", "", err
	}

	record := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		JTI:       claims.ID,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := h.Tokens.CreateRefreshToken(ctx, &record); err != nil {
		return "", "", err
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp))
	c.SetCookie(CreateCookie("refreshToken", refreshToken, "/", refreshExp))
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any, key string) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", "user_events", "error", err)
	}
}
