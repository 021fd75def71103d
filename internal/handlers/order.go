package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/logging"
	authmw "github.com/sandeepk/magshop/internal/middleware/auth"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/service"
	"github.com/sandeepk/magshop/internal/transport"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Users    *service.UserService
	Products *service.ProductService
}

func (h *OrderHandler) currentUser(c echo.Context) (*models.User, error) {
	userID, err := authmw.CurrentUserID(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return user, nil
}

// OrderForm returns the product being ordered, the data behind the order
// form page.
func (h *OrderHandler) OrderForm(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.Products.GetProduct(c.Request().Context(), productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// PlaceOrder persists the submission whatever the validation outcome;
// the response status field tells the caller whether it was accepted.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order := models.Order{
		Quantity:     req.Quantity,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		City:         req.City,
		State:        req.State,
		CardNumber:   req.CardNumber,
	}

	saved, err := h.Svc.PlaceOrder(ctx, &order, user, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("place_order_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("place_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("place_order_success", "orderID", saved.ID, "status", saved.Status)
	return c.JSON(http.StatusCreated, saved)
}

// MyOrders lists the caller's orders, newest first.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	orders, err := h.Svc.GetOrdersByUser(c.Request().Context(), user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}
