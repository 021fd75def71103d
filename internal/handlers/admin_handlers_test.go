package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/service"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *repo.GormRepo, *echo.Echo) {
	store := repo.New(initTestDB(t))
	h := &AdminHandler{
		Orders:   service.NewOrderService(store, store, nil),
		Products: service.NewProductService(store, nil),
		Users:    service.NewUserService(store),
	}
	return h, store, newEcho()
}

func TestDashboardCounts(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user, product := seedCatalog(t, store)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, TotalPrice: product.Price, Status: models.StatusAccepted}
	require.NoError(t, store.DB.Create(&order).Error)

	rec, c := doJSON(e, http.MethodGet, "/admin/dashboard", nil)
	require.NoError(t, h.Dashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp["total_users"])
	require.EqualValues(t, 1, resp["total_products"])
	require.EqualValues(t, 1, resp["total_orders"])
	require.EqualValues(t, 1, resp["accepted_orders"])
	require.EqualValues(t, 0, resp["rejected_orders"])
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user, product := seedCatalog(t, store)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, TotalPrice: product.Price, Status: models.StatusRejected}
	require.NoError(t, store.DB.Create(&order).Error)

	rec, c := doJSON(e, http.MethodPost, "/admin/orders/1/status", map[string]string{"status": "ACCEPTED"})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	require.NoError(t, h.UpdateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Order
	require.NoError(t, store.DB.First(&fetched, order.ID).Error)
	require.Equal(t, models.StatusAccepted, fetched.Status)
}

func TestUpdateOrderStatusHandlerRejectsUnknown(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user, product := seedCatalog(t, store)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, TotalPrice: product.Price, Status: models.StatusPending}
	require.NoError(t, store.DB.Create(&order).Error)

	_, c := doJSON(e, http.MethodPost, "/admin/orders/1/status", map[string]string{"status": "SHIPPED"})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	err := h.UpdateOrderStatus(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user := seedLoginUser(t, store, "victim", "password", "ROLE_USER")

	rec, c := doJSON(e, http.MethodDelete, "/users/delete/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, h.DeleteUser(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c2 := doJSON(e, http.MethodDelete, "/users/delete/1", nil)
	c2.SetParamNames("id")
	c2.SetParamValues(fmt.Sprint(user.ID))
	err := h.DeleteUser(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestUpdateUserHandler(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user := seedLoginUser(t, store, "edited", "password", "ROLE_USER")

	rec, c := doJSON(e, http.MethodPut, "/users/edit/1", map[string]any{
		"email": "new@example.com",
		"age":   30,
		"roles": "ROLE_ADMIN,ROLE_USER",
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, h.UpdateUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.User
	require.NoError(t, store.DB.First(&fetched, user.ID).Error)
	require.Equal(t, "new@example.com", fetched.Email)
	require.Equal(t, 30, fetched.Age)
	require.Equal(t, "ROLE_ADMIN,ROLE_USER", fetched.Roles)
}

func TestUpdateUserHandlerUnderage(t *testing.T) {
	h, store, e := newAdminHandler(t)
	user := seedLoginUser(t, store, "edited", "password", "ROLE_USER")

	_, c := doJSON(e, http.MethodPut, "/users/edit/1", map[string]any{"age": 16})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	err := h.UpdateUser(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}
