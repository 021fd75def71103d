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

func newProductHandler(t *testing.T) (*ProductHandler, *repo.GormRepo, *echo.Echo) {
	store := repo.New(initTestDB(t))
	h := &ProductHandler{Svc: service.NewProductService(store, nil)}
	return h, store, newEcho()
}

func TestGetProductHandler(t *testing.T) {
	h, store, e := newProductHandler(t)

	product := models.Product{Name: "Time", Description: "news", Price: 9.99, Stock: 100}
	require.NoError(t, store.DB.Create(&product).Error)

	rec, c := doJSON(e, http.MethodGet, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, product.Name, resp.Name)
	require.Equal(t, product.Price, resp.Price)
}

func TestGetProductHandlerNotFound(t *testing.T) {
	h, _, e := newProductHandler(t)

	_, c := doJSON(e, http.MethodGet, "/products/5", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")
	err := h.GetProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetProductsHandlerPagination(t *testing.T) {
	h, store, e := newProductHandler(t)

	for i := 0; i < 15; i++ {
		p := models.Product{Name: fmt.Sprintf("Magazine %02d", i), Description: "d", Price: 1}
		require.NoError(t, store.DB.Create(&p).Error)
	}

	rec, c := doJSON(e, http.MethodGet, "/products?page=2&size=10", nil)
	c.QueryParams().Set("page", "2")
	c.QueryParams().Set("size", "10")
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)
	require.EqualValues(t, 15, resp.Meta["total"])
	require.Equal(t, true, resp.Meta["has_prev"])
	require.Equal(t, false, resp.Meta["has_next"])
}

func TestSearchByNameHandler(t *testing.T) {
	h, store, e := newProductHandler(t)

	for _, name := range []string{"National Geographic", "The Economist", "Scientific American"} {
		p := models.Product{Name: name, Description: "d", Price: 1}
		require.NoError(t, store.DB.Create(&p).Error)
	}

	rec, c := doJSON(e, http.MethodGet, "/products/search?name=ECONOMIST", nil)
	c.QueryParams().Set("name", "ECONOMIST")
	require.NoError(t, h.SearchByName(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "The Economist", items[0].Name)
}

func TestCreateProductHandler(t *testing.T) {
	h, store, e := newProductHandler(t)

	rec, c := doJSON(e, http.MethodPost, "/admin/products", map[string]any{
		"name":         "GQ",
		"description":  "style",
		"price":        7.99,
		"stock":        105,
		"publish_date": "2024-04-02",
	})
	require.NoError(t, h.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var total int64
	require.NoError(t, store.DB.Model(&models.Product{}).Count(&total).Error)
	require.EqualValues(t, 1, total)
}

func TestCreateProductHandlerRequiresPositivePrice(t *testing.T) {
	h, _, e := newProductHandler(t)

	_, c := doJSON(e, http.MethodPost, "/admin/products", map[string]any{
		"name":  "Free",
		"price": 0,
	})
	err := h.CreateProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateProductHandler(t *testing.T) {
	h, store, e := newProductHandler(t)

	product := models.Product{Name: "Time", Description: "news", Price: 9.99}
	require.NoError(t, store.DB.Create(&product).Error)

	rec, c := doJSON(e, http.MethodPut, "/admin/products/1", map[string]any{
		"name":  "Time Magazine",
		"price": 10.99,
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))
	require.NoError(t, h.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Product
	require.NoError(t, store.DB.First(&fetched, product.ID).Error)
	require.Equal(t, "Time Magazine", fetched.Name)
	require.Equal(t, 10.99, fetched.Price)
}

func TestDeleteProductHandler(t *testing.T) {
	h, store, e := newProductHandler(t)

	product := models.Product{Name: "Time", Description: "news", Price: 9.99}
	require.NoError(t, store.DB.Create(&product).Error)

	rec, c := doJSON(e, http.MethodDelete, "/admin/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))
	require.NoError(t, h.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var total int64
	require.NoError(t, store.DB.Model(&models.Product{}).Count(&total).Error)
	require.Zero(t, total)
}
