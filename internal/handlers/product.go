package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/logging"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/service"
	"github.com/sandeepk/magshop/internal/service/search"
	"github.com/sandeepk/magshop/internal/transport"
	"github.com/sandeepk/magshop/internal/util"
)

type ProductHandler struct {
	Svc   *service.ProductService
	ES    *elasticsearch.Client
	Index string
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// SearchByName is the DB-backed case-insensitive substring search.
func (h *ProductHandler) SearchByName(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	items, err := h.Svc.SearchProducts(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	prod, err := h.bindProduct(c, 0)
	if err != nil {
		return err
	}
	if err := h.Svc.SaveProduct(c.Request().Context(), prod); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.reindex(c, prod, false)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.Svc.GetProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	prod, err := h.bindProduct(c, id)
	if err != nil {
		return err
	}
	if err := h.Svc.SaveProduct(c.Request().Context(), prod); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.reindex(c, prod, false)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	h.reindex(c, &models.Product{ID: id}, true)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) bindProduct(c echo.Context, id uint) (*models.Product, error) {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	prod := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if req.PublishDate != "" {
		d, err := time.Parse("2006-01-02", req.PublishDate)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "publish_date must be YYYY-MM-DD")
		}
		prod.PublishDate = d
	}
	return prod, nil
}

// reindex keeps the search index in step with catalog mutations. Index
// failures are logged, not surfaced: the DB row is the source of truth.
func (h *ProductHandler) reindex(c echo.Context, p *models.Product, deleted bool) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	var err error
	if deleted {
		err = search.DeleteProduct(ctx, h.ES, h.Index, p.ID)
	} else {
		err = search.IndexProduct(ctx, h.ES, h.Index, p)
	}
	if err != nil {
		logging.FromContext(ctx).Error("es index error", "productID", p.ID, "error", err)
	}
}
