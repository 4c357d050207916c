package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	pageNum, offset, limit := page(c)
	f := service.ProductFilter{
		Category: c.QueryParam("category"),
		Offset:   offset,
		Limit:    limit,
	}
	if v := c.QueryParam("division_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			l.Warn("get_products_failed", "status", 400, "reason", "division_id not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "division_id not a uuid")
		}
		f.DivisionID = &id
	}
	if v := c.QueryParam("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			l.Warn("get_products_failed", "status", 400, "reason", "featured not a bool", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "featured not a bool")
		}
		f.Featured = &b
	}

	total, items, err := h.Svc.ListProducts(ctx, f)
	if err != nil {
		return fail(l, "get_products_failed", err, "cannot get products")
	}

	l.Info("get_products_success", "total", total)
	return c.JSON(http.StatusOK, paged(items, pageNum, offset, limit, total))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := paramID(c, l, "get_product_failed")
	if err != nil {
		return err
	}
	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err, "cannot get product")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) GetProductBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_by_slug")

	p, err := h.Svc.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return fail(l, "get_product_failed", err, "cannot get product")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	pageNum, offset, limit := page(c)

	total, items, err := h.Svc.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return fail(l, "search_failed", err, "cannot search products")
	}

	l.Info("search_success", "q", q, "total", total)
	return c.JSON(http.StatusOK, paged(items, pageNum, offset, limit, total))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "product_create_failed", err, "cannot create product")
	}

	l.Info("product_create_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := paramID(c, l, "product_patch_failed")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		return fail(l, "product_patch_failed", err, "cannot update product")
	}

	l.Info("product_patch_success", "product_id", id)
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := paramID(c, l, "product_delete_failed")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete_failed", err, "cannot delete product")
	}

	l.Info("product_delete_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
