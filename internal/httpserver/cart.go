package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/cart"
	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/internal/service"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

// VisitorCookie names the cart slot of an anonymous or signed-in visitor.
const VisitorCookie = "cartID"

type CartHTTP struct {
	Carts    *cart.Registry
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
	Sessions gate.UserResolver
	Secure   bool
	TTL      time.Duration
}

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func viewOf(s *cart.Store) cartView {
	return cartView{Items: s.Items(), TotalItems: s.TotalItems(), TotalPrice: s.TotalPrice()}
}

func (h *CartHTTP) visitorID(c echo.Context) string {
	if ck, err := c.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	ttl := h.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	c.SetCookie(&http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *CartHTTP) open(c echo.Context, event string) (*cart.Store, error) {
	ctx := c.Request().Context()
	store, err := h.Carts.Open(ctx, h.visitorID(c))
	if err != nil {
		logging.FromContext(ctx).Error(event, "status", 500, "reason", "cannot load cart", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}
	return store, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	store, err := h.open(c, "get_cart_failed")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(store))
}

// AddItem adds one unit of a catalog product, priced from the catalog.
func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "product_id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id not a uuid")
	}

	p, err := h.Catalog.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "add_to_cart_failed", err, "cannot get product")
	}
	if !p.InStock {
		l.Warn("add_to_cart_failed", "status", 409, "reason", "out of stock", "product_id", id)
		return echo.NewHTTPError(http.StatusConflict, "product is out of stock")
	}

	store, err := h.open(c, "add_to_cart_failed")
	if err != nil {
		return err
	}
	item := cart.Item{ID: p.ID.String(), Name: p.Name, Price: p.Price, Slug: p.Slug}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	store.AddItem(ctx, item)

	l.Info("add_to_cart_success", "product_id", id)
	return c.JSON(http.StatusOK, viewOf(store))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	var req transport.CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	store, err := h.open(c, "update_quantity_failed")
	if err != nil {
		return err
	}
	store.UpdateQuantity(ctx, c.Param("id"), req.Quantity)
	return c.JSON(http.StatusOK, viewOf(store))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	store, err := h.open(c, "remove_item_failed")
	if err != nil {
		return err
	}
	store.RemoveItem(ctx, c.Param("id"))
	return c.JSON(http.StatusOK, viewOf(store))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	store, err := h.open(c, "clear_cart_failed")
	if err != nil {
		return err
	}
	store.Clear(ctx)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) CheckoutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Sessions.Resolve(c)
	if err != nil {
		l.Error("checkout_failed", "status", 500, "reason", "cannot resolve session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve session")
	}
	store, err := h.open(c, "checkout_failed")
	if err != nil {
		return err
	}

	var userID *uuid.UUID
	if user != nil {
		userID = &user.ID
	}
	order, err := h.Checkout.Checkout(ctx, store, userID, req)
	if err != nil {
		return fail(l, "checkout_failed", err, "cannot place order")
	}

	l.Info("checkout_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}
