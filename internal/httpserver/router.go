package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Olajosh80/Realms/internal/gate"
	"github.com/Olajosh80/Realms/pkg/middleware/csrf"
)

type Deps struct {
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Divisions *DivisionHTTP
	Orders    *OrderHTTP
	Blog      *BlogHTTP
	Users     *UserHTTP
	Contact   *ContactHTTP
	Cart      *CartHTTP
	Admin     *AdminHTTP

	Edge *gate.Edge
	View *gate.ViewGate
	CSRF csrf.Config

	// Ready reports whether the backing stores answer. Nil means always ready.
	Ready func(c echo.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	// The edge gate joins the Use chain after the caller's ambient middleware,
	// so its redirects carry the request id and secure headers. Echo runs this
	// chain for unmatched paths too.
	if d.Edge != nil {
		e.Use(d.Edge.Middleware())
	}

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/signup", d.Auth.SignUp)
	auth.POST("/signin", d.Auth.SignIn)
	auth.POST("/signout", d.Auth.SignOut)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.GET("/user", d.Auth.User)

	products := api.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/slug/:slug", d.Catalog.GetProductBySlug)
	products.GET("/:id", d.Catalog.GetProduct)

	api.GET("/divisions", d.Divisions.List)
	api.GET("/divisions/:id", d.Divisions.Get)

	api.GET("/blog", d.Blog.ListPublished)
	api.GET("/blog/:slug", d.Blog.GetBySlug)

	api.POST("/orders", d.Orders.CreateOrder)
	api.GET("/orders", d.Orders.ListOrders)

	api.POST("/contact", d.Contact.Submit)
	api.POST("/newsletter", d.Contact.Subscribe)

	cart := api.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.Clear)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.POST("/checkout", d.Cart.CheckoutCart)

	admin := e.Group("/admin", d.View.Middleware(), csrf.Middleware(d.CSRF))
	admin.GET("", d.Admin.Dashboard)

	admin.GET("/products", d.Catalog.GetProducts)
	admin.GET("/goods", d.Catalog.GetProducts)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)

	admin.GET("/divisions", d.Divisions.List)
	admin.POST("/divisions", d.Divisions.Create)
	admin.PATCH("/divisions/:id", d.Divisions.Patch)
	admin.DELETE("/divisions/:id", d.Divisions.Delete)

	admin.GET("/orders", d.Orders.AdminListOrders)
	admin.GET("/orders/:id", d.Orders.GetOrder)
	admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)

	admin.GET("/blog", d.Blog.ListAll)
	admin.POST("/blog", d.Blog.Create)
	admin.PATCH("/blog/:id", d.Blog.Patch)
	admin.DELETE("/blog/:id", d.Blog.Delete)

	admin.GET("/users", d.Users.List)
	admin.PATCH("/users/:id/role", d.Users.UpdateRole)
	admin.DELETE("/users/:id", d.Users.Delete)

	admin.GET("/contacts", d.Contact.List)
}
