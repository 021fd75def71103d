package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeepk/magshop/internal/handlers"
	authmw "github.com/sandeepk/magshop/internal/middleware/auth"
)

type Deps struct {
	Guard          *authmw.Guard
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	AdminHandler   *handlers.AdminHandler
	SearchHandler  *handlers.SearchHandler
}

// Register wires the route table. Access control is not attached per
// group: the Guard consults the internal/authz policy for every request,
// so adding a route here picks up its rule from the path alone.
func Register(e *echo.Echo, d *Deps) {
	e.Use(d.Guard.Enforce)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "magazine shop"})
	})

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.LogOut)
	e.POST("/refresh", d.AuthHandler.Refresh)

	e.GET("/user", d.UserHandler.Me)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchByName)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.Search)
	}

	order := e.Group("/order")
	order.GET("/:id", d.OrderHandler.OrderForm)
	order.POST("/:id", d.OrderHandler.PlaceOrder)
	e.GET("/my-orders", d.OrderHandler.MyOrders)

	e.GET("/list", d.AdminHandler.ListUsers)
	users := e.Group("/users")
	users.GET("/edit/:id", d.AdminHandler.GetUser)
	users.PUT("/edit/:id", d.AdminHandler.UpdateUser)
	users.DELETE("/delete/:id", d.AdminHandler.DeleteUser)

	admin := e.Group("/admin")
	admin.GET("/dashboard", d.AdminHandler.Dashboard)

	admin.GET("/products", d.ProductHandler.GetProducts)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)

	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.GET("/orders/:id", d.AdminHandler.GetOrder)
	admin.POST("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
}
