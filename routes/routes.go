package routes

import (
	"github.com/gin-gonic/gin"

	"shop-service/controllers"
	"shop-service/middleware"
)

// Controllers bundles the handler sets registered on the router.
type Controllers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
}

// Register wires the storefront API. Mirrors the public / authenticated
// / admin split of the route table.
func Register(r *gin.Engine, ctrl Controllers, jwtSecret []byte) {
	api := r.Group("/api")
	api.Use(middleware.Session())

	// Public catalog
	api.GET("/products", ctrl.Product.List)
	api.GET("/products/:id", ctrl.Product.Get)
	api.GET("/categories", ctrl.Category.List)
	api.GET("/categories/:id", ctrl.Category.Get)

	// Session cart
	api.GET("/cart", ctrl.Cart.GetCart)
	api.POST("/cart/add", ctrl.Cart.AddItem)
	api.POST("/cart/update", ctrl.Cart.UpdateItem)
	api.POST("/cart/remove", ctrl.Cart.RemoveItem)
	api.POST("/cart/clear", ctrl.Cart.ClearCart)

	// Auth
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit())
	auth.POST("/register", ctrl.Auth.Register)
	auth.POST("/login", ctrl.Auth.Login)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.Authenticate(jwtSecret))
	authed.GET("/auth/profile", ctrl.Auth.Profile)
	authed.GET("/orders/my", ctrl.Order.ListMine)
	authed.POST("/orders", ctrl.Order.PlaceOrder)

	// Admin
	admin := api.Group("")
	admin.Use(middleware.Authenticate(jwtSecret), middleware.RequireAdmin())
	admin.POST("/products", ctrl.Product.Create)
	admin.PUT("/products/:id", ctrl.Product.Update)
	admin.DELETE("/products/:id", ctrl.Product.Delete)
	admin.POST("/categories", ctrl.Category.Create)
	admin.PUT("/categories/:id", ctrl.Category.Update)
	admin.DELETE("/categories/:id", ctrl.Category.Delete)
	admin.GET("/orders", ctrl.Order.ListAll)
	admin.GET("/orders/:id", ctrl.Order.GetByID)
	admin.PUT("/orders/:id/status", ctrl.Order.UpdateStatus)
}
