package handlers

import (
	"flexgestor/internal/middleware"
	"flexgestor/internal/services"
	"flexgestor/pkg/database"

	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler set served by the API
type Handlers struct {
	Auth         *AuthHandlers
	Health       *HealthHandlers
	Products     *ProductHandlers
	Customers    *CustomerHandlers
	Orders       *OrderHandlers
	Environments *EnvironmentHandlers
	Users        *UserHandlers
	Dashboard    *DashboardHandlers
}

// RegisterRoutes mounts the API. Everything except health, login and signup
// requires a verified bearer token.
func RegisterRoutes(e *echo.Echo, h Handlers, authService services.AuthService, dbHealth *database.Health) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/health/ready", h.Health.ReadinessCheck)

	ready := middleware.DatabaseReady(dbHealth)
	gate := []echo.MiddlewareFunc{ready, middleware.JWTMiddleware(authService)}

	auth := e.Group("/auth")
	auth.POST("/login", h.Auth.Login, ready)
	auth.POST("/signup", h.Auth.Signup, ready)
	auth.POST("/logout", h.Auth.Logout, gate...)

	products := e.Group("/products", gate...)
	products.GET("", h.Products.ListProducts)
	products.POST("", h.Products.CreateProduct)
	products.PUT("/:id", h.Products.UpdateProduct)
	products.DELETE("/:id", h.Products.DeleteProduct)
	products.PUT("/:id/image", h.Products.UploadProductImage)
	products.GET("/:id/image", h.Products.GetProductImage)

	customers := e.Group("/customers", gate...)
	customers.GET("", h.Customers.ListCustomers)
	customers.POST("", h.Customers.CreateCustomer)
	customers.PUT("/:id", h.Customers.UpdateCustomer)
	customers.DELETE("/:id", h.Customers.DeleteCustomer)

	orders := e.Group("/orders", gate...)
	orders.GET("", h.Orders.ListOrders)
	orders.GET("/:id", h.Orders.GetOrder)
	orders.POST("", h.Orders.CreateOrder)
	orders.PUT("/:id", h.Orders.UpdateOrder)
	orders.DELETE("/:id", h.Orders.DeleteOrder)

	environments := e.Group("/environments", gate...)
	environments.GET("", h.Environments.ListEnvironments)
	environments.POST("", h.Environments.CreateEnvironment)
	environments.PUT("/:id", h.Environments.UpdateEnvironment)
	environments.DELETE("/:id", h.Environments.DeleteEnvironment)

	users := e.Group("/users", gate...)
	users.GET("", h.Users.ListUsers)
	users.GET("/:id/environments", h.Users.GetUserEnvironments)
	users.POST("", h.Users.CreateUser)
	users.PUT("/:id", h.Users.UpdateUser)
	users.DELETE("/:id", h.Users.DeleteUser)

	dashboard := e.Group("/dashboard", gate...)
	dashboard.GET("", h.Dashboard.GetDashboard)
	dashboard.GET("/charts", h.Dashboard.GetCharts)
}
