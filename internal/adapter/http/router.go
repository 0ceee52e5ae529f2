package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caiobtc/velocompra-backend/internal/adapter/http/middleware"
	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

type Handlers struct {
	Login     *LoginHandler
	Orders    *OrderHandler
	AdminOrd  *OrderAdminHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Users     *UserAdminHandler
	CEP       *CEPHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware(), middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/login", h.Login.StaffLogin)
		api.POST("/customers/login", h.Login.CustomerLogin)
		api.POST("/customers", h.Customers.Register)
		api.GET("/viacep/:cep", h.CEP.Lookup)

		api.GET("/products", h.Products.ListActive)
		api.GET("/products/:id", h.Products.Get)
	}

	customer := api.Group("", authz.Require(domain.RoleCustomer))
	{
		customer.GET("/checkout", h.Customers.Checkout)
		customer.POST("/customers/addresses", h.Customers.AddAddress)
		customer.POST("/orders", h.Orders.Create)
		customer.GET("/orders/my-orders", h.Orders.ListMine)
		customer.GET("/orders/:orderNumber", h.Orders.Detail)
	}

	admin := api.Group("/admin", authz.Require(domain.RoleAdmin))
	{
		admin.GET("/orders", h.AdminOrd.ListAll)
		admin.PATCH("/orders/:orderNumber/status", h.AdminOrd.UpdateStatus)
		admin.POST("/products", h.Products.Create)
		admin.PUT("/products/:id", h.Products.Update)
		admin.PATCH("/products/:id/active", h.Products.ToggleActive)

		admin.GET("/users", h.Users.List)
		admin.POST("/users", h.Users.Create)
		admin.GET("/users/:id", h.Users.Get)
		admin.PUT("/users/:id", h.Users.Update)
		admin.PATCH("/users/:id/status", h.Users.ToggleActive)
		admin.PATCH("/users/:id/password", h.Users.ChangePassword)
	}

	// Stock moves are the one catalog write stockists share with admins.
	stock := api.Group("/admin", authz.Require(domain.RoleAdmin, domain.RoleStockist))
	{
		stock.PATCH("/products/:id/stock", h.Products.UpdateStock)
	}

	return r
}
