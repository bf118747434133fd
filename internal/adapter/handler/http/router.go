package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/xcommerce/backend/internal/adapter/config"
	"github.com/xcommerce/backend/internal/core/port"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	addressHandler *AddressHandler,
	orderHandler *OrderHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observeRequests())

	base := NewHandler(logger)

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/signup", userHandler.SignUp)
			user.POST("/login", userHandler.Login)
		}

		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/countries", productHandler.ListCountries)

		addresses := api.Group("/addresses")
		{
			addresses.Use(authCheck(tokenService, base))
			addresses.GET("", addressHandler.ListAddresses)
			addresses.POST("", addressHandler.AddAddress)
			addresses.PATCH("/:id", addressHandler.UpdateAddress)
			addresses.DELETE("/:id", addressHandler.DeleteAddress)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService, base))
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:uuid", orderHandler.GetOrder)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
