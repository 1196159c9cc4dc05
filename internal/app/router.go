package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"marketplace/internal/handler"
	"marketplace/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	QuoteHandler   *handler.QuoteHandler
	OrderHandler   *handler.OrderHandler
	WalletHandler  *handler.WalletHandler
	DriverHandler  *handler.DriverHandler
	StatsHandler   *handler.StatsHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.ListUsers)
			users.GET("/:id", deps.UserHandler.GetUser)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/categories", deps.CatalogHandler.ListCategories)
			catalog.GET("/categories/:id", deps.CatalogHandler.GetCategory)
			catalog.GET("/vehicle-types", deps.CatalogHandler.ListVehicleTypes)
		}

		v1.POST("/quotes", deps.QuoteHandler.QuoteFare)

		orders := v1.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.CreateOrder)
			orders.GET("", deps.OrderHandler.ListOrders)
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.POST("/:id/cancel", deps.OrderHandler.CancelOrder)
			orders.POST("/:id/advance", deps.OrderHandler.AdvanceOrder)
		}

		wallets := v1.Group("/wallets")
		{
			wallets.GET("/:userID", deps.WalletHandler.GetWallet)
			wallets.POST("/:userID/transactions", deps.WalletHandler.RecordTransaction)
			wallets.GET("/:userID/transactions", deps.WalletHandler.ListTransactions)
		}

		drivers := v1.Group("/drivers")
		{
			drivers.POST("/:id/online", deps.DriverHandler.GoOnline)
			drivers.POST("/:id/offline", deps.DriverHandler.GoOffline)
		}

		v1.GET("/stats", deps.StatsHandler.Overview)
	}

	return router
}
