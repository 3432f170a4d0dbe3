package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"loadlink/internal/auth"
	"loadlink/internal/handler"
	"loadlink/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	VehicleHandler *handler.VehicleHandler
	TripHandler    *handler.TripHandler
	BookingHandler *handler.BookingHandler
	PaymentHandler *handler.PaymentHandler
	ReviewHandler  *handler.ReviewHandler
	TokenManager   *auth.TokenManager
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes.
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", deps.AuthHandler.Register)
		authRoutes.POST("/login", deps.AuthHandler.Login)
	}

	// Protected routes.
	protected := router.Group("")
	protected.Use(middleware.RequireAuth(deps.TokenManager))
	{
		protected.GET("/users/me", deps.UserHandler.Me)

		vehicles := protected.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.Create)
			vehicles.GET("", deps.VehicleHandler.List)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
			vehicles.PUT("/:id", deps.VehicleHandler.Update)
			vehicles.DELETE("/:id", deps.VehicleHandler.Delete)
		}

		trips := protected.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("/all", deps.TripHandler.ListActive)
			trips.GET("/my", deps.TripHandler.ListMine)
			trips.GET("/:id", deps.TripHandler.Get)
			trips.PUT("/:id", deps.TripHandler.Update)
			trips.DELETE("/:id", deps.TripHandler.Delete)
		}

		bookings := protected.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.Create)
			bookings.GET("", deps.BookingHandler.List)
			bookings.GET("/trip/:trip_id", deps.BookingHandler.ListByTrip)
			bookings.GET("/:id", deps.BookingHandler.Get)
			bookings.PUT("/:id", deps.BookingHandler.Update)
			bookings.DELETE("/:id", deps.BookingHandler.Delete)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("/:booking_id", deps.PaymentHandler.Settle)
			payments.GET("/me", deps.PaymentHandler.ListMine)
		}

		reviews := protected.Group("/reviews")
		{
			reviews.POST("", deps.ReviewHandler.Create)
			reviews.GET("", deps.ReviewHandler.List)
			reviews.GET("/:id", deps.ReviewHandler.Get)
			reviews.PUT("/:id", deps.ReviewHandler.Update)
			reviews.DELETE("/:id", deps.ReviewHandler.Delete)
		}
	}

	return router
}
