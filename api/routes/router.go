// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busline/internal/auth"
	"busline/internal/bookings"
	"busline/internal/notifications"
	"busline/internal/payments"
	"busline/internal/reports"
	"busline/internal/seats"
	"busline/internal/shared/config"
	"busline/internal/shared/database"
	"busline/internal/trips"
	"busline/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Producer

	// shared across route groups
	cacheService cache.Service
	seatHolds    *seats.AtomicSeatHolds
	seatRepo     seats.Repository
	tripRepo     trips.Repository
	bookingSvc   bookings.Service
}

// NewRouter creates a new router instance. The publisher may be nil when
// Kafka is disabled.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Producer) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Shared infrastructure used by several route groups
	r.cacheService = cache.NewService(r.db.Redis)
	r.seatHolds = seats.NewAtomicSeatHolds(r.db.Redis)
	r.seatRepo = seats.NewRepository(r.db.PostgreSQL)
	r.tripRepo = trips.NewRepository(r.db.PostgreSQL)

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupTripRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupReportRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "busline-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busline-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupTripRoutes configures trip catalog routes
func (r *Router) setupTripRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.seatRepo, r.seatHolds, r.config)
	tripService := trips.NewService(r.tripRepo, seatService, r.cacheService)
	tripController := trips.NewController(tripService)
	tripRouter := trips.NewRouter(tripController, r.config)

	tripRouter.SetupRoutes(rg)
}

// setupSeatRoutes configures seat map and hold routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.seatRepo, r.seatHolds, r.config)
	seatController := seats.NewController(seatService)
	seatRouter := seats.NewRouter(seatController, r.config)

	seatRouter.SetupRoutes(rg)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)
	tripCatalog := bookings.NewTripCatalog(r.tripRepo)
	seatDirectory := bookings.NewSeatDirectory(r.seatRepo, r.seatHolds)
	gateway := payments.NewGateway(r.config)

	r.bookingSvc = bookings.NewService(bookingRepo, tripCatalog, seatDirectory, gateway, r.publisher)
	bookingController := bookings.NewController(r.bookingSvc)
	bookingRouter := bookings.NewRouter(bookingController, r.config)

	bookingRouter.SetupRoutes(rg)
}

// setupPaymentRoutes configures payment routes (requires booking service)
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentController := payments.NewController(r.bookingSvc)
	paymentRouter := payments.NewRouter(paymentController, r.config)

	paymentRouter.SetupRoutes(rg)
}

// setupReportRoutes configures reporting routes
func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reportRepo := reports.NewRepository(r.db.PostgreSQL)
	reportService := reports.NewService(reportRepo, r.cacheService)
	reportController := reports.NewController(reportService)
	reportRouter := reports.NewRouter(reportController, r.config)

	reportRouter.SetupRoutes(rg)
}
