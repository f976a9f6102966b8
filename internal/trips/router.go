package trips

import (
	"busline/internal/shared/config"
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles trip-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new trips router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all trip routes
func (tripRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	{
		// Public routes - browsing needs no account
		trips.GET("", tripRouter.controller.SearchTrips)
		trips.GET("/:id", tripRouter.controller.GetTrip)

		// Admin routes - catalog management
		admin := trips.Group("")
		admin.Use(middleware.JWTAuthWithConfig(tripRouter.config))
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", tripRouter.controller.CreateTrip)
			admin.PUT("/:id", tripRouter.controller.UpdateTrip)
			admin.DELETE("/:id", tripRouter.controller.DeleteTrip)
		}
	}
}
