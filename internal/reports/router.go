package reports

import (
	"busline/internal/shared/config"
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles report routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new reports router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all report routes (admin only)
func (reportRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.Use(middleware.JWTAuthWithConfig(reportRouter.config))
	reports.Use(middleware.RequireAdmin())
	{
		reports.GET("/bookings", reportRouter.controller.GetBookingStats)
		reports.GET("/trips/:id", reportRouter.controller.GetTripReport)
	}
}
