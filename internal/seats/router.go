package seats

import (
	"busline/internal/shared/config"
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles seat-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new seats router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all seat routes under /trips/:id
func (seatRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	seats := rg.Group("/trips/:id/seats")
	{
		// Public routes - anyone can browse the seat map
		seats.GET("", seatRouter.controller.ListSeats)
		seats.GET("/:label", seatRouter.controller.GetSeat)

		// Protected routes - holds belong to a signed-in user
		protected := seats.Group("")
		protected.Use(middleware.JWTAuthWithConfig(seatRouter.config))
		{
			protected.POST("/:label/hold", seatRouter.controller.HoldSeat)
			protected.DELETE("/:label/hold", seatRouter.controller.ReleaseHold)
		}
	}
}
