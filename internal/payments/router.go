package payments

import (
	"busline/internal/shared/config"
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles payment routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new payments router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers payment routes under /bookings
func (paymentRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/bookings")
	payments.Use(middleware.JWTAuthWithConfig(paymentRouter.config))
	{
		payments.POST("/:code/pay", paymentRouter.controller.Pay)
	}
}
