package bookings

import (
	"busline/internal/shared/config"
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new bookings router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all booking routes
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		bookings.POST("", bookingRouter.controller.CreateBooking)
		bookings.GET("/me", bookingRouter.controller.GetMyBookings)
		bookings.GET("/:code", bookingRouter.controller.GetBooking)
		bookings.POST("/:code/cancel", bookingRouter.controller.CancelBooking)

		// Admin routes
		admin := bookings.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", bookingRouter.controller.GetAllBookings)
			admin.POST("/:code/approve", bookingRouter.controller.ApproveBooking)
			admin.POST("/:code/reject", bookingRouter.controller.RejectBooking)
			admin.POST("/:code/complete", bookingRouter.controller.CompleteBooking)
		}
	}
}
