package payments

import (
	"net/http"

	"busline/internal/bookings"
	"busline/internal/shared/utils/response"
	"busline/internal/users"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	bookingService bookings.Service
}

func NewController(bookingService bookings.Service) *Controller {
	return &Controller{
		bookingService: bookingService,
	}
}

// Pay settles the fare for a booking through the gateway
func (c *Controller) Pay(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	role, _ := ctx.Get("user_role")
	isAdmin := role == string(users.RoleAdmin)

	booking, err := c.bookingService.ProcessPayment(ctx.Request.Context(), ctx.Param("code"), userID.(string), isAdmin)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	if booking.PaymentStatus == string(bookings.PaymentFailed) {
		response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment declined, please retry", booking, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment processed successfully", booking, nil)
}
