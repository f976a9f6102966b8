package reports

import (
	"net/http"

	"busline/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
	}
}

// GetBookingStats returns the system-wide booking summary
func (c *Controller) GetBookingStats(ctx *gin.Context) {
	stats, err := c.service.GetBookingStats(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking stats retrieved successfully", stats, nil)
}

// GetTripReport returns occupancy and revenue for one trip
func (c *Controller) GetTripReport(ctx *gin.Context) {
	report, err := c.service.GetTripReport(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip report retrieved successfully", report, nil)
}
