package seats

import (
	"net/http"
	"strings"

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

// ListSeats returns the full seat map for a trip, holds folded in. An
// optional ?status= filter narrows by effective status.
func (c *Controller) ListSeats(ctx *gin.Context) {
	tripID := ctx.Param("id")

	seats, err := c.service.ListSeats(ctx.Request.Context(), tripID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	if statusFilter := strings.ToUpper(ctx.Query("status")); statusFilter != "" {
		if !Status(statusFilter).IsValid() {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat status filter", nil, nil)
			return
		}
		filtered := make([]SeatResponse, 0, len(seats))
		for _, seat := range seats {
			if seat.Status == statusFilter {
				filtered = append(filtered, seat)
			}
		}
		seats = filtered
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}

// GetSeat returns a single seat by trip and label
func (c *Controller) GetSeat(ctx *gin.Context) {
	tripID := ctx.Param("id")
	label := ctx.Param("label")

	seat, err := c.service.GetSeat(ctx.Request.Context(), tripID, label)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

// HoldSeat places a temporary hold on a seat for the authenticated user
func (c *Controller) HoldSeat(ctx *gin.Context) {
	tripID := ctx.Param("id")
	label := ctx.Param("label")

	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	hold, err := c.service.HoldSeat(ctx.Request.Context(), tripID, label, userID.(string))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat held successfully", hold, nil)
}

// ReleaseHold drops the authenticated user's hold on a seat
func (c *Controller) ReleaseHold(ctx *gin.Context) {
	tripID := ctx.Param("id")
	label := ctx.Param("label")

	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.ReleaseHold(ctx.Request.Context(), tripID, label, userID.(string)); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat hold released", nil, nil)
}
