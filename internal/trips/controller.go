package trips

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

// CreateTrip creates a trip with its full seat inventory (admin only)
func (c *Controller) CreateTrip(ctx *gin.Context) {
	var req CreateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := c.service.CreateTrip(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Trip created successfully", trip, nil)
}

// GetTrip returns one trip with its derived seat availability
func (c *Controller) GetTrip(ctx *gin.Context) {
	trip, err := c.service.GetTrip(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip retrieved successfully", trip, nil)
}

// SearchTrips lists trips filtered by origin, destination and departure day
func (c *Controller) SearchTrips(ctx *gin.Context) {
	var query TripSearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.SearchTrips(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trips retrieved successfully", result, nil)
}

// UpdateTrip updates trip fields; the seat inventory is fixed at creation
func (c *Controller) UpdateTrip(ctx *gin.Context) {
	var req UpdateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := c.service.UpdateTrip(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip updated successfully", trip, nil)
}

// DeleteTrip removes a trip and its seats (admin only)
func (c *Controller) DeleteTrip(ctx *gin.Context) {
	if err := c.service.DeleteTrip(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip deleted successfully", nil, nil)
}
