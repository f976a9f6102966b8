package bookings

import (
	"net/http"

	"busline/internal/shared/utils/response"
	"busline/internal/users"

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

func requester(ctx *gin.Context) (userID string, isAdmin bool, ok bool) {
	id, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return "", false, false
	}
	role, _ := ctx.Get("user_role")
	return id.(string), role == string(users.RoleAdmin), true
}

// CreateBooking books a seat for the authenticated user
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, _, ok := requester(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking returns one booking by code (own bookings, or any for admins)
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, isAdmin, ok := requester(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), ctx.Param("code"), userID, isAdmin)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// GetMyBookings lists the authenticated user's bookings
func (c *Controller) GetMyBookings(ctx *gin.Context) {
	userID, _, ok := requester(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

// GetAllBookings lists every booking with filters (admin only)
func (c *Controller) GetAllBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

// CancelBooking cancels a booking and frees its seat
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, isAdmin, ok := requester(ctx)
	if !ok {
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), ctx.Param("code"), userID, isAdmin)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// ApproveBooking confirms a booking, re-claiming its seat if it was
// cancelled (admin only)
func (c *Controller) ApproveBooking(ctx *gin.Context) {
	booking, err := c.service.ApproveBooking(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking approved successfully", booking, nil)
}

// RejectBooking cancels a booking from the admin side
func (c *Controller) RejectBooking(ctx *gin.Context) {
	booking, err := c.service.RejectBooking(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking rejected successfully", booking, nil)
}

// CompleteBooking marks a booking as travelled (admin only)
func (c *Controller) CompleteBooking(ctx *gin.Context) {
	booking, err := c.service.CompleteBooking(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking completed successfully", booking, nil)
}
