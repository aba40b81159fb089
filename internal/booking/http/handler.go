package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishtools/equipment-booking-backend/internal/auth"
	"github.com/parishtools/equipment-booking-backend/internal/booking"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		RequestedByID: req.RequestedByID,
		AssignedToID:  req.AssignedToID,
		AssetID:       req.AssetID,
		KitID:         req.KitID,
		Status:        req.Status,
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	// Only admins may create a booking that starts checked out.
	if body.Immediate && !auth.IsSystemAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "immediate check-out requires admin"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RequestedByID: auth.GetUserID(c),
		AssetID:       body.AssetID,
		KitID:         body.KitID,
		AssignedToID:  body.AssignedToID,
		Window:        body.window(),
		Purpose:       body.Purpose,
		Notes:         body.Notes,
		Immediate:     body.Immediate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		Window:       body.window(),
		AssignedToID: body.AssignedToID,
		Purpose:      body.Purpose,
		Notes:        body.Notes,
	}, auth.GetUserID(c), auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), auth.IsSystemAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckConflicts runs the advisory conflict report for a candidate window.
// It never blocks a subsequent create or update.
func (h *Handler) CheckConflicts(c *gin.Context) {
	var body CheckConflictsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.CheckConflicts(c.Request.Context(), body.toModel())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCheckConflictsResponse(resp))
}

func (h *Handler) transition(c *gin.Context, target booking.Status) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Transition(c.Request.Context(), req.ID, target, auth.GetUserID(c), auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context)  { h.transition(c, booking.StatusApproved) }
func (h *Handler) Decline(c *gin.Context)  { h.transition(c, booking.StatusDeclined) }
func (h *Handler) Cancel(c *gin.Context)   { h.transition(c, booking.StatusCancelled) }
func (h *Handler) CheckOut(c *gin.Context) { h.transition(c, booking.StatusActive) }
func (h *Handler) CheckIn(c *gin.Context)  { h.transition(c, booking.StatusCompleted) }
