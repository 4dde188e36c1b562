package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arkasetya/field-booking-backend/internal/auth"
	"github.com/arkasetya/field-booking-backend/internal/booking"
	"github.com/arkasetya/field-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func parseDate(c *gin.Context, s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

// Create places a booking for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, ok := parseDate(c, body.BookingDate)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateInput{
		FieldID:     body.FieldID,
		UserID:      auth.GetUserID(c),
		BookingDate: date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		Notes:       body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotConflict):
			admissionsTotal.WithLabelValues(outcomeConflict).Inc()
		default:
			admissionsTotal.WithLabelValues(outcomeRejected).Inc()
		}
		response.Error(c, err)
		return
	}
	admissionsTotal.WithLabelValues(outcomeCreated).Inc()
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns one booking. Non-admin callers only see their own.
func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if auth.GetUserRole(c) != "admin" && b.UserID != auth.GetUserID(c) {
		response.Error(c, booking.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns the authenticated user's bookings.
func (h *Handler) List(c *gin.Context) {
	h.list(c, auth.GetUserID(c))
}

// AdminList returns bookings across all users.
func (h *Handler) AdminList(c *gin.Context) {
	h.list(c, "")
}

func (h *Handler) list(c *gin.Context, userID string) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := booking.Filter{
		UserID:   userID,
		FieldID:  req.FieldID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Date != "" {
		date, ok := parseDate(c, req.Date)
		if !ok {
			return
		}
		filter.Date = &date
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
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

// Update is the admin patch endpoint: reschedule, change status or
// payment status, edit notes.
func (h *Handler) Update(c *gin.Context) {
	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	in := booking.UpdateInput{
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Status:        body.Status,
		PaymentStatus: body.PaymentStatus,
		Notes:         body.Notes,
	}
	if body.BookingDate != nil {
		date, ok := parseDate(c, *body.BookingDate)
		if !ok {
			return
		}
		in.BookingDate = &date
	}

	b, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel lets a user cancel their own booking.
func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if b.UserID != auth.GetUserID(c) {
		response.Error(c, booking.ErrNotFound)
		return
	}

	h.cancel(c, "user")
}

// AdminCancel cancels any booking.
func (h *Handler) AdminCancel(c *gin.Context) {
	h.cancel(c, "admin")
}

func (h *Handler) cancel(c *gin.Context, cancelledBy string) {
	var body CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), booking.CancelInput{
		CancelledBy: cancelledBy,
		Reason:      body.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Stats is the admin overview endpoint.
func (h *Handler) Stats(c *gin.Context) {
	var req struct {
		UserID  string `form:"user_id"`
		FieldID int64  `form:"field_id"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	s, err := h.service.Stats(c.Request.Context(), booking.StatsFilter{
		UserID:  req.UserID,
		FieldID: req.FieldID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStatsResponse(s))
}
