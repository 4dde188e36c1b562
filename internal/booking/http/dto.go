package http

import (
	"time"

	"github.com/arkasetya/field-booking-backend/internal/booking"
	"github.com/arkasetya/field-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	FieldID     int64   `json:"field_id" binding:"required,min=1"`
	BookingDate string  `json:"booking_date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Notes       *string `json:"notes"`
}

type UpdateBookingRequest struct {
	BookingDate   *string `json:"booking_date"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason"`
}

type ListBookingsRequest struct {
	request.ListParams
	FieldID int64  `form:"field_id"`
	Status  string `form:"status"`
	Date    string `form:"date"`
}

type BookingResponse struct {
	ID                 string     `json:"id"`
	FieldID            int64      `json:"field_id"`
	FieldName          string     `json:"field_name"`
	FieldLocation      string     `json:"field_location"`
	UserID             string     `json:"user_id"`
	UserName           string     `json:"user_name"`
	UserEmail          string     `json:"user_email"`
	BookingDate        string     `json:"booking_date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	TotalPrice         float64    `json:"total_price"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	PaymentDue         time.Time  `json:"payment_due"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledBy        *string    `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		FieldID:            b.FieldID,
		FieldName:          b.FieldName,
		FieldLocation:      b.FieldLocation,
		UserID:             b.UserID,
		UserName:           b.UserName,
		UserEmail:          b.UserEmail,
		BookingDate:        b.BookingDate.Format(dateLayout),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentDue:         b.PaymentDue,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

type StatsResponse struct {
	TotalBookings     int64   `json:"total_bookings"`
	PendingPayment    int64   `json:"pending_payment"`
	Confirmed         int64   `json:"confirmed"`
	Cancelled         int64   `json:"cancelled"`
	Completed         int64   `json:"completed"`
	Expired           int64   `json:"expired"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageBookingVal float64 `json:"average_booking_value"`
}

func NewStatsResponse(s *booking.Stats) StatsResponse {
	return StatsResponse{
		TotalBookings:     s.TotalBookings,
		PendingPayment:    s.PendingPayment,
		Confirmed:         s.Confirmed,
		Cancelled:         s.Cancelled,
		Completed:         s.Completed,
		Expired:           s.Expired,
		TotalRevenue:      s.TotalRevenue,
		AverageBookingVal: s.AverageBookingVal,
	}
}
