package booking

import (
	"net/http"
	"time"

	"github.com/arkasetya/field-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrFieldUnavailable  = apperror.New(http.StatusNotFound, "field not found or inactive")
	ErrSlotConflict      = apperror.New(http.StatusConflict, "selected time slot is not available")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status transition not allowed")
	ErrNotCancellable    = apperror.New(http.StatusConflict, "booking can no longer be cancelled")
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
	StatusCompleted      Status = "completed"

	// StatusExpired is set by the external payment-expiry sweep once
	// payment_due passes. Expired bookings free their slot.
	StatusExpired Status = "expired"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Cancellable reports whether an explicit cancel is allowed from s.
func (s Status) Cancellable() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// CanTransitionTo reports whether the state machine allows moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusPendingPayment:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusExpired
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	}
	// cancelled / completed / expired are terminal
	return false
}

// BlocksSlot reports whether a booking in this status occupies its time
// slot for conflict purposes.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled && s != StatusExpired
}

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Booking is a reservation of a field for a time slot on a date.
// Start/End times are zero-padded "HH:MM" strings.
type Booking struct {
	ID                 string // BK-YYYYMMDD-XXXXXX
	FieldID            int64
	FieldName          string // joined
	FieldLocation      string // joined
	UserID             string
	UserName           string // joined
	UserEmail          string // joined
	BookingDate        time.Time
	StartTime          string
	EndTime            string
	TotalPrice         float64
	Status             Status
	PaymentStatus      PaymentStatus
	PaymentDue         time.Time
	Notes              *string
	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID  string
	FieldID int64
	Status  string
	Date    *time.Time

	Page     int
	PageSize int
}

// StatsFilter scopes booking statistics.
type StatsFilter struct {
	UserID  string
	FieldID int64
}

// Stats aggregates bookings by status plus revenue numbers. Revenue
// figures cover slot-holding bookings only.
type Stats struct {
	TotalBookings     int64
	PendingPayment    int64
	Confirmed         int64
	Cancelled         int64
	Completed         int64
	Expired           int64
	TotalRevenue      float64
	AverageBookingVal float64
}
