package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arkasetya/field-booking-backend/internal/db"
	"github.com/arkasetya/field-booking-backend/internal/field"
	"github.com/arkasetya/field-booking-backend/internal/pkg/bookingid"
	"github.com/arkasetya/field-booking-backend/internal/pkg/timeslot"
)

// paymentWindow is how long a new booking may stay unpaid before the
// expiry sweep releases its slot.
const paymentWindow = time.Hour

// insertAttempts bounds retries on a generated-id collision.
const insertAttempts = 3

// FieldDirectory is the slice of the field service the admission engine
// depends on.
type FieldDirectory interface {
	GetForBooking(ctx context.Context, q db.Querier, id int64) (*field.BookingInfo, error)
}

// CreateInput carries a booking request into the admission engine.
type CreateInput struct {
	FieldID     int64
	UserID      string
	BookingDate time.Time
	StartTime   string
	EndTime     string
	Notes       *string
}

// UpdateInput patches a booking. Nil pointers leave the column as is.
type UpdateInput struct {
	BookingDate   *time.Time
	StartTime     *string
	EndTime       *string
	Status        *string
	PaymentStatus *string
	Notes         *string
}

// CancelInput records who cancelled a booking and why.
type CancelInput struct {
	CancelledBy string
	Reason      *string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Booking, error)
	Cancel(ctx context.Context, id string, in CancelInput) (*Booking, error)
	Stats(ctx context.Context, filter StatsFilter) (*Stats, error)
}

type service struct {
	repo   Repository
	fields FieldDirectory
	tx     db.TxRunner
	now    func() time.Time
}

func NewService(repo Repository, fields FieldDirectory, tx db.TxRunner) Service {
	return &service{
		repo:   repo,
		fields: fields,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create admits a booking. The field lookup, conflict scan and insert
// all run in one transaction; the field row lock taken by the lookup
// serializes concurrent admissions for the same field, so two requests
// for overlapping slots cannot both pass the conflict scan.
func (s *service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	start, err := timeslot.Normalize(in.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := timeslot.Normalize(in.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	hours, err := timeslot.Hours(start, end)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	var b *Booking
	err = s.tx.WithinTx(ctx, func(q db.Querier) error {
		info, err := s.fields.GetForBooking(ctx, q, in.FieldID)
		if err != nil {
			if errors.Is(err, field.ErrNotFound) {
				return ErrFieldUnavailable
			}
			return err
		}

		conflict, err := s.repo.HasConflict(ctx, q, in.FieldID, in.BookingDate, start, end, "")
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotConflict
		}

		now := s.now()
		b = &Booking{
			FieldID:       in.FieldID,
			UserID:        in.UserID,
			BookingDate:   in.BookingDate,
			StartTime:     start,
			EndTime:       end,
			TotalPrice:    info.PricePerHour * hours,
			Status:        StatusPendingPayment,
			PaymentStatus: PaymentPending,
			PaymentDue:    now.Add(paymentWindow),
			Notes:         in.Notes,
		}

		for attempt := 0; attempt < insertAttempts; attempt++ {
			b.ID = bookingid.New(now)
			err = s.repo.Insert(ctx, q, b)
			if !errors.Is(err, ErrDuplicateID) {
				return err
			}
			log.Warn().Str("booking_id", b.ID).Msg("booking id collision, regenerating")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID).
		Int64("field_id", b.FieldID).
		Str("user_id", b.UserID).
		Str("slot", b.StartTime+"-"+b.EndTime).
		Msg("booking created")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

// Update patches a booking inside a transaction. When the date or the
// slot changes, the conflict scan runs again (excluding the booking
// itself) and the price is recomputed from the field's current rate.
func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Booking, error) {
	if in.Status != nil && !Status(*in.Status).Valid() {
		return nil, ErrInvalidStatus
	}
	if in.PaymentStatus != nil && !PaymentStatus(*in.PaymentStatus).Valid() {
		return nil, ErrInvalidStatus
	}

	var b *Booking
	err := s.tx.WithinTx(ctx, func(q db.Querier) error {
		var err error
		b, err = s.repo.Get(ctx, q, id)
		if err != nil {
			return err
		}

		if in.Status != nil {
			next := Status(*in.Status)
			if !b.Status.CanTransitionTo(next) {
				return ErrInvalidTransition
			}
			b.Status = next
			if next == StatusCancelled {
				now := s.now()
				b.CancelledAt = &now
			}
		}
		if in.PaymentStatus != nil {
			b.PaymentStatus = PaymentStatus(*in.PaymentStatus)
		}
		if in.Notes != nil {
			b.Notes = in.Notes
		}

		slotChanged := false
		if in.BookingDate != nil && !in.BookingDate.Equal(b.BookingDate) {
			b.BookingDate = *in.BookingDate
			slotChanged = true
		}
		if in.StartTime != nil {
			start, err := timeslot.Normalize(*in.StartTime)
			if err != nil {
				return ErrInvalidTimeRange
			}
			if start != b.StartTime {
				b.StartTime = start
				slotChanged = true
			}
		}
		if in.EndTime != nil {
			end, err := timeslot.Normalize(*in.EndTime)
			if err != nil {
				return ErrInvalidTimeRange
			}
			if end != b.EndTime {
				b.EndTime = end
				slotChanged = true
			}
		}

		if slotChanged {
			hours, err := timeslot.Hours(b.StartTime, b.EndTime)
			if err != nil {
				return ErrInvalidTimeRange
			}
			info, err := s.fields.GetForBooking(ctx, q, b.FieldID)
			if err != nil {
				if errors.Is(err, field.ErrNotFound) {
					return ErrFieldUnavailable
				}
				return err
			}
			conflict, err := s.repo.HasConflict(ctx, q, b.FieldID, b.BookingDate, b.StartTime, b.EndTime, b.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrSlotConflict
			}
			b.TotalPrice = info.PricePerHour * hours
		}

		return s.repo.Update(ctx, q, b)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID).Str("status", string(b.Status)).Msg("booking updated")
	return b, nil
}

// Cancel moves a booking to cancelled. Only pending_payment and
// confirmed bookings can be cancelled; the distinction between a
// missing booking and a non-cancellable one survives in the error.
func (s *service) Cancel(ctx context.Context, id string, in CancelInput) (*Booking, error) {
	var b *Booking
	err := s.tx.WithinTx(ctx, func(q db.Querier) error {
		var err error
		b, err = s.repo.Get(ctx, q, id)
		if err != nil {
			return err
		}
		if !b.Status.Cancellable() {
			return ErrNotCancellable
		}

		now := s.now()
		b.Status = StatusCancelled
		b.CancelledBy = &in.CancelledBy
		b.CancellationReason = in.Reason
		b.CancelledAt = &now
		return s.repo.Update(ctx, q, b)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID).Str("cancelled_by", in.CancelledBy).Msg("booking cancelled")
	return b, nil
}

func (s *service) Stats(ctx context.Context, filter StatsFilter) (*Stats, error) {
	return s.repo.Stats(ctx, filter)
}
