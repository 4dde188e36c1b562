package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arkasetya/field-booking-backend/internal/db"
)

// ErrDuplicateID signals a primary-key collision on the generated
// booking id; the caller regenerates the id and retries the insert.
var ErrDuplicateID = errors.New("booking id already exists")

type Repository interface {
	// Insert writes a new booking row. Runs on q so the admission engine
	// can keep it inside its transaction.
	Insert(ctx context.Context, q db.Querier, b *Booking) error

	// HasConflict reports whether any slot-blocking booking for the same
	// field and date overlaps [startTime, endTime). excludeID skips a
	// booking (used when re-checking during updates).
	HasConflict(ctx context.Context, q db.Querier, fieldID int64, date time.Time, startTime, endTime, excludeID string) (bool, error)

	// Get reads one booking with a row lock, for update/cancel flows.
	Get(ctx context.Context, q db.Querier, id string) (*Booking, error)

	// Update persists mutable booking columns and refreshes updated_at.
	Update(ctx context.Context, q db.Querier, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Stats(ctx context.Context, filter StatsFilter) (*Stats, error)
}

type pgxRepository struct {
	q db.Querier
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{q: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, q db.Querier, b *Booking) error {
	// ON CONFLICT DO NOTHING instead of letting the unique violation
	// raise: a raised error would abort the surrounding transaction and
	// kill the id-regenerate retry. On a collision RETURNING yields no
	// row and the transaction stays usable.
	const query = `
		INSERT INTO public.bookings
			(id, field_id, user_id, booking_date, start_time, end_time,
			 total_price, status, payment_status, payment_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		b.ID, b.FieldID, b.UserID, b.BookingDate, b.StartTime, b.EndTime,
		b.TotalPrice, b.Status, b.PaymentStatus, b.PaymentDue, b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasConflict(ctx context.Context, q db.Querier, fieldID int64, date time.Time, startTime, endTime, excludeID string) (bool, error) {
	// Three-clause overlap predicate over TIME columns, matching the
	// half-open [start, end) interval semantics: touching boundaries do
	// not conflict.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"field_id": fieldID}).
		Where("booking_date = ?", date).
		Where("status NOT IN ('cancelled', 'expired')").
		Where(`(
			(start_time <= ?::time AND end_time > ?::time) OR
			(start_time < ?::time AND end_time >= ?::time) OR
			(start_time >= ?::time AND end_time <= ?::time)
		)`, startTime, startTime, endTime, endTime, startTime, endTime)

	if excludeID != "" {
		sub = sub.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build conflict query failed: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slot conflict failed: %w", err)
	}
	return exists, nil
}

const bookingColumns = `
	b.id, b.field_id, f.name, f.location_summary,
	b.user_id, u.name, u.email,
	b.booking_date, to_char(b.start_time, 'HH24:MI'), to_char(b.end_time, 'HH24:MI'),
	b.total_price, b.status, b.payment_status, b.payment_due, b.notes,
	b.cancellation_reason, b.cancelled_by, b.cancelled_at,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.FieldID, &b.FieldName, &b.FieldLocation,
		&b.UserID, &b.UserName, &b.UserEmail,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&b.TotalPrice, &b.Status, &b.PaymentStatus, &b.PaymentDue, &b.Notes,
		&b.CancellationReason, &b.CancelledBy, &b.CancelledAt,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Get(ctx context.Context, q db.Querier, id string) (*Booking, error) {
	// FOR UPDATE OF b locks only the booking row, not the joined field
	// and user rows.
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.fields f ON b.field_id = f.id
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
		FOR UPDATE OF b
	`
	b, err := scanBooking(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.fields f ON b.field_id = f.id
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
	`
	b, err := scanBooking(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Update(ctx context.Context, q db.Querier, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("booking_date", b.BookingDate).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("total_price", b.TotalPrice).
		Set("status", b.Status).
		Set("payment_status", b.PaymentStatus).
		Set("notes", b.Notes).
		Set("cancellation_reason", b.CancellationReason).
		Set("cancelled_by", b.CancelledBy).
		Set("cancelled_at", b.CancelledAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.field_id", "f.name", "f.location_summary",
		"b.user_id", "u.name", "u.email",
		"b.booking_date", "to_char(b.start_time, 'HH24:MI')", "to_char(b.end_time, 'HH24:MI')",
		"b.total_price", "b.status", "b.payment_status", "b.payment_due", "b.notes",
		"b.cancellation_reason", "b.cancelled_by", "b.cancelled_at",
		"b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.fields f ON b.field_id = f.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.FieldID != 0 {
		query = query.Where(squirrel.Eq{"b.field_id": filter.FieldID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.Date != nil {
		query = query.Where("b.booking_date = ?", *filter.Date)
	}

	query = query.OrderBy("b.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Stats(ctx context.Context, filter StatsFilter) (*Stats, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// Revenue only counts bookings that kept their slot; cancelled and
	// expired ones never earned anything.
	query := psql.Select(
		"count(*)",
		"count(*) FILTER (WHERE status = 'pending_payment')",
		"count(*) FILTER (WHERE status = 'confirmed')",
		"count(*) FILTER (WHERE status = 'cancelled')",
		"count(*) FILTER (WHERE status = 'completed')",
		"count(*) FILTER (WHERE status = 'expired')",
		"COALESCE(sum(total_price) FILTER (WHERE status NOT IN ('cancelled', 'expired')), 0)",
		"COALESCE(avg(total_price) FILTER (WHERE status NOT IN ('cancelled', 'expired')), 0)",
	).From("public.bookings")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.FieldID != 0 {
		query = query.Where(squirrel.Eq{"field_id": filter.FieldID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query failed: %w", err)
	}

	var s Stats
	if err := r.q.QueryRow(ctx, sql, args...).Scan(
		&s.TotalBookings, &s.PendingPayment, &s.Confirmed, &s.Cancelled, &s.Completed,
		&s.Expired, &s.TotalRevenue, &s.AverageBookingVal,
	); err != nil {
		return nil, fmt.Errorf("booking stats failed: %w", err)
	}
	return &s, nil
}
