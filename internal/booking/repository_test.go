package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type stubQuerier struct {
	lastSQL  string
	lastArgs []any
	row      stubRow
}

func (s *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.lastSQL = sql
	s.lastArgs = args
	return pgconn.CommandTag{}, nil
}

func (s *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (s *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL = sql
	s.lastArgs = args
	return s.row
}

// A colliding id must not raise a unique violation: that would abort
// the admission transaction and the regenerate-retry with it. The
// insert suppresses the conflict and signals the collision through the
// empty RETURNING set instead.
func TestInsertSignalsCollisionWithoutAbortingTx(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		return pgx.ErrNoRows
	}}}
	repo := &pgxRepository{}

	err := repo.Insert(context.Background(), q, &Booking{ID: "BK-20260314-A1B2C3"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, q.lastSQL, "ON CONFLICT (id) DO NOTHING")
	assert.Contains(t, q.lastSQL, "RETURNING created_at, updated_at")
}

func TestInsertScansTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*time.Time) = now
		*dest[1].(*time.Time) = now
		return nil
	}}}
	repo := &pgxRepository{}

	b := &Booking{ID: "BK-20260314-A1B2C3"}
	require.NoError(t, repo.Insert(context.Background(), q, b))
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestHasConflictQuery(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*bool) = true
		return nil
	}}}
	repo := &pgxRepository{}

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	conflict, err := repo.HasConflict(context.Background(), q, 7, date, "14:00", "16:00", "BK-20260314-A1B2C3")
	require.NoError(t, err)
	assert.True(t, conflict)

	assert.Contains(t, q.lastSQL, "status NOT IN ('cancelled', 'expired')")
	assert.Contains(t, q.lastSQL, "id <>")
	assert.Contains(t, q.lastArgs, "BK-20260314-A1B2C3")
}

func TestHasConflictWithoutExclusion(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*bool) = false
		return nil
	}}}
	repo := &pgxRepository{}

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	conflict, err := repo.HasConflict(context.Background(), q, 7, date, "14:00", "16:00", "")
	require.NoError(t, err)
	assert.False(t, conflict)
	assert.NotContains(t, q.lastSQL, "id <>")
}

// Expired bookings get their own bucket and stay out of the revenue
// sums, same as cancelled ones.
func TestStatsQueryShape(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = 10
		*dest[5].(*int64) = 2
		*dest[6].(*float64) = 800
		return nil
	}}}
	repo := &pgxRepository{q: q}

	s, err := repo.Stats(context.Background(), StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.TotalBookings)
	assert.Equal(t, int64(2), s.Expired)
	assert.Equal(t, 800.0, s.TotalRevenue)

	assert.Contains(t, q.lastSQL, "count(*) FILTER (WHERE status = 'expired')")
	assert.Contains(t, q.lastSQL, "sum(total_price) FILTER (WHERE status NOT IN ('cancelled', 'expired'))")
	assert.Contains(t, q.lastSQL, "avg(total_price) FILTER (WHERE status NOT IN ('cancelled', 'expired'))")
}
