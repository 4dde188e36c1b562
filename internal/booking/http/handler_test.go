package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkasetya/field-booking-backend/internal/auth"
	"github.com/arkasetya/field-booking-backend/internal/booking"
)

type fakeBookingService struct {
	booking.Service

	stored    *booking.Booking
	cancelled bool
}

func (f *fakeBookingService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	if f.stored != nil && f.stored.ID == id {
		copied := *f.stored
		return &copied, nil
	}
	return nil, booking.ErrNotFound
}

func (f *fakeBookingService) Cancel(ctx context.Context, id string, in booking.CancelInput) (*booking.Booking, error) {
	f.cancelled = true
	copied := *f.stored
	copied.Status = booking.StatusCancelled
	return &copied, nil
}

func newTestRouter(svc booking.Service, jm *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	g := r.Group("/v1")
	g.Use(auth.AuthRequired(jm))
	RegisterRoutes(g, NewHandler(svc))
	return r
}

func bearerFor(t *testing.T, jm *auth.JWTManager, userID string) string {
	t.Helper()
	token, err := jm.GenerateAccessToken(userID, userID+"@example.com", "customer")
	require.NoError(t, err)
	return "Bearer " + token
}

// A booking belonging to someone else reads as missing, so the response
// does not confirm the id exists.
func TestGetForeignBookingReadsAsMissing(t *testing.T) {
	jm := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := &fakeBookingService{stored: &booking.Booking{
		ID:     "BK-20260314-A1B2C3",
		UserID: "owner",
		Status: booking.StatusConfirmed,
	}}
	router := newTestRouter(svc, jm)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/BK-20260314-A1B2C3", nil)
	req.Header.Set("Authorization", bearerFor(t, jm, "intruder"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOwnBooking(t *testing.T) {
	jm := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := &fakeBookingService{stored: &booking.Booking{
		ID:     "BK-20260314-A1B2C3",
		UserID: "owner",
		Status: booking.StatusConfirmed,
	}}
	router := newTestRouter(svc, jm)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/BK-20260314-A1B2C3", nil)
	req.Header.Set("Authorization", bearerFor(t, jm, "owner"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BK-20260314-A1B2C3")
}

func TestCancelForeignBookingReadsAsMissing(t *testing.T) {
	jm := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := &fakeBookingService{stored: &booking.Booking{
		ID:     "BK-20260314-A1B2C3",
		UserID: "owner",
		Status: booking.StatusConfirmed,
	}}
	router := newTestRouter(svc, jm)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/BK-20260314-A1B2C3/cancel", nil)
	req.Header.Set("Authorization", bearerFor(t, jm, "intruder"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, svc.cancelled)
}
