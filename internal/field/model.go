package field

import (
	"net/http"
	"time"

	"github.com/arkasetya/field-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "field not found")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "price_per_hour must be greater than zero")
	ErrImageNotFound = apperror.New(http.StatusNotFound, "field image not found")
)

// Field is a bookable sports field.
type Field struct {
	ID              int64
	Name            string
	LocationSummary string
	SportType       string
	PricePerHour    float64
	Currency        string
	Capacity        int
	Rating          float64
	ReviewsCount    int
	MainImageURL    *string
	IsFeatured      bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingInfo is the slice of a field the booking admission engine needs.
// It is read with a row lock inside the admission transaction.
type BookingInfo struct {
	ID           int64
	PricePerHour float64
}

// Filter defines parameters for listing/searching fields.
type Filter struct {
	SportType  string
	Location   string // substring match on location_summary
	MinPrice   *float64
	MaxPrice   *float64
	Featured   *bool
	ActiveOnly bool

	Page     int
	PageSize int
}

// Image is an uploaded photo of a field.
type Image struct {
	ID            string // UUID
	FieldID       int64
	Filename      string
	StoragePath   string  // internal, never serialized
	ThumbnailPath *string // internal, never serialized
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// ImageURL returns the public URL serving the original image.
func ImageURL(id string) string {
	return "/v1/field-images/" + id
}

// ThumbnailURL returns the public URL serving the image thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/field-images/" + id + "/thumbnail"
}
