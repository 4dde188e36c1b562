package http

import (
	"time"

	"github.com/arkasetya/field-booking-backend/internal/field"
	"github.com/arkasetya/field-booking-backend/internal/pkg/request"
)

// ListFieldsRequest defines query parameters for searching fields.
type ListFieldsRequest struct {
	request.ListParams
	SportType string   `form:"sport_type"`
	Location  string   `form:"location"`
	MinPrice  *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"max_price" binding:"omitempty,gte=0"`
}

type FieldResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	LocationSummary string    `json:"location_summary"`
	SportType       string    `json:"sport_type"`
	PricePerHour    float64   `json:"price_per_hour"`
	Currency        string    `json:"currency"`
	Capacity        int       `json:"capacity"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviews_count"`
	MainImageURL    *string   `json:"main_image_url"`
	IsFeatured      bool      `json:"is_featured"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewFieldResponse(f *field.Field) FieldResponse {
	return FieldResponse{
		ID:              f.ID,
		Name:            f.Name,
		LocationSummary: f.LocationSummary,
		SportType:       f.SportType,
		PricePerHour:    f.PricePerHour,
		Currency:        f.Currency,
		Capacity:        f.Capacity,
		Rating:          f.Rating,
		ReviewsCount:    f.ReviewsCount,
		MainImageURL:    f.MainImageURL,
		IsFeatured:      f.IsFeatured,
		IsActive:        f.IsActive,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// FieldTag is the minimal field reference embedded in other responses.
type FieldTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateFieldRequest struct {
	Name            string  `json:"name" binding:"required"`
	LocationSummary string  `json:"location_summary"`
	SportType       string  `json:"sport_type" binding:"required"`
	PricePerHour    float64 `json:"price_per_hour" binding:"required,gt=0"`
	Currency        string  `json:"currency"`
	Capacity        int     `json:"capacity" binding:"omitempty,gte=0"`
	IsFeatured      bool    `json:"is_featured"`
}

type UpdateFieldRequest struct {
	Name            *string  `json:"name"`
	LocationSummary *string  `json:"location_summary"`
	SportType       *string  `json:"sport_type"`
	PricePerHour    *float64 `json:"price_per_hour" binding:"omitempty,gt=0"`
	Currency        *string  `json:"currency"`
	Capacity        *int     `json:"capacity" binding:"omitempty,gte=0"`
	IsFeatured      *bool    `json:"is_featured"`
	IsActive        *bool    `json:"is_active"`
}

type ImageResponse struct {
	ID           string    `json:"id"`
	FieldID      int64     `json:"field_id"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *field.Image) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID,
		FieldID:     img.FieldID,
		Filename:    img.Filename,
		URL:         field.ImageURL(img.ID),
		ContentType: img.ContentType,
		Size:        img.Size,
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailPath != nil {
		u := field.ThumbnailURL(img.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}
