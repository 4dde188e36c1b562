package field

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arkasetya/field-booking-backend/internal/db"
	"github.com/arkasetya/field-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name            string
	LocationSummary string
	SportType       string
	PricePerHour    float64
	Currency        string
	Capacity        int
	IsFeatured      bool
}

type UpdateRequest struct {
	Name            *string
	LocationSummary *string
	SportType       *string
	PricePerHour    *float64
	Currency        *string
	Capacity        *int
	IsFeatured      *bool
	IsActive        *bool
}

type Service interface {
	// Search lists active fields only; the admin listing goes through
	// ListAll.
	Search(ctx context.Context, filter Filter) ([]*Field, int, error)
	ListAll(ctx context.Context, filter Filter) ([]*Field, int, error)
	GetByID(ctx context.Context, id int64) (*Field, error)
	Create(ctx context.Context, req CreateRequest) (*Field, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Field, error)
	Delete(ctx context.Context, id int64) error

	// GetForBooking is consumed by the booking admission engine inside
	// its transaction.
	GetForBooking(ctx context.Context, q db.Querier, id int64) (*BookingInfo, error)

	UploadImage(ctx context.Context, fieldID int64, header *multipart.FileHeader) (*Image, error)
	ListImages(ctx context.Context, fieldID int64) ([]*Image, error)
	OpenImage(ctx context.Context, imageID string, thumbnail bool) (io.ReadCloser, *Image, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Search(ctx context.Context, filter Filter) ([]*Field, int, error) {
	filter.ActiveOnly = true
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context, filter Filter) ([]*Field, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Field, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Field, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}

	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}

	f := &Field{
		Name:            strings.TrimSpace(req.Name),
		LocationSummary: req.LocationSummary,
		SportType:       req.SportType,
		PricePerHour:    req.PricePerHour,
		Currency:        currency,
		Capacity:        req.Capacity,
		IsFeatured:      req.IsFeatured,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	log.Info().Int64("field_id", f.ID).Str("name", f.Name).Msg("field created")
	return f, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Field, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.LocationSummary != nil {
		f.LocationSummary = *req.LocationSummary
	}
	if req.SportType != nil {
		f.SportType = *req.SportType
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		f.PricePerHour = *req.PricePerHour
	}
	if req.Currency != nil {
		f.Currency = *req.Currency
	}
	if req.Capacity != nil {
		f.Capacity = *req.Capacity
	}
	if req.IsFeatured != nil {
		f.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	// Soft delete: existing bookings keep referencing the field.
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("field_id", id).Msg("field deactivated")
	return nil
}

func (s *service) GetForBooking(ctx context.Context, q db.Querier, id int64) (*BookingInfo, error) {
	return s.repo.GetForBooking(ctx, q, id)
}

func (s *service) UploadImage(ctx context.Context, fieldID int64, header *multipart.FileHeader) (*Image, error) {
	f, err := s.repo.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffered so the content can be read twice (save + thumbnail).
	// Field photos are small enough for this to be fine.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))

	imageID := uuid.New().String()
	shard := imageID[:2]
	storagePath := fmt.Sprintf("fields/%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save image to storage: %w", err)
	}

	// Thumbnail generation is best effort; a photo without a thumbnail
	// still serves.
	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumbReader, err := s.imgProc.Thumbnail(bytes.NewReader(fileBytes), 400, 300)
		if err == nil {
			tPath := fmt.Sprintf("fields/%s/%s_thumb.jpg", shard, imageID)
			if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
				thumbnailPath = &tPath
			}
		} else {
			log.Warn().Err(err).Str("image_id", imageID).Msg("thumbnail generation failed")
		}
	}

	img := &Image{
		ID:            imageID,
		FieldID:       fieldID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.AddImage(ctx, img); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	// First uploaded image becomes the field's main image.
	if f.MainImageURL == nil {
		if err := s.repo.SetMainImage(ctx, fieldID, ImageURL(imageID)); err != nil {
			log.Warn().Err(err).Int64("field_id", fieldID).Msg("set main image failed")
		}
	}

	return img, nil
}

func (s *service) ListImages(ctx context.Context, fieldID int64) ([]*Image, error) {
	if _, err := s.repo.GetByID(ctx, fieldID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, fieldID)
}

func (s *service) OpenImage(ctx context.Context, imageID string, thumbnail bool) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}

	path := img.StoragePath
	if thumbnail {
		if img.ThumbnailPath == nil {
			return nil, nil, ErrImageNotFound
		}
		path = *img.ThumbnailPath
	}

	stream, err := s.storage.Get(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image from storage: %w", err)
	}
	return stream, img, nil
}
