package field

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arkasetya/field-booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, f *Field) error
	GetByID(ctx context.Context, id int64) (*Field, error)
	List(ctx context.Context, filter Filter) ([]*Field, int, error)
	Update(ctx context.Context, f *Field) error
	Deactivate(ctx context.Context, id int64) error

	// GetForBooking reads the field's booking-relevant columns with a row
	// lock, restricted to active fields. Must be called inside the
	// admission transaction via q.
	GetForBooking(ctx context.Context, q db.Querier, id int64) (*BookingInfo, error)

	AddImage(ctx context.Context, img *Image) error
	GetImage(ctx context.Context, imageID string) (*Image, error)
	ListImages(ctx context.Context, fieldID int64) ([]*Image, error)
	SetMainImage(ctx context.Context, fieldID int64, url string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *Field) error {
	const query = `
		INSERT INTO public.fields
			(name, location_summary, sport_type, price_per_hour, currency, capacity, is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		f.Name, f.LocationSummary, f.SportType, f.PricePerHour,
		f.Currency, f.Capacity, f.IsFeatured, f.IsActive,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create field failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Field, error) {
	const query = `
		SELECT id, name, location_summary, sport_type, price_per_hour, currency,
		       capacity, rating, reviews_count, main_image_url, is_featured, is_active,
		       created_at, updated_at
		FROM public.fields
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var f Field
	if err := row.Scan(
		&f.ID, &f.Name, &f.LocationSummary, &f.SportType, &f.PricePerHour, &f.Currency,
		&f.Capacity, &f.Rating, &f.ReviewsCount, &f.MainImageURL, &f.IsFeatured, &f.IsActive,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get field failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Field, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "location_summary", "sport_type", "price_per_hour", "currency",
		"capacity", "rating", "reviews_count", "main_image_url", "is_featured", "is_active",
		"created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.fields")

	if filter.SportType != "" {
		query = query.Where(squirrel.Eq{"sport_type": filter.SportType})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location_summary": "%" + filter.Location + "%"})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"price_per_hour": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"price_per_hour": *filter.MaxPrice})
	}
	if filter.Featured != nil {
		query = query.Where(squirrel.Eq{"is_featured": *filter.Featured})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list fields query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fields failed: %w", err)
	}
	defer rows.Close()

	var fields []*Field
	var total int

	for rows.Next() {
		var f Field
		if err := rows.Scan(
			&f.ID, &f.Name, &f.LocationSummary, &f.SportType, &f.PricePerHour, &f.Currency,
			&f.Capacity, &f.Rating, &f.ReviewsCount, &f.MainImageURL, &f.IsFeatured, &f.IsActive,
			&f.CreatedAt, &f.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan field failed: %w", err)
		}
		fields = append(fields, &f)
	}

	return fields, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Field) error {
	const query = `
		UPDATE public.fields
		SET name = $1, location_summary = $2, sport_type = $3, price_per_hour = $4,
		    currency = $5, capacity = $6, is_featured = $7, is_active = $8,
		    updated_at = now()
		WHERE id = $9
	`
	ct, err := r.pool.Exec(ctx, query,
		f.Name, f.LocationSummary, f.SportType, f.PricePerHour,
		f.Currency, f.Capacity, f.IsFeatured, f.IsActive, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update field failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a field. Bookings keep their FK; the field just
// stops accepting new ones.
func (r *pgxRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `
		UPDATE public.fields
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate field failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetForBooking(ctx context.Context, q db.Querier, id int64) (*BookingInfo, error) {
	// FOR UPDATE serializes concurrent admissions for the same field:
	// two transactions booking the same field queue here instead of both
	// passing the conflict scan.
	const query = `
		SELECT id, price_per_hour
		FROM public.fields
		WHERE id = $1 AND is_active = true
		FOR UPDATE
	`
	var info BookingInfo
	if err := q.QueryRow(ctx, query, id).Scan(&info.ID, &info.PricePerHour); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get field for booking failed: %w", err)
	}
	return &info, nil
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.field_images").
		Columns("id", "field_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		Values(img.ID, img.FieldID, img.Filename, img.StoragePath, img.ThumbnailPath, img.ContentType, img.Size, img.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add image query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("add field image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetImage(ctx context.Context, imageID string) (*Image, error) {
	const query = `
		SELECT id, field_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.field_images
		WHERE id = $1
	`
	var img Image
	err := r.pool.QueryRow(ctx, query, imageID).Scan(
		&img.ID, &img.FieldID, &img.Filename, &img.StoragePath,
		&img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("get field image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) ListImages(ctx context.Context, fieldID int64) ([]*Image, error) {
	const query = `
		SELECT id, field_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.field_images
		WHERE field_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list field images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID, &img.FieldID, &img.Filename, &img.StoragePath,
			&img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan field image failed: %w", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

func (r *pgxRepository) SetMainImage(ctx context.Context, fieldID int64, url string) error {
	const query = `
		UPDATE public.fields
		SET main_image_url = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, url, fieldID)
	if err != nil {
		return fmt.Errorf("set main image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
