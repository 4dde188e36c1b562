// Package app wires the module graph: pool, transaction runner,
// repositories, services, router.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arkasetya/field-booking-backend/internal/api"
	"github.com/arkasetya/field-booking-backend/internal/auth"
	"github.com/arkasetya/field-booking-backend/internal/booking"
	"github.com/arkasetya/field-booking-backend/internal/config"
	"github.com/arkasetya/field-booking-backend/internal/db"
	"github.com/arkasetya/field-booking-backend/internal/field"
	"github.com/arkasetya/field-booking-backend/internal/pkg/storage"
	"github.com/arkasetya/field-booking-backend/internal/user"
)

// Container holds the assembled application.
type Container struct {
	Pool   *pgxpool.Pool
	Router *gin.Engine

	UserService    user.Service
	FieldService   field.Service
	BookingService booking.Service
}

// NewContainer connects to the database and builds every module.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL, cfg.JWTRefreshTokenTTL)
	txRunner := db.NewTxRunner(pool)

	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, hasher, jwtManager)

	fieldRepo := field.NewPgxRepository(pool)
	fieldService := field.NewService(fieldRepo, store)

	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, fieldService, txRunner)

	router := api.NewRouter(cfg, userService, fieldService, bookingService, jwtManager)

	return &Container{
		Pool:           pool,
		Router:         router,
		UserService:    userService,
		FieldService:   fieldService,
		BookingService: bookingService,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() {
	c.Pool.Close()
}
