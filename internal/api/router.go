package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arkasetya/field-booking-backend/internal/auth"
	"github.com/arkasetya/field-booking-backend/internal/booking"
	bookingHttp "github.com/arkasetya/field-booking-backend/internal/booking/http"
	"github.com/arkasetya/field-booking-backend/internal/config"
	"github.com/arkasetya/field-booking-backend/internal/field"
	fieldHttp "github.com/arkasetya/field-booking-backend/internal/field/http"
	"github.com/arkasetya/field-booking-backend/internal/user"
	userHttp "github.com/arkasetya/field-booking-backend/internal/user/http"
)

// NewRouter assembles middleware (CORS, logging, metrics, recovery) and
// registers routes for all modules under /v1.
func NewRouter(
	cfg *config.Config,
	userService user.Service,
	fieldService field.Service,
	bookingService booking.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery(), Metrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(jwtManager)
	adminMiddleware := RequireAdmin(userService)

	userHandler := userHttp.NewHandler(userService)
	fieldHandler := fieldHttp.NewHandler(fieldService)
	bookingHandler := bookingHttp.NewHandler(bookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler)
		fieldHttp.RegisterRoutes(v1, fieldHandler)

		protected := v1.Group("")
		protected.Use(authMiddleware)
		{
			userHttp.RegisterProtectedRoutes(protected, userHandler)
			bookingHttp.RegisterRoutes(protected, bookingHandler)
		}

		admin := v1.Group("/admin")
		admin.Use(authMiddleware, adminMiddleware)
		{
			userHttp.RegisterAdminRoutes(admin, userHandler)
			fieldHttp.RegisterAdminRoutes(admin, fieldHandler)
			bookingHttp.RegisterAdminRoutes(admin, bookingHandler)
		}
	}

	return r
}
