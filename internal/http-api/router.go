// Package httpapi assembles the REST surface: repositories, services and
// handlers wired onto one gin engine under the versioned prefix.
package httpapi

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/handler"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/http-api/service"
	"yamdb/internal/mailer"
	"yamdb/internal/metrics"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/ratelimit"
)

// Dependencies are the collaborators the router needs. Limiter may be nil,
// which disables throttling of the auth endpoints.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Mailer  mailer.Mailer
	Limiter ratelimit.Limiter
	Logger  zerolog.Logger
}

func NewRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	codes, err := auth.NewConfirmationCodes(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("confirmation codes: %w", err)
	}
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	titleRepo := repository.NewTitleRepository(deps.DB)
	categoryRepo := repository.NewTaxonomyRepository(deps.DB, models.TaxonomyCategory)
	genreRepo := repository.NewTaxonomyRepository(deps.DB, models.TaxonomyGenre)
	reviewRepo := repository.NewReviewRepository(deps.DB)
	commentRepo := repository.NewCommentRepository(deps.DB)

	// Services
	authService := service.NewAuthService(userRepo, codes, tokens, deps.Mailer, cfg.MailFrom, deps.Logger)
	userService := service.NewUserService(userRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	categoryService := service.NewTaxonomyService(categoryRepo)
	genreService := service.NewTaxonomyService(genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	if cfg.PrometheusEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, deps.DB)
	}).RegisterRoutes(r)

	api := r.Group(cfg.APIPrefix, middleware.Authenticate(authService))

	var throttle gin.HandlerFunc
	if deps.Limiter != nil {
		throttle = middleware.Throttle(deps.Limiter, "auth", deps.Logger)
	}
	handler.NewAuthHandler(authService).RegisterRoutes(api, throttle)
	handler.NewUserHandler(userService, cfg.PageSize).RegisterRoutes(api)
	handler.NewTitleHandler(titleService, cfg.PageSize).RegisterRoutes(api)
	handler.NewTaxonomyHandler(categoryService, cfg.PageSize).RegisterRoutes(api)
	handler.NewTaxonomyHandler(genreService, cfg.PageSize).RegisterRoutes(api)
	handler.NewReviewHandler(reviewService, cfg.PageSize).RegisterRoutes(api)
	handler.NewCommentHandler(commentService, cfg.PageSize).RegisterRoutes(api)

	return r, nil
}
