package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"yamdb/database"
	"yamdb/internal/config"
	httpapi "yamdb/internal/http-api"
	"yamdb/internal/mailer"
	"yamdb/internal/ratelimit"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

The server listens on HTTP_HOST:HTTP_PORT and stops gracefully on SIGINT or
SIGTERM, letting in-flight requests finish.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if migrateOnStart {
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Info().Msg("migrations applied")
	}

	db, err := database.ConnectDB(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	mail, err := mailer.New(mailer.Config{Provider: cfg.MailProvider, ResendAPIKey: cfg.ResendAPIKey}, logger)
	if err != nil {
		return err
	}

	limiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	router, err := httpapi.NewRouter(httpapi.Dependencies{
		Config:  cfg,
		DB:      db,
		Mailer:  mail,
		Limiter: limiter,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLimiter picks Redis when REDIS_URL is set and falls back to an
// in-process limiter. It returns nil when throttling is off.
func newLimiter(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ratelimit.Limiter, error) {
	rl := ratelimit.Config{Limit: cfg.AuthRateLimit, Window: cfg.AuthRateWindow}
	if !rl.Enabled() {
		return nil, nil
	}
	if cfg.RedisURL == "" {
		logger.Info().Msg("auth throttle uses in-process limiter")
		return ratelimit.NewMemoryLimiter(rl), nil
	}
	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("auth throttle uses redis")
	return ratelimit.NewRedisLimiter(client, rl), nil
}
