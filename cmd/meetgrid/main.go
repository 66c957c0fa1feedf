// @title meetgrid API
// @version 1.0
// @description Group availability polls: events, respondents, availability grids and overlap summaries.
// @BasePath /api
// @securityDefinitions.apikey EditToken
// @in header
// @name X-Edit-Token
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"meetgrid/config"
	_ "meetgrid/docs"
	"meetgrid/internal/adapters/auth"
	deliveryhttp "meetgrid/internal/delivery/http"
	"meetgrid/internal/delivery/http/controllers"
	"meetgrid/internal/delivery/http/middleware"
	"meetgrid/internal/jobs"
	"meetgrid/internal/repository/postgres"
	"meetgrid/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	eventRepo := postgres.NewEventRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)

	tokens := auth.NewEditTokens(cfg.EditTokenSecret, 0)

	eventService := services.NewEventService(eventRepo, responseRepo, availabilityRepo, cfg.Retention(), cfg.ContextTimeout)
	responseService := services.NewResponseService(eventRepo, responseRepo, availabilityRepo, tokens, cfg.ContextTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewResponseController(logger, responseService),
		controllers.NewHealthController(logger, db),
		middleware.RequireEditToken(tokens, logger, cfg.RequireEditToken),
	)

	counter, closeCounter, err := newCounter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCounter()

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RateLimit(counter, cfg.RateLimitPerMinute, time.Minute, cfg.TrustProxy, logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	cleanup, err := jobs.NewCleanup(logger, eventService, cfg.CleanupCron)
	if err != nil {
		return err
	}
	cleanup.Start()
	logger.Info("cleanup scheduled", "cron", cfg.CleanupCron, "next", cleanup.Next(), "retention", cfg.Retention())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	cleanup.Stop(shutdownCtx)
	logger.Info("http server stopped")
	return nil
}

// newCounter picks the shared Redis counter when REDIS_URL is set and the
// in-process counter otherwise.
func newCounter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (middleware.WindowCounter, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("rate limiter using in-memory counter")
		return middleware.NewMemoryCounter(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiter fails open until it recovers", "err", err)
	}
	return middleware.NewRedisCounter(rdb, "meetgrid:ratelimit"), func() { _ = rdb.Close() }, nil
}
