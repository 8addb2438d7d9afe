package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/sprachtrainer/internal/config"
	"github.com/heartmarshall/sprachtrainer/internal/transport/middleware"
	"github.com/heartmarshall/sprachtrainer/internal/transport/rest"
)

// Run starts the trainer server and blocks until ctx is cancelled or the
// server fails. Review tasks in flight are drained before it returns.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("environment", cfg.Environment),
		slog.String("log_level", cfg.Log.Level),
	)

	store, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()
	logger.InfoContext(ctx, "storage ready", slog.String("backend", store.Backend))

	svcs := NewServices(cfg, logger, store)
	svcs.Trainer.Start(ctx)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newHandler(cfg, logger, store, svcs, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		httpErr := srv.Shutdown(shutdownCtx)
		if err := svcs.Worker.Close(shutdownCtx); err != nil {
			logger.Warn("review worker not drained", slog.String("error", err.Error()))
		}
		return httpErr
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func newHandler(cfg *config.Config, logger *slog.Logger, store *Storage, svcs *Services, limiter *middleware.RateLimiter) http.Handler {
	routes := rest.Routes{
		Health:         rest.NewHealthHandler(store, store.Backend, svcs.Trainer, BuildVersion()),
		Auth:           rest.NewAuthHandler(svcs.Auth, cfg.Auth, logger),
		Chat:           rest.NewChatHandler(svcs.Trainer, logger),
		RequireSession: middleware.RequireSession(svcs.Auth, cfg.Auth.CookieName),
		LoginLimit:     limiter.Limit(cfg.Auth.LoginPerMinute),
	}
	if cfg.Bot.Enabled {
		routes.Bot = rest.NewBotHandler(svcs.Bot, cfg.Bot.WebhookSecret, logger)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger, "/live", "/ready"),
		middleware.CORS(cfg.CORS),
	)(rest.NewRouter(routes))
}
