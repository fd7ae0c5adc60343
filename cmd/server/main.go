package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/community-engine/internal/handlers"
	"github.com/anonto42/community-engine/internal/middleware"
	"github.com/anonto42/community-engine/internal/router"
	"github.com/anonto42/community-engine/pkg/config"
	"github.com/anonto42/community-engine/pkg/firebase"
	"github.com/anonto42/community-engine/pkg/logger"
	"github.com/anonto42/community-engine/pkg/metrics"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Environment: cfg.Env,
		LogLevel:    cfg.LogLevel,
		ServiceName: "community-engine",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			log.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	ctx := context.Background()
	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize authentication", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler(log)

	config.SetupMiddleware(e, cfg, log)

	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, authenticator, cfg, log); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	metricsServer := metrics.Serve(":"+cfg.MetricsPort, log)

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics server shutdown failed", zap.Error(err))
	}
}

func newAuthenticator(ctx context.Context, cfg *config.Config) (middleware.Authenticator, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return middleware.NewFirebaseAuthenticator(app.AuthClient), nil
	case config.AuthProviderJWT:
		if cfg.JWTSecret == "" {
			return nil, errors.New("JWT_SECRET must be set when AUTH_PROVIDER=jwt")
		}
		return middleware.NewJWTAuthenticator(cfg.JWTSecret), nil
	}
	return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
}
