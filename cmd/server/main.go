package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeyev/authgate/internal/config"
	"github.com/avdeyev/authgate/internal/server/handlers"
	"github.com/avdeyev/authgate/internal/server/middleware"
	"github.com/avdeyev/authgate/internal/server/session"
	"github.com/avdeyev/authgate/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// shutdownTimeout время на graceful shutdown HTTP сервера
const shutdownTimeout = 10 * time.Second

func main() {
	args := os.Args[1:]
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			printVersion()
			os.Exit(0)
		}
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := slog.LevelDebug
	if cfg.Production() {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем хранилище, миграции применяются при старте
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	sessions := session.NewService(session.Config{
		Secret:    []byte(cfg.JWTSecret),
		TokenTTL:  cfg.JWTExpire,
		CookieTTL: cfg.CookieExpire,
		Secure:    cfg.Production(),
	})

	authHandler := handlers.NewAuthHandler(logger, store, sessions, cfg)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authGuard := middleware.AuthMiddleware(logger, sessions, store)

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/auth/user/{id}", authHandler.GetUser)
	mux.HandleFunc("GET /api/v1/auth/user", authHandler.GetUsers)
	mux.HandleFunc("POST /api/v1/auth/password", authHandler.ForgotPassword)
	mux.HandleFunc("PUT /api/v1/auth/password/{token}", authHandler.ResetPassword)
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	// Маршруты за Access Guard
	mux.Handle("GET /api/v1/auth/logout", authGuard(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/v1/auth/me", authGuard(http.HandlerFunc(authHandler.GetMe)))
	mux.Handle("PUT /api/v1/auth/profile", authGuard(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("PUT /api/v1/auth/password", authGuard(http.HandlerFunc(authHandler.UpdatePassword)))

	// Цепочка middleware: logging -> recovery -> mux
	handler := middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(
		middleware.RecoveryMiddleware(logger)(mux),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("address", cfg.Address),
			slog.String("environment", cfg.Environment),
			slog.String("version", Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped")
	}

	return nil
}

func printVersion() {
	fmt.Printf("Authgate Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
