package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eventpill-api/internal/application/errorlog"
	"github.com/eventpill-api/internal/config"
	"github.com/eventpill-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/eventpill-api/internal/infrastructure/jwt"
	mongoinfra "github.com/eventpill-api/internal/infrastructure/mongo"
	"github.com/eventpill-api/internal/infrastructure/postgres"
	"github.com/eventpill-api/internal/infrastructure/smtp"
	transporthttp "github.com/eventpill-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	setupLogger(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Account store, schema applied before serving.
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("connect postgres", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fatal("apply migrations", err)
	}

	sink, err := newErrorSink(ctx, cfg)
	if err != nil {
		fatal("error sink", err)
	}
	errLog := errorlog.New(sink, errorlog.Options{
		Timeout:   cfg.ErrorSinkTimeout,
		Retention: cfg.ErrorLogRetention(),
	})

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret)
	if err != nil {
		fatal("jwt provider", err)
	}

	deps := &transporthttp.Deps{
		Accounts: postgres.NewAccountStore(pool, cfg.StoreTimeout),
		Mailer:   smtp.NewMailer(cfg),
		ErrorLog: errLog,
		Tokens:   jwtProvider,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "error_sink", cfg.ErrorSinkBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		slog.Error("server error", "err", err)
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
	}
	slog.Info("server stopped")
}

func newErrorSink(ctx context.Context, cfg *config.Config) (errorlog.Writer, error) {
	switch cfg.ErrorSinkBackend {
	case config.ErrorSinkMongo:
		return mongoinfra.NewErrorLogWriter(cfg), nil
	default:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewErrorLogRepo(client, cfg.DynamoTables.ErrorLogs), nil
	}
}

func setupLogger(env string) {
	var h slog.Handler
	if env == "production" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
