package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	adapthttp "weightmelters/internal/adapter/http"
	"weightmelters/internal/adapter/postgres"
	"weightmelters/internal/app"
	"weightmelters/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	limits := app.DefaultLimits()
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			slog.Error("invalid TIMEZONE", "error", err)
			os.Exit(1)
		}
		limits.Location = loc
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		slog.Error("db open", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	entrySvc := app.NewEntryService(db)
	validator := app.NewEntryValidator(limits)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	oidcCfg, err := adapthttp.NewOIDCConfig(context.Background(),
		os.Getenv("OIDC_ISSUER"),
		os.Getenv("OIDC_CLIENT_ID"),
		os.Getenv("OIDC_CLIENT_SECRET"),
		os.Getenv("OIDC_REDIRECT_URL"),
	)
	if err != nil {
		slog.Error("oidc setup", "error", err)
		os.Exit(1)
	}

	h := adapthttp.New(entrySvc, validator, authSvc, oidcCfg, webDir).Handler()
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
