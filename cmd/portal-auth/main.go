package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/khaledsAlshibani/portal-auth/internal/api"
	"github.com/khaledsAlshibani/portal-auth/internal/config"
	"github.com/khaledsAlshibani/portal-auth/internal/database"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// best-effort: a .env file is a local development convenience
	_ = godotenv.Load()

	cfg := config.MustLoad(*configPath)
	log := newLogger(cfg)

	store, err := database.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open database")
	}
	defer store.Close()

	codec := token.NewCodec([]byte(cfg.Auth.JWTSecret))
	issuer := token.NewIssuer(codec, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	verifier := token.NewVerifier(codec)

	svc := service.New(store.AccountStore(), issuer, verifier, service.PasswordModeProduction)
	transport := api.NewCookieTransport(cfg.LocalDev())
	a := api.New(svc, transport, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      a.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Str("env", cfg.Env).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.LocalDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
