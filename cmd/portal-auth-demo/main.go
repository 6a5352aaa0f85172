// Command portal-auth-demo exercises a running portal-auth server through
// the client SDK: register or login, confirm the session, refresh, logout.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/khaledsAlshibani/portal-auth/pkg/client"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "portal-auth server URL")
		username  = flag.String("username", "demo", "account username")
		password  = flag.String("password", "demo-password-123", "account password")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	c, err := client.New(*serverURL, client.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ident, err := c.Login(ctx, *username, *password)
	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.Code != "INVALID_CREDENTIALS" {
			log.Fatal().Err(err).Msg("login failed")
		}
		log.Info().Str("username", *username).Msg("account missing, registering")
		if ident, err = c.Register(ctx, *username, *password); err != nil {
			log.Fatal().Err(err).Msg("registration failed")
		}
	}
	log.Info().Str("id", ident.ID).Str("role", string(ident.Role)).Msg("authenticated")

	if ident, err = c.Session(ctx); err != nil {
		log.Fatal().Err(err).Msg("session check failed")
	}
	log.Info().Str("username", ident.Username).Msg("session confirmed")

	if ident, err = c.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("refresh failed")
	}
	log.Info().Str("username", ident.Username).Msg("access token refreshed")

	if err = c.Logout(ctx); err != nil {
		log.Fatal().Err(err).Msg("logout failed")
	}
	log.Info().Msg("logged out")
}
