// Package factory constructs the service's swappable dependencies from
// configuration: the store adapter and the authorizer.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oliveapp/olive-server/internal/auth"
	"github.com/oliveapp/olive-server/internal/config"
	"github.com/oliveapp/olive-server/internal/store"
	"github.com/oliveapp/olive-server/internal/store/postgres"
	"github.com/oliveapp/olive-server/internal/store/sqlite"
)

// NewStore builds the store adapter selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		st, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("SQLite store ready")
		return st, nil
	case "postgres":
		bootCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
		defer cancel()
		if err := postgres.Bootstrap(bootCtx, cfg.PostgresDSN); err != nil {
			return nil, fmt.Errorf("postgres bootstrap: %w", err)
		}
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		log.Info().Msg("Postgres store ready")
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", cfg.DBDriver)
	}
}

// NewAuthorizer builds the API key authorizer. With no configured
// tokens the local development authorizer is used; never run that in
// production.
func NewAuthorizer(cfg *config.Config, log zerolog.Logger) (auth.Authorizer, error) {
	if cfg.APITokens == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("OLIVE_API_TOKENS must be set in production")
		}
		log.Warn().Msg("no API tokens configured; using local development authorizer")
		return auth.NewMockAuthorizer(), nil
	}
	actors, err := auth.ParseStaticTokens(cfg.APITokens)
	if err != nil {
		return nil, err
	}
	log.Info().Int("keys", len(actors)).Msg("static authorizer configured")
	return auth.NewStaticAuthorizer(actors), nil
}
