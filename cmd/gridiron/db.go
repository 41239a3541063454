package main

import (
	"context"
	"fmt"

	"gridiron/internal/config"
	"gridiron/internal/store"
	"gridiron/internal/store/postgres"
	"gridiron/internal/store/sqlite"
)

// openStore returns nil without error when persistence is disabled.
func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.Store.DSN)
	case "postgres":
		return postgres.New(ctx, cfg.Store.DSN)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
