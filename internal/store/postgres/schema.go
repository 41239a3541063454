package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS plays (
			id             BIGSERIAL PRIMARY KEY,
			play_id        TEXT NOT NULL UNIQUE,
			game_id        TEXT NOT NULL,
			yards          INTEGER NOT NULL,
			terminal_event TEXT NOT NULL,
			score_event    TEXT DEFAULT '',
			turnover       BOOLEAN DEFAULT FALSE,
			conditioned    BOOLEAN DEFAULT FALSE,
			resolution     JSONB NOT NULL,
			saved_at       TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id          BIGSERIAL PRIMARY KEY,
			artifact_id TEXT NOT NULL UNIQUE,
			scope       TEXT NOT NULL,
			error_code  TEXT NOT NULL,
			play_id     TEXT DEFAULT '',
			payload     JSONB NOT NULL,
			saved_at    TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS trait_vectors (
			id        BIGSERIAL PRIMARY KEY,
			player_id TEXT NOT NULL UNIQUE,
			vector    JSONB NOT NULL,
			saved_at  TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_game ON plays (game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_scope ON artifacts (scope)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_code ON artifacts (error_code)`,
	}

	for _, stmt := range ddl {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}
	return nil
}
