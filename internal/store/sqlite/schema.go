package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS plays (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		play_id        TEXT NOT NULL UNIQUE,
		game_id        TEXT NOT NULL,
		yards          INTEGER NOT NULL,
		terminal_event TEXT NOT NULL,
		score_event    TEXT DEFAULT '',
		turnover       INTEGER DEFAULT 0,
		conditioned    INTEGER DEFAULT 0,
		resolution     TEXT NOT NULL,
		saved_at       TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		artifact_id TEXT NOT NULL UNIQUE,
		scope       TEXT NOT NULL,
		error_code  TEXT NOT NULL,
		play_id     TEXT DEFAULT '',
		payload     TEXT NOT NULL,
		saved_at    TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS trait_vectors (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id TEXT NOT NULL UNIQUE,
		vector    TEXT NOT NULL,
		saved_at  TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_plays_game ON plays (game_id);
	CREATE INDEX IF NOT EXISTS idx_artifacts_scope ON artifacts (scope);
	CREATE INDEX IF NOT EXISTS idx_artifacts_code ON artifacts (error_code);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
