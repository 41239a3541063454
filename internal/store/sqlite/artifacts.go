package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"gridiron/internal/forensic"
	"gridiron/internal/store"
)

func (c *Client) SaveArtifact(ctx context.Context, artifact forensic.Artifact) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO artifacts (artifact_id, scope, error_code, play_id, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (artifact_id) DO NOTHING`,
		artifact.ArtifactID, artifact.EngineScope, artifact.ErrorCode,
		artifact.Identifiers["play_id"], string(payload))
	if err != nil {
		return fmt.Errorf("saving artifact %s: %w", artifact.ArtifactID, err)
	}
	return nil
}

func (c *Client) ListArtifacts(ctx context.Context, scope string) ([]store.ArtifactSummary, error) {
	query := `SELECT artifact_id, scope, error_code, play_id, saved_at FROM artifacts`
	args := []any{}
	if scope != "" {
		query += ` WHERE scope = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY id`

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var summaries []store.ArtifactSummary
	for rows.Next() {
		var s store.ArtifactSummary
		if err := rows.Scan(&s.ArtifactID, &s.Scope, &s.ErrorCode, &s.PlayID, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning artifact row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
