package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

func (c *Client) SaveTraitVector(ctx context.Context, playerID string, vector map[string]float64) error {
	payload, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encoding trait vector: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO trait_vectors (player_id, vector)
		VALUES (?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			vector = excluded.vector,
			saved_at = datetime('now')`,
		playerID, string(payload))
	if err != nil {
		return fmt.Errorf("saving trait vector for %s: %w", playerID, err)
	}
	return nil
}

func (c *Client) GetTraitVector(ctx context.Context, playerID string) (map[string]float64, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT vector FROM trait_vectors WHERE player_id = ?`, playerID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trait vector for %s not found", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading trait vector for %s: %w", playerID, err)
	}

	var vector map[string]float64
	if err := json.Unmarshal([]byte(payload), &vector); err != nil {
		return nil, fmt.Errorf("decoding trait vector for %s: %w", playerID, err)
	}
	return vector, nil
}
