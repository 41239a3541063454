package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (c *Client) SaveTraitVector(ctx context.Context, playerID string, vector map[string]float64) error {
	payload, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encoding trait vector: %w", err)
	}

	_, err = c.pool.Exec(ctx, `
		INSERT INTO trait_vectors (player_id, vector)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE SET
			vector = EXCLUDED.vector,
			saved_at = now()`,
		playerID, payload)
	if err != nil {
		return fmt.Errorf("saving trait vector for %s: %w", playerID, err)
	}
	return nil
}

func (c *Client) GetTraitVector(ctx context.Context, playerID string) (map[string]float64, error) {
	var payload []byte
	err := c.pool.QueryRow(ctx,
		`SELECT vector FROM trait_vectors WHERE player_id = $1`, playerID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("trait vector for %s not found", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading trait vector for %s: %w", playerID, err)
	}

	var vector map[string]float64
	if err := json.Unmarshal(payload, &vector); err != nil {
		return nil, fmt.Errorf("decoding trait vector for %s: %w", playerID, err)
	}
	return vector, nil
}
