package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gridiron/internal/snap"
	"gridiron/internal/store"
)

func (c *Client) SaveResolution(ctx context.Context, gameID string, res *snap.Resolution) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding resolution: %w", err)
	}

	_, err = c.pool.Exec(ctx, `
		INSERT INTO plays (play_id, game_id, yards, terminal_event, score_event, turnover, conditioned, resolution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (play_id) DO UPDATE SET
			game_id = EXCLUDED.game_id,
			yards = EXCLUDED.yards,
			terminal_event = EXCLUDED.terminal_event,
			score_event = EXCLUDED.score_event,
			turnover = EXCLUDED.turnover,
			conditioned = EXCLUDED.conditioned,
			resolution = EXCLUDED.resolution,
			saved_at = now()`,
		res.PlayResult.PlayID, gameID, res.PlayResult.Yards, res.Causality.TerminalEvent,
		res.PlayResult.ScoreEvent, res.PlayResult.Turnover, res.Conditioned, payload)
	if err != nil {
		return fmt.Errorf("saving resolution %s: %w", res.PlayResult.PlayID, err)
	}
	return nil
}

func (c *Client) GetResolution(ctx context.Context, playID string) (*snap.Resolution, error) {
	var payload []byte
	err := c.pool.QueryRow(ctx,
		`SELECT resolution FROM plays WHERE play_id = $1`, playID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("play %s not found", playID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading resolution %s: %w", playID, err)
	}

	var res snap.Resolution
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("decoding resolution %s: %w", playID, err)
	}
	return &res, nil
}

func (c *Client) ListPlays(ctx context.Context, gameID string) ([]store.PlaySummary, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT play_id, game_id, yards, terminal_event, score_event, turnover, conditioned, saved_at::text
		FROM plays WHERE game_id = $1 ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("listing plays for %s: %w", gameID, err)
	}
	defer rows.Close()

	var summaries []store.PlaySummary
	for rows.Next() {
		var s store.PlaySummary
		if err := rows.Scan(&s.PlayID, &s.GameID, &s.Yards, &s.TerminalEvent, &s.ScoreEvent, &s.Turnover, &s.Conditioned, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning play row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
