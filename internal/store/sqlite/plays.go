package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gridiron/internal/snap"
	"gridiron/internal/store"
)

func (c *Client) SaveResolution(ctx context.Context, gameID string, res *snap.Resolution) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding resolution: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO plays (play_id, game_id, yards, terminal_event, score_event, turnover, conditioned, resolution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (play_id) DO UPDATE SET
			game_id = excluded.game_id,
			yards = excluded.yards,
			terminal_event = excluded.terminal_event,
			score_event = excluded.score_event,
			turnover = excluded.turnover,
			conditioned = excluded.conditioned,
			resolution = excluded.resolution,
			saved_at = datetime('now')`,
		res.PlayResult.PlayID, gameID, res.PlayResult.Yards, res.Causality.TerminalEvent,
		res.PlayResult.ScoreEvent, boolInt(res.PlayResult.Turnover), boolInt(res.Conditioned), string(payload))
	if err != nil {
		return fmt.Errorf("saving resolution %s: %w", res.PlayResult.PlayID, err)
	}
	return nil
}

func (c *Client) GetResolution(ctx context.Context, playID string) (*snap.Resolution, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT resolution FROM plays WHERE play_id = ?`, playID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("play %s not found", playID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading resolution %s: %w", playID, err)
	}

	var res snap.Resolution
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("decoding resolution %s: %w", playID, err)
	}
	return &res, nil
}

func (c *Client) ListPlays(ctx context.Context, gameID string) ([]store.PlaySummary, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT play_id, game_id, yards, terminal_event, score_event, turnover, conditioned, saved_at
		FROM plays WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("listing plays for %s: %w", gameID, err)
	}
	defer rows.Close()

	var summaries []store.PlaySummary
	for rows.Next() {
		var s store.PlaySummary
		var turnover, conditioned int
		if err := rows.Scan(&s.PlayID, &s.GameID, &s.Yards, &s.TerminalEvent, &s.ScoreEvent, &turnover, &conditioned, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning play row: %w", err)
		}
		s.Turnover = turnover != 0
		s.Conditioned = conditioned != 0
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
