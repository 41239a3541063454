// Package store persists resolved snaps, forensic artifacts, and
// generated trait vectors behind a backend-neutral interface.
package store

import (
	"context"

	"gridiron/internal/forensic"
	"gridiron/internal/snap"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveResolution(ctx context.Context, gameID string, res *snap.Resolution) error
	GetResolution(ctx context.Context, playID string) (*snap.Resolution, error)
	ListPlays(ctx context.Context, gameID string) ([]PlaySummary, error)

	SaveArtifact(ctx context.Context, artifact forensic.Artifact) error
	ListArtifacts(ctx context.Context, scope string) ([]ArtifactSummary, error)

	SaveTraitVector(ctx context.Context, playerID string, vector map[string]float64) error
	GetTraitVector(ctx context.Context, playerID string) (map[string]float64, error)
}
