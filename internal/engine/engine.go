// Package engine resolves snaps: it validates the snap context, compiles
// matchups, scores contests, draws the outcome from the play's physics
// substream, and packages the full forensic record of the resolution.
package engine

import (
	"fmt"

	"gridiron/internal/catalog"
	"gridiron/internal/events"
	"gridiron/internal/forensic"
	"gridiron/internal/injury"
	"gridiron/internal/snap"
	"gridiron/internal/validate"
)

// Integrity codes for conditioned resolution.
const (
	ErrDevModeRequired = "DEV_MODE_REQUIRED"
	ErrForceOutcome    = "FORCE_OUTCOME_FAIL"
)

// DefaultForceAttempts is the conditioned re-roll ceiling used when the
// caller passes a non-positive one.
const DefaultForceAttempts = 1000

// Engine is the snap resolver. It holds no per-snap state: every call
// to RunSnap constructs its resolution fresh from the context and the
// engine seed, so identical inputs replay identically.
type Engine struct {
	catalog   *catalog.Catalog
	validator *validate.Validator
	params    Params
	injuries  injury.Evaluator
	seed      int64
	devMode   bool
	sink      events.Sink
	roster    validate.Roster
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithParams overrides the default resolution tuning.
func WithParams(params Params) Option {
	return func(e *Engine) { e.params = params }
}

// WithInjuryParams overrides the default injury tuning.
func WithInjuryParams(params injury.Params) Option {
	return func(e *Engine) { e.injuries = injury.Evaluator{Params: params} }
}

// WithSink routes narrative events to the given sink.
func WithSink(sink events.Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithRoster enables roster-backed identity checks during pre-sim
// validation.
func WithRoster(roster validate.Roster) Option {
	return func(e *Engine) { e.roster = roster }
}

// WithDevMode unlocks conditioned resolution.
func WithDevMode(enabled bool) Option {
	return func(e *Engine) { e.devMode = enabled }
}

// New builds an engine over a loaded resource catalog.
func New(cat *catalog.Catalog, seed int64, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	validator, err := validate.New(cat)
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}
	e := &Engine{
		catalog:   cat,
		validator: validator,
		params:    DefaultParams(),
		injuries:  injury.Evaluator{Params: injury.DefaultParams()},
		seed:      seed,
		sink:      events.Discard{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Seed returns the engine's root seed.
func (e *Engine) Seed() int64 { return e.seed }

// Catalog returns the loaded resource catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Validator returns the engine's pre-sim validator.
func (e *Engine) Validator() *validate.Validator { return e.validator }

// RunSnap resolves one snap from its context.
func (e *Engine) RunSnap(ctx snap.Context) (*snap.Resolution, error) {
	return e.resolve(ctx, false, 1)
}

// RunModeInvariant resolves the context under the given mode. The
// physics draws ignore the mode entirely, so the result matches RunSnap
// on the original context field for field, aside from the mode itself.
func (e *Engine) RunModeInvariant(ctx snap.Context, mode snap.Mode) (*snap.Resolution, error) {
	return e.resolve(ctx.WithMode(mode), false, 1)
}

// RunForced re-resolves the snap under derived play ids until the
// terminal event matches the target, up to the caller's maxAttempts
// ceiling (DefaultForceAttempts when non-positive). It is a development
// facility and refuses to run outside dev mode. Every attempt,
// including the first, runs conditioned under a suffixed play id so a
// forced resolution is never mistakable for an organic one.
func (e *Engine) RunForced(ctx snap.Context, target string, maxAttempts int) (*snap.Resolution, error) {
	if !e.devMode {
		return nil, forensic.NewError(resolverScope, ErrDevModeRequired,
			fmt.Sprintf("conditioned resolution of %q requires dev mode", target),
			map[string]any{"target": target},
			map[string]any{"game_id": ctx.GameID},
			map[string]string{"play_id": ctx.PlayID},
			[]string{"conditioned_resolution"})
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultForceAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		tryCtx := ctx.WithPlayID(fmt.Sprintf("%s_TRY%04d", ctx.PlayID, attempt))
		resolution, err := e.resolve(tryCtx, true, attempt)
		if err != nil {
			return nil, err
		}
		if terminalEvent(resolution.PlayResult, ctx.Situation) == target {
			return resolution, nil
		}
	}
	return nil, forensic.NewError(resolverScope, ErrForceOutcome,
		fmt.Sprintf("target outcome %q not reached within %d attempts", target, maxAttempts),
		map[string]any{"target": target, "attempt_budget": maxAttempts},
		map[string]any{"game_id": ctx.GameID, "seed": e.seed},
		map[string]string{"play_id": ctx.PlayID},
		[]string{"conditioned_resolution"})
}
