// Package injury derives injury candidates from the collision record of
// a resolved snap. Occurrence and severity draw from independent
// deterministic substreams so injuries replay exactly.
package injury

import (
	"fmt"
	"sort"

	"gridiron/internal/forensic"
	"gridiron/internal/rng"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

const scope = "injury_evaluator"

// ErrMissingAvailabilityTrait is the integrity code raised when a
// candidate lacks one of the three availability traits.
const ErrMissingAvailabilityTrait = "MISSING_AVAILABILITY_TRAIT"

// requiredTraits are checked per candidate; a missing one fails the
// whole evaluation, never skips the player.
var requiredTraits = []string{"contact_injury_risk", "soft_tissue_risk", "durability"}

// Params are the tuned injury constants, named and overridable.
type Params struct {
	MultiRepIntensity    float64
	BaseIntensity        float64
	IntensitySpread      float64
	IntensityScale       float64
	ContactWeight        float64
	SoftTissueWeight     float64
	DurabilityWeight     float64
	SeverityOutThreshold float64
}

func DefaultParams() Params {
	return Params{
		MultiRepIntensity:    0.55,
		BaseIntensity:        0.1,
		IntensitySpread:      0.9,
		IntensityScale:       0.5,
		ContactWeight:        0.018,
		SoftTissueWeight:     0.012,
		DurabilityWeight:     0.015,
		SeverityOutThreshold: 0.25,
	}
}

// Evaluator derives injuries from rep and contest intensity.
type Evaluator struct {
	Params Params
}

// Evaluate returns actor id to severity ("out" or "limited") for every
// injury that occurred on the play. The root source spawns one
// occurrence and one severity substream per candidate, keyed on play
// and actor, so batch order never shifts the draws.
func (e Evaluator) Evaluate(playID string, reps []snap.RepLedgerEntry, contests []snap.ContestResolution, vectors map[string]map[string]float64, root rng.Source) (map[string]string, error) {
	intensity := e.collisionIntensity(reps, contests)

	candidates := make([]string, 0, len(intensity))
	for actorID := range intensity {
		candidates = append(candidates, actorID)
	}
	sort.Strings(candidates)

	injuries := make(map[string]string)
	for _, actorID := range candidates {
		vector, ok := vectors[actorID]
		if !ok {
			return nil, missingTrait(playID, actorID, "trait vector")
		}
		for _, code := range requiredTraits {
			if _, ok := vector[code]; !ok {
				return nil, missingTrait(playID, actorID, code)
			}
		}

		// Risk traits are stored inverted: a high value means resilient.
		contactRisk := 1.0 - normalize(vector["contact_injury_risk"])
		softRisk := 1.0 - normalize(vector["soft_tissue_risk"])
		fragility := 1.0 - normalize(vector["durability"])
		prob := intensity[actorID] * e.Params.IntensityScale *
			(contactRisk*e.Params.ContactWeight + softRisk*e.Params.SoftTissueWeight + fragility*e.Params.DurabilityWeight)

		occurrence := root.Spawn(fmt.Sprintf("injury:%s:%s", playID, actorID))
		if occurrence.Float64() >= prob {
			continue
		}
		severity := root.Spawn(fmt.Sprintf("injury:sev:%s:%s", playID, actorID))
		if severity.Float64() < e.Params.SeverityOutThreshold {
			injuries[actorID] = "out"
		} else {
			injuries[actorID] = "limited"
		}
	}
	return injuries, nil
}

// collisionIntensity estimates per-actor collision exposure: proximity
// of the actor's contest scores to an even struggle, except actors in
// the multi-actor rep, who carry its fixed intensity.
func (e Evaluator) collisionIntensity(reps []snap.RepLedgerEntry, contests []snap.ContestResolution) map[string]float64 {
	intensity := make(map[string]float64)
	for _, contest := range contests {
		closeness := 1.0 - abs(contest.Score-0.5)*2
		value := e.Params.BaseIntensity + e.Params.IntensitySpread*closeness
		for actorID := range contest.ActorContributions {
			if value > intensity[actorID] {
				intensity[actorID] = value
			}
		}
	}
	for _, rep := range reps {
		if rep.RepType != snap.RepMultiActor {
			continue
		}
		for _, actor := range rep.Actors {
			intensity[actor.ActorID] = e.Params.MultiRepIntensity
		}
	}
	return intensity
}

func missingTrait(playID, actorID, what string) error {
	return forensic.NewError(scope, ErrMissingAvailabilityTrait,
		fmt.Sprintf("actor %q is missing required %s for injury evaluation", actorID, what),
		map[string]any{"required_traits": requiredTraits},
		map[string]any{"play_id": playID},
		map[string]string{"actor_id": actorID, "play_id": playID},
		[]string{"injury_evaluation"})
}

func normalize(value float64) float64 {
	return (value - traits.MinValue) / (traits.MaxValue - traits.MinValue)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
