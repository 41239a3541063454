package contest

import (
	"fmt"
	"math"
	"sort"

	"gridiron/internal/catalog"
	"gridiron/internal/snap"
)

// sigmoidSlope compresses the offense-minus-defense margin into (0, 1).
const sigmoidSlope = 3.0

// Input names one contest between an offense actor subset and a defense
// actor subset within a snap phase.
type Input struct {
	ContestID       string
	PlayID          string
	PlayType        snap.PlayType
	Phase           string
	Family          string
	OffenseActorIDs []string
	DefenseActorIDs []string
	Profile         catalog.FamilyProfile
	Situation       snap.Situation
	States          map[string]snap.ActorState
	Traits          map[string]map[string]float64
}

// Evaluator scores trait-weighted contests. It is stateless; every
// evaluation is a pure function of its input.
type Evaluator struct{}

// Evaluate scores the contest and emits full attribution. Empty actor
// groups, empty or non-positive trait weights, missing trait vectors,
// and unknown context modifier keys are hard errors, never skipped.
func (Evaluator) Evaluate(in Input) (snap.ContestResolution, error) {
	offense, err := groupBreakdown(in, in.OffenseActorIDs, in.Profile.OffenseWeights, "offense")
	if err != nil {
		return snap.ContestResolution{}, err
	}
	defense, err := groupBreakdown(in, in.DefenseActorIDs, in.Profile.DefenseWeights, "defense")
	if err != nil {
		return snap.ContestResolution{}, err
	}

	contextAdj, err := contextAdjustment(in.Profile.ContextModifiers, in.Situation)
	if err != nil {
		return snap.ContestResolution{}, fmt.Errorf("contest %s family %s: %w", in.ContestID, in.Family, err)
	}

	raw := (offense.score - defense.score) + contextAdj
	score := 1.0 / (1.0 + math.Exp(-raw*sigmoidSlope))

	actorContrib := make(map[string]float64, len(offense.actors)+len(defense.actors))
	for id, v := range offense.actors {
		actorContrib[id] = round6(v)
	}
	for id, v := range defense.actors {
		actorContrib[id] = round6(v)
	}
	traitContrib := make(map[string]float64)
	for code, v := range offense.traits {
		traitContrib[code] = round6(traitContrib[code] + v)
	}
	for code, v := range defense.traits {
		traitContrib[code] = round6(traitContrib[code] + v)
	}

	variance, err := varianceHint(in)
	if err != nil {
		return snap.ContestResolution{}, err
	}

	return snap.ContestResolution{
		ContestID:          in.ContestID,
		PlayID:             in.PlayID,
		Phase:              in.Phase,
		Family:             in.Family,
		Score:              round6(score),
		OffenseScore:       round6(offense.score),
		DefenseScore:       round6(defense.score),
		ActorContributions: actorContrib,
		TraitContributions: traitContrib,
		VarianceHint:       round6(variance),
		Handles: []string{
			"contest:" + in.ContestID,
			"family:" + in.Family,
			"play_type:" + string(in.PlayType),
		},
	}, nil
}

type breakdown struct {
	score  float64
	actors map[string]float64
	traits map[string]float64
}

func groupBreakdown(in Input, actorIDs []string, weights map[string]float64, side string) (breakdown, error) {
	if len(actorIDs) == 0 {
		return breakdown{}, fmt.Errorf("contest %s family %s: %s actor group is empty", in.ContestID, in.Family, side)
	}
	if len(weights) == 0 {
		return breakdown{}, fmt.Errorf("contest %s family %s: %s trait weights are empty", in.ContestID, in.Family, side)
	}
	// Iterate weights in sorted key order so float accumulation order
	// is fixed and evaluation stays deterministic across runs.
	codes := make([]string, 0, len(weights))
	for code := range weights {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	totalWeight := 0.0
	for _, code := range codes {
		totalWeight += weights[code]
	}
	if totalWeight <= 0 {
		return breakdown{}, fmt.Errorf("contest %s family %s: %s trait weights must sum to a positive value", in.ContestID, in.Family, side)
	}

	actorContrib := make(map[string]float64, len(actorIDs))
	traitContrib := make(map[string]float64, len(weights))
	groupSum := 0.0
	for _, actorID := range actorIDs {
		vector, ok := in.Traits[actorID]
		if !ok {
			return breakdown{}, fmt.Errorf("contest %s: missing trait vector for actor %q", in.ContestID, actorID)
		}
		weighted := 0.0
		for _, code := range codes {
			weight := weights[code]
			value, ok := vector[code]
			if !ok {
				return breakdown{}, fmt.Errorf("contest %s: actor %q missing required trait %q", in.ContestID, actorID, code)
			}
			norm := normalizeTrait(value)
			weighted += norm * weight
			traitContrib[code] += norm * weight
		}
		actorScore := weighted / totalWeight
		groupSum += actorScore
		if side == "offense" {
			actorContrib[actorID] = actorScore
		} else {
			actorContrib[actorID] = -actorScore
		}
	}
	groupScore := groupSum / float64(len(actorIDs))

	fatigueSum, wearSum := 0.0, 0.0
	for _, actorID := range actorIDs {
		state, ok := in.States[actorID]
		if !ok {
			return breakdown{}, fmt.Errorf("contest %s: missing transient state for actor %q", in.ContestID, actorID)
		}
		fatigueSum += state.Fatigue
		wearSum += state.AcuteWear
	}
	count := float64(len(actorIDs))
	modifier := 1.0 - (fatigueSum/count)*in.Profile.FatigueSensitivity - (wearSum/count)*in.Profile.WearSensitivity

	// Signed directional influence per trait for explainability.
	for code := range traitContrib {
		traitContrib[code] = (traitContrib[code] / count) / totalWeight
		if side == "defense" {
			traitContrib[code] = -traitContrib[code]
		}
	}

	return breakdown{score: groupScore * modifier, actors: actorContrib, traits: traitContrib}, nil
}

func contextAdjustment(modifiers map[string]float64, situation snap.Situation) (float64, error) {
	keys := make([]string, 0, len(modifiers))
	for key := range modifiers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	adjustment := 0.0
	for _, key := range keys {
		value := modifiers[key]
		switch key {
		case "short_yardage_bonus":
			if situation.Distance <= 2 {
				adjustment += value
			}
		case "long_yardage_bonus":
			if situation.Distance >= 8 {
				adjustment += value
			}
		case "redzone_bonus":
			if situation.YardLine >= 80 {
				adjustment += value
			}
		case "goal_line_bonus":
			if situation.YardLine >= 95 {
				adjustment += value
			}
		case "trailing_bonus":
			if situation.ScoreDiff < 0 {
				adjustment += value
			}
		case "leading_bonus":
			if situation.ScoreDiff > 0 {
				adjustment += value
			}
		default:
			return 0, fmt.Errorf("unknown context modifier %q", key)
		}
	}
	return adjustment, nil
}

func varianceHint(in Input) (float64, error) {
	total := 0.0
	count := 0
	for _, actorID := range append(append([]string{}, in.OffenseActorIDs...), in.DefenseActorIDs...) {
		vector, ok := in.Traits[actorID]
		if !ok {
			return 0, fmt.Errorf("contest %s: missing trait vector for actor %q", in.ContestID, actorID)
		}
		value, ok := vector["volatility_profile"]
		if !ok {
			return 0, fmt.Errorf("contest %s: actor %q missing required trait \"volatility_profile\"", in.ContestID, actorID)
		}
		// volatility_profile is stored inverted: high values mean stable.
		total += 1.0 - normalizeTrait(value)
		count++
	}
	return total / float64(count), nil
}

func normalizeTrait(value float64) float64 {
	return (value - 1.0) / 98.0
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
