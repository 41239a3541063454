package engine

import (
	"fmt"

	"gridiron/internal/catalog"
	"gridiron/internal/rng"
	"gridiron/internal/snap"
)

// Coach chooses a playbook entry for a situation. Two concrete
// implementations exist: policy-driven and externally scripted.
type Coach interface {
	CallPlay(situation snap.Situation, source rng.Source) (catalog.PlaybookEntry, error)
}

// Posture buckets a situation for playbook selection.
func Posture(situation snap.Situation) string {
	goToGo := 100 - situation.YardLine
	switch {
	case situation.Down == 4 && goToGo <= 35:
		return "field_goal_try"
	case situation.Down == 4 && situation.Distance >= 4:
		return "fourth_and_long"
	case situation.Down == 3 && situation.Distance >= 8:
		return "third_and_long"
	case situation.Distance <= 2:
		return "short_yardage"
	default:
		return "normal"
	}
}

// PolicyCoach picks from a coaching policy's posture playbook using an
// injected random source.
type PolicyCoach struct {
	Catalog *catalog.Catalog
	Policy  catalog.Policy
}

func NewPolicyCoach(cat *catalog.Catalog, policyID string) (*PolicyCoach, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	policy, err := cat.ResolvePolicy(policyID)
	if err != nil {
		return nil, err
	}
	return &PolicyCoach{Catalog: cat, Policy: policy}, nil
}

func (c *PolicyCoach) CallPlay(situation snap.Situation, source rng.Source) (catalog.PlaybookEntry, error) {
	posture := Posture(situation)
	playlist, ok := c.Policy.PlaybookByPosture[posture]
	if !ok || len(playlist) == 0 {
		return catalog.PlaybookEntry{}, fmt.Errorf("policy %q has no playlist for posture %q", c.Policy.ID, posture)
	}
	entryID, err := source.Pick(playlist)
	if err != nil {
		return catalog.PlaybookEntry{}, fmt.Errorf("picking from posture %q: %w", posture, err)
	}
	return c.Catalog.ResolvePlaybookEntry(entryID)
}

// ScriptedCoach replays an externally supplied call sheet in order.
type ScriptedCoach struct {
	Catalog *catalog.Catalog
	Sheet   []string
	next    int
}

func (c *ScriptedCoach) CallPlay(snap.Situation, rng.Source) (catalog.PlaybookEntry, error) {
	if c.next >= len(c.Sheet) {
		return catalog.PlaybookEntry{}, fmt.Errorf("call sheet exhausted after %d plays", len(c.Sheet))
	}
	id := c.Sheet[c.next]
	c.next++
	return c.Catalog.ResolvePlaybookEntry(id)
}
