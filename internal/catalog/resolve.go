package catalog

import (
	"fmt"
	"sort"

	"gridiron/internal/snap"
)

func unknownID(code, resourceType, id string) error {
	return &snap.ValidationError{Issues: []snap.Issue{{
		Code:      code,
		Severity:  snap.SeverityBlocking,
		FieldPath: "resource_id",
		EntityID:  id,
		Message:   fmt.Sprintf("%s id %q is not registered", resourceType, id),
	}}}
}

// ResolvePersonnel looks up a personnel package. Unknown ids raise a
// structured issue rather than returning a default.
func (c *Catalog) ResolvePersonnel(id string) (Personnel, error) {
	p, ok := c.personnel[id]
	if !ok {
		return Personnel{}, unknownID("unknown_personnel", "personnel_package", id)
	}
	return p, nil
}

// ResolveFormation looks up a formation.
func (c *Catalog) ResolveFormation(id string) (Formation, error) {
	f, ok := c.formations[id]
	if !ok {
		return Formation{}, unknownID("unknown_formation", "formation", id)
	}
	return f, nil
}

// ResolveConcept looks up an offense or defense concept by side.
func (c *Catalog) ResolveConcept(id, side string) (Concept, error) {
	switch side {
	case "offense":
		co, ok := c.offense[id]
		if !ok {
			return Concept{}, unknownID("unknown_offense_concept", "concept_offense", id)
		}
		return co, nil
	case "defense":
		co, ok := c.defense[id]
		if !ok {
			return Concept{}, unknownID("unknown_defense_concept", "concept_defense", id)
		}
		return co, nil
	default:
		return Concept{}, fmt.Errorf("side must be \"offense\" or \"defense\", got %q", side)
	}
}

// ResolvePolicy looks up a coaching policy.
func (c *Catalog) ResolvePolicy(id string) (Policy, error) {
	p, ok := c.policies[id]
	if !ok {
		return Policy{}, unknownID("unknown_coaching_policy", "coaching_policy", id)
	}
	return p, nil
}

// ResolveInfluence looks up the trait-influence profile for a play type.
func (c *Catalog) ResolveInfluence(playType string) (Influence, error) {
	i, ok := c.influences[playType]
	if !ok {
		return Influence{}, unknownID("unknown_trait_influence", "trait_influence_profile", playType)
	}
	return i, nil
}

// ResolvePlaybookEntry looks up a playbook entry.
func (c *Catalog) ResolvePlaybookEntry(id string) (PlaybookEntry, error) {
	e, ok := c.playbook[id]
	if !ok {
		return PlaybookEntry{}, unknownID("unknown_playbook_entry", "playbook_entry", id)
	}
	return e, nil
}

// ResolveEntryForIntent finds the playbook entry matching a play call
// intent exactly. No derived fallback entry is ever constructed.
func (c *Catalog) ResolveEntryForIntent(intent snap.Intent) (PlaybookEntry, error) {
	if intent.PlaybookEntryID != "" {
		return c.ResolvePlaybookEntry(intent.PlaybookEntryID)
	}
	for _, id := range c.PlaybookIDs() {
		entry := c.playbook[id]
		if entry.PlayType == intent.PlayType &&
			entry.PersonnelID == intent.Personnel &&
			entry.FormationID == intent.Formation &&
			entry.OffensiveConceptID == intent.OffensiveConcept &&
			entry.DefensiveConceptID == intent.DefensiveConcept {
			return entry, nil
		}
	}
	return PlaybookEntry{}, &snap.ValidationError{Issues: []snap.Issue{{
		Code:      "playbook_intent_unresolvable",
		Severity:  snap.SeverityBlocking,
		FieldPath: "intent",
		EntityID:  fmt.Sprintf("%s:%s:%s:%s:%s", intent.PlayType, intent.Personnel, intent.Formation, intent.OffensiveConcept, intent.DefensiveConcept),
		Message:   "no playbook entry matches play call intent",
	}}}
}

// ResolveTemplate looks up an assignment template.
func (c *Catalog) ResolveTemplate(id string) (AssignmentTemplate, error) {
	t, ok := c.templates[id]
	if !ok {
		return AssignmentTemplate{}, unknownID("unknown_assignment_template", "assignment_template", id)
	}
	return t, nil
}

// Manifests returns every loaded bundle manifest, sorted by type.
func (c *Catalog) Manifests() []Manifest {
	out := make([]Manifest, len(c.manifests))
	copy(out, c.manifests)
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) PersonnelIDs() []string { return sortedKeys(c.personnel) }
func (c *Catalog) FormationIDs() []string { return sortedKeys(c.formations) }
func (c *Catalog) OffenseIDs() []string   { return sortedKeys(c.offense) }
func (c *Catalog) DefenseIDs() []string   { return sortedKeys(c.defense) }
func (c *Catalog) PolicyIDs() []string    { return sortedKeys(c.policies) }
func (c *Catalog) InfluenceIDs() []string { return sortedKeys(c.influences) }
func (c *Catalog) PlaybookIDs() []string  { return sortedKeys(c.playbook) }
func (c *Catalog) TemplateIDs() []string  { return sortedKeys(c.templates) }
