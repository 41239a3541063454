package catalog

import (
	"fmt"

	"gridiron/internal/snap"
)

// crossReferenceIssues checks referential integrity across bundles after
// every bundle has loaded individually.
func (c *Catalog) crossReferenceIssues() []snap.Issue {
	var issues []snap.Issue

	for _, id := range c.FormationIDs() {
		formation := c.formations[id]
		if len(formation.AllowedPersonnel) == 0 {
			issues = append(issues, snap.Issue{
				Code:      "missing_required_runtime_config",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("formation.%s.allowed_personnel", id),
				EntityID:  id,
				Message:   "formation must allow at least one personnel package",
			})
			continue
		}
		for _, pid := range formation.AllowedPersonnel {
			if _, ok := c.personnel[pid]; !ok {
				issues = append(issues, snap.Issue{
					Code:      "formation_personnel_ref_missing",
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("formation.%s.allowed_personnel", id),
					EntityID:  id,
					Message:   fmt.Sprintf("references missing personnel %q", pid),
				})
			}
		}
	}

	for _, id := range c.PolicyIDs() {
		policy := c.policies[id]
		if len(policy.PlaybookByPosture) == 0 {
			issues = append(issues, snap.Issue{
				Code:      "invalid_policy_playbook_map",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("policy.%s.playbook_by_posture", id),
				EntityID:  id,
				Message:   "playbook_by_posture must be non-empty",
			})
			continue
		}
		for posture, playIDs := range policy.PlaybookByPosture {
			if len(playIDs) == 0 {
				issues = append(issues, snap.Issue{
					Code:      "invalid_policy_playlist",
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("policy.%s.playbook_by_posture.%s", id, posture),
					EntityID:  id,
					Message:   "posture playlist must be non-empty",
				})
				continue
			}
			for _, playID := range playIDs {
				if _, ok := c.playbook[playID]; !ok {
					issues = append(issues, snap.Issue{
						Code:      "policy_playbook_ref_missing",
						Severity:  snap.SeverityBlocking,
						FieldPath: fmt.Sprintf("policy.%s.playbook_by_posture.%s", id, posture),
						EntityID:  id,
						Message:   fmt.Sprintf("references unknown playbook id %q", playID),
					})
				}
			}
		}
	}

	for _, id := range c.PlaybookIDs() {
		entry := c.playbook[id]
		if _, err := snap.ParsePlayType(string(entry.PlayType)); err != nil {
			issues = append(issues, snap.Issue{
				Code:      "invalid_playbook_play_type",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("playbook.%s.play_type", id),
				EntityID:  id,
				Message:   err.Error(),
			})
		}
		refs := []struct {
			field string
			value string
			known map[string]bool
			code  string
		}{
			{"personnel_id", entry.PersonnelID, keySet(c.personnel), "playbook_personnel_ref_missing"},
			{"formation_id", entry.FormationID, keySet(c.formations), "playbook_formation_ref_missing"},
			{"offensive_concept_id", entry.OffensiveConceptID, keySet(c.offense), "playbook_offense_concept_ref_missing"},
			{"defensive_concept_id", entry.DefensiveConceptID, keySet(c.defense), "playbook_defense_concept_ref_missing"},
			{"assignment_template_id", entry.AssignmentTemplateID, keySet(c.templates), "playbook_template_ref_missing"},
		}
		for _, ref := range refs {
			if ref.value == "" {
				issues = append(issues, snap.Issue{
					Code:      "missing_required_runtime_config",
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("playbook.%s.%s", id, ref.field),
					EntityID:  id,
					Message:   fmt.Sprintf("required field %q missing", ref.field),
				})
				continue
			}
			if !ref.known[ref.value] {
				issues = append(issues, snap.Issue{
					Code:      ref.code,
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("playbook.%s.%s", id, ref.field),
					EntityID:  id,
					Message:   fmt.Sprintf("references unknown id %q", ref.value),
				})
			}
		}
	}

	for _, id := range c.TemplateIDs() {
		template := c.templates[id]
		if len(template.OffenseRoles) != 11 || len(template.DefenseRoles) != 11 {
			issues = append(issues, snap.Issue{
				Code:      "assignment_template_role_count",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("assignment_template.%s", id),
				EntityID:  id,
				Message:   "assignment templates must define 11 offense and 11 defense roles",
			})
		}
		if template.DefaultTechnique == "" {
			issues = append(issues, snap.Issue{
				Code:      "missing_required_runtime_config",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("assignment_template.%s.default_technique", id),
				EntityID:  id,
				Message:   "default_technique is required",
			})
		}
	}

	for _, id := range c.InfluenceIDs() {
		influence := c.influences[id]
		if len(influence.Families) == 0 {
			issues = append(issues, snap.Issue{
				Code:      "invalid_influence_profile",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("trait_influences.%s.families", id),
				EntityID:  id,
				Message:   "influence profile must provide a non-empty family list",
			})
		}
		for _, family := range influence.Families {
			if family.Family == "" {
				issues = append(issues, snap.Issue{
					Code:      "invalid_influence_profile",
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("trait_influences.%s.families", id),
					EntityID:  id,
					Message:   "family entry missing family name",
				})
				continue
			}
			if len(family.OffenseWeights) == 0 || len(family.DefenseWeights) == 0 {
				issues = append(issues, snap.Issue{
					Code:      "invalid_influence_weights",
					Severity:  snap.SeverityBlocking,
					FieldPath: fmt.Sprintf("trait_influences.%s.%s", id, family.Family),
					EntityID:  id,
					Message:   "offense_weights and defense_weights must be non-empty",
				})
			}
		}
		if influence.Outcome.ClockDeltaMin < 1 || influence.Outcome.ClockDeltaMax < influence.Outcome.ClockDeltaMin {
			issues = append(issues, snap.Issue{
				Code:      "invalid_outcome_profile_clock",
				Severity:  snap.SeverityBlocking,
				FieldPath: fmt.Sprintf("trait_influences.%s.outcome_profile", id),
				EntityID:  id,
				Message:   "invalid clock delta bounds",
			})
		}
	}

	return issues
}

func keySet[T any](m map[string]T) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}
