// Package validate is the gatekeeper run before any snap resolves:
// play calls, snap contexts, and game-day readiness are checked against
// the resource catalog and the trait schema, and every blocking issue
// found is reported together.
package validate

import (
	"errors"
	"fmt"

	"gridiron/internal/catalog"
	"gridiron/internal/contest"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

const (
	codeMissingTrait          = "missing_trait"
	codeTraitOutOfRange       = "trait_out_of_range"
	codeIncompleteTraitVector = "incomplete_trait_vector"
	codeUnknownTrait          = "unknown_trait"
	codePersonnelDisallowed   = "formation_personnel_disallowed"
	codePlayTypeUnsupported   = "concept_play_type_unsupported"
	codeInvalidDown           = "invalid_down"
	codeInvalidDistance       = "invalid_distance"
	codeInvalidYardLine       = "invalid_yard_line"
	codeParticipantCount      = "participant_count_invalid"
	codeDuplicateParticipant  = "duplicate_participant"
	codeTeamCount             = "team_count_invalid"
	codePossessionUnknown     = "possession_team_unknown"
	codeMissingState          = "missing_transient_state"
	codeUnknownParticipant    = "unknown_participant"
	codeSessionMismatch       = "session_identity_mismatch"
	codeDepthSlotMissing      = "depth_chart_slot_missing"
	codeInfluenceIncomplete   = "influence_family_missing"
)

// Validator checks play calls, snap contexts, and game inputs. All
// lookups go through the injected catalog; the validator never
// constructs defaults of its own.
type Validator struct {
	Catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) (*Validator, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	return &Validator{Catalog: cat}, nil
}

// CheckTraitVector validates one actor's trait vector against the
// canonical schema: every required trait present and in range. Unknown
// extra traits are warnings.
func CheckTraitVector(actorID string, vector map[string]float64) []snap.Issue {
	var issues []snap.Issue
	known := make(map[string]bool, traits.Count)
	missing := 0
	for _, entry := range traits.Catalog() {
		known[entry.Code] = true
		value, ok := vector[entry.Code]
		if !ok {
			missing++
			issues = append(issues, snap.Issue{
				Code:      codeMissingTrait,
				Severity:  snap.SeverityBlocking,
				FieldPath: "traits." + entry.Code,
				EntityID:  actorID,
				Message:   fmt.Sprintf("required trait %q is absent", entry.Code),
			})
			continue
		}
		if value < entry.Min || value > entry.Max {
			issues = append(issues, snap.Issue{
				Code:      codeTraitOutOfRange,
				Severity:  snap.SeverityBlocking,
				FieldPath: "traits." + entry.Code,
				EntityID:  actorID,
				Message:   fmt.Sprintf("trait %q value %.3f outside [%.0f, %.0f]", entry.Code, value, entry.Min, entry.Max),
			})
		}
	}
	if missing > 0 {
		issues = append(issues, snap.Issue{
			Code:      codeIncompleteTraitVector,
			Severity:  snap.SeverityBlocking,
			FieldPath: "traits",
			EntityID:  actorID,
			Message:   fmt.Sprintf("trait vector carries %d of %d required traits", len(vector)-countUnknown(vector, known), traits.Count),
		})
	}
	for code := range vector {
		if !known[code] {
			issues = append(issues, snap.Issue{
				Code:      codeUnknownTrait,
				Severity:  snap.SeverityWarning,
				FieldPath: "traits." + code,
				EntityID:  actorID,
				Message:   fmt.Sprintf("trait %q is not in the catalog", code),
			})
		}
	}
	return issues
}

func countUnknown(vector map[string]float64, known map[string]bool) int {
	n := 0
	for code := range vector {
		if !known[code] {
			n++
		}
	}
	return n
}

// CheckPlayCall validates an intent against the catalog: personnel and
// formation must resolve, the formation must allow the personnel, and
// both concepts must support the play type. The play type's influence
// profile must also cover every contest family resolution can draw.
func (v *Validator) CheckPlayCall(intent snap.Intent) error {
	var issues []snap.Issue

	personnel, perr := v.Catalog.ResolvePersonnel(intent.Personnel)
	issues = append(issues, issuesFrom(perr)...)
	formation, ferr := v.Catalog.ResolveFormation(intent.Formation)
	issues = append(issues, issuesFrom(ferr)...)
	if perr == nil && ferr == nil && !containsString(formation.AllowedPersonnel, personnel.ID) {
		issues = append(issues, snap.Issue{
			Code:      codePersonnelDisallowed,
			Severity:  snap.SeverityBlocking,
			FieldPath: "intent.formation",
			EntityID:  formation.ID,
			Message:   fmt.Sprintf("formation %q does not allow personnel %q", formation.ID, personnel.ID),
		})
	}

	for _, side := range []struct{ side, id string }{
		{"offense", intent.OffensiveConcept},
		{"defense", intent.DefensiveConcept},
	} {
		concept, err := v.Catalog.ResolveConcept(side.id, side.side)
		if err != nil {
			issues = append(issues, issuesFrom(err)...)
			continue
		}
		if !containsString(concept.PlayTypes, string(intent.PlayType)) {
			issues = append(issues, snap.Issue{
				Code:      codePlayTypeUnsupported,
				Severity:  snap.SeverityBlocking,
				FieldPath: "intent." + side.side + "_concept",
				EntityID:  concept.ID,
				Message:   fmt.Sprintf("%s concept %q does not support play type %q", side.side, concept.ID, intent.PlayType),
			})
		}
	}

	issues = append(issues, v.influenceIssues(intent.PlayType)...)
	return finalize(issues)
}

// influenceIssues checks that the play type's trait-influence profile
// names every family resolution will ask for.
func (v *Validator) influenceIssues(playType snap.PlayType) []snap.Issue {
	influence, err := v.Catalog.ResolveInfluence(string(playType))
	if err != nil {
		return issuesFrom(err)
	}
	var issues []snap.Issue
	for _, family := range contest.RequiredFamilies(playType) {
		if _, ok := influence.FamilyByName(family); !ok {
			issues = append(issues, snap.Issue{
				Code:      codeInfluenceIncomplete,
				Severity:  snap.SeverityBlocking,
				FieldPath: "families",
				EntityID:  influence.ID,
				Message:   fmt.Sprintf("influence profile %q is missing family %q", influence.ID, family),
			})
		}
	}
	return issues
}

// CheckSnapContext validates a full snap context. When roster is
// non-nil every participant must also resolve to a player with a
// complete trait vector.
func (v *Validator) CheckSnapContext(ctx snap.Context, roster Roster) error {
	var issues []snap.Issue

	if ctx.Situation.Down < 1 || ctx.Situation.Down > 4 {
		issues = append(issues, situationIssue(codeInvalidDown, "situation.down",
			fmt.Sprintf("down %d outside [1, 4]", ctx.Situation.Down)))
	}
	if ctx.Situation.Distance < 1 {
		issues = append(issues, situationIssue(codeInvalidDistance, "situation.distance",
			fmt.Sprintf("distance %d must be at least 1", ctx.Situation.Distance)))
	}
	if ctx.Situation.YardLine < 1 || ctx.Situation.YardLine > 99 {
		issues = append(issues, situationIssue(codeInvalidYardLine, "situation.yard_line",
			fmt.Sprintf("yard line %d outside [1, 99]", ctx.Situation.YardLine)))
	}

	if len(ctx.Participants) != 22 {
		issues = append(issues, snap.Issue{
			Code:      codeParticipantCount,
			Severity:  snap.SeverityBlocking,
			FieldPath: "participants",
			Message:   fmt.Sprintf("context has %d participants, want 22", len(ctx.Participants)),
		})
	}

	seen := make(map[string]bool, len(ctx.Participants))
	teams := make(map[string]bool, 2)
	for _, ref := range ctx.Participants {
		if seen[ref.ActorID] {
			issues = append(issues, snap.Issue{
				Code:      codeDuplicateParticipant,
				Severity:  snap.SeverityBlocking,
				FieldPath: "participants",
				EntityID:  ref.ActorID,
				Message:   fmt.Sprintf("actor %q appears more than once", ref.ActorID),
			})
		}
		seen[ref.ActorID] = true
		teams[ref.TeamID] = true

		if _, ok := ctx.States[ref.ActorID]; !ok {
			issues = append(issues, snap.Issue{
				Code:      codeMissingState,
				Severity:  snap.SeverityBlocking,
				FieldPath: "states",
				EntityID:  ref.ActorID,
				Message:   fmt.Sprintf("actor %q has no transient state record", ref.ActorID),
			})
		}
		if vector, ok := ctx.Traits[ref.ActorID]; ok {
			issues = append(issues, CheckTraitVector(ref.ActorID, vector)...)
		} else {
			issues = append(issues, snap.Issue{
				Code:      codeIncompleteTraitVector,
				Severity:  snap.SeverityBlocking,
				FieldPath: "traits",
				EntityID:  ref.ActorID,
				Message:   fmt.Sprintf("actor %q has no trait vector", ref.ActorID),
			})
		}
		if roster != nil {
			if _, ok := roster.Player(ref.ActorID); !ok {
				issues = append(issues, snap.Issue{
					Code:      codeUnknownParticipant,
					Severity:  snap.SeverityBlocking,
					FieldPath: "participants",
					EntityID:  ref.ActorID,
					Message:   fmt.Sprintf("actor %q does not resolve to a roster player", ref.ActorID),
				})
			}
		}
	}
	if len(teams) != 2 {
		issues = append(issues, snap.Issue{
			Code:      codeTeamCount,
			Severity:  snap.SeverityBlocking,
			FieldPath: "participants",
			Message:   fmt.Sprintf("participants span %d teams, want 2", len(teams)),
		})
	}
	if ctx.Situation.PossessionTeamID != "" && len(teams) == 2 && !teams[ctx.Situation.PossessionTeamID] {
		issues = append(issues, situationIssue(codePossessionUnknown, "situation.possession_team_id",
			fmt.Sprintf("possession team %q is not among the participants", ctx.Situation.PossessionTeamID)))
	}

	return finalize(issues)
}

// CheckGameInput validates game-day readiness: session identity, full
// depth charts, complete roster trait vectors, and resolvable policies.
func (v *Validator) CheckGameInput(input GameInput, session SessionIdentity) error {
	var issues []snap.Issue

	if input.Identity != session {
		issues = append(issues, snap.Issue{
			Code:      codeSessionMismatch,
			Severity:  snap.SeverityBlocking,
			FieldPath: "identity",
			EntityID:  input.Identity.GameID,
			Message: fmt.Sprintf("input identity %s/S%d/W%d does not match session %s/S%d/W%d",
				input.Identity.GameID, input.Identity.Season, input.Identity.Week,
				session.GameID, session.Season, session.Week),
		})
	}

	for _, team := range input.Teams {
		for role, want := range requiredDepthSlots {
			if len(team.DepthChart[role]) < want {
				issues = append(issues, snap.Issue{
					Code:      codeDepthSlotMissing,
					Severity:  snap.SeverityBlocking,
					FieldPath: "depth_chart." + role,
					EntityID:  team.TeamID,
					Message:   fmt.Sprintf("team %q lists %d %s, want at least %d", team.TeamID, len(team.DepthChart[role]), role, want),
				})
			}
		}
		for _, player := range team.Roster {
			issues = append(issues, CheckTraitVector(player.PlayerID, player.Traits)...)
		}
		if _, err := v.Catalog.ResolvePolicy(team.PolicyID); err != nil {
			issues = append(issues, issuesFrom(err)...)
		}
	}

	return finalize(issues)
}

// requiredDepthSlots is the minimum game-day depth chart per role.
var requiredDepthSlots = map[string]int{
	"QB": 1,
	"RB": 1,
	"WR": 3,
	"TE": 1,
	"OL": 5,
	"DL": 4,
	"LB": 3,
	"CB": 2,
	"S":  2,
	"K":  1,
	"P":  1,
}

func situationIssue(code, field, message string) snap.Issue {
	return snap.Issue{Code: code, Severity: snap.SeverityBlocking, FieldPath: field, Message: message}
}

// issuesFrom unwraps a catalog lookup error into its issue list.
func issuesFrom(err error) []snap.Issue {
	if err == nil {
		return nil
	}
	var verr *snap.ValidationError
	if errors.As(err, &verr) {
		return verr.Issues
	}
	return []snap.Issue{{
		Code:     "lookup_failed",
		Severity: snap.SeverityBlocking,
		Message:  err.Error(),
	}}
}

// finalize sorts deterministically and aborts with every blocking
// issue attached, never just the first.
func finalize(issues []snap.Issue) error {
	snap.SortIssues(issues)
	if blocking := snap.BlockingIssues(issues); len(blocking) > 0 {
		return &snap.ValidationError{Issues: blocking}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
