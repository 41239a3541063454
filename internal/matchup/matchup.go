// Package matchup compiles the per-snap pairing graph that binds each
// offense participant to a defense participant before contests run.
package matchup

import (
	"fmt"
	"math"
	"sort"

	"gridiron/internal/catalog"
	"gridiron/internal/snap"
)

// roleAliases lists the template slots a participant role may fill
// beyond its own name. Edge DE/DT bodies satisfy generic DL slots.
var roleAliases = map[string][]string{
	"DE": {"DE", "DL"},
	"DT": {"DT", "DL"},
}

// preferenceTable orders, per offense role, which defense roles it is
// paired against when no pairing hint claims it first.
var preferenceTable = map[string][]string{
	"QB": {"S", "LB", "DE", "DT", "DL", "CB"},
	"RB": {"LB", "S", "CB", "DE", "DT", "DL"},
	"WR": {"CB", "S", "LB", "DL", "DE", "DT"},
	"TE": {"LB", "S", "DE", "CB", "DT", "DL"},
	"OL": {"DE", "DT", "DL", "LB", "S", "CB"},
	"K":  {"DE", "DL", "LB", "CB", "S", "RB"},
	"P":  {"DE", "DL", "LB", "CB", "S", "RB"},
	"LB": {"RB", "WR", "TE", "LB", "S", "CB", "DL", "DE", "DT"},
	"CB": {"WR", "RB", "S", "CB", "LB", "DL", "DE", "DT"},
	"S":  {"WR", "RB", "TE", "S", "CB", "LB", "DL", "DE", "DT"},
}

var frontRoles = map[string]bool{"DE": true, "DT": true, "DL": true}

// blockFrontRoles widens the front to include linebackers for the
// blocking-cooperation groups; stunts stay on the down linemen.
var blockFrontRoles = map[string]bool{"DE": true, "DT": true, "DL": true, "LB": true}

var coverageRoles = map[string]bool{"CB": true, "S": true, "LB": true}

var skillRoles = map[string]bool{"WR": true, "TE": true, "RB": true}

// Compile builds the 11-edge matchup graph for one snap phase. The
// participant order never influences the result: both sides are sorted
// by role then actor id before any pairing decision is made.
func Compile(playID, phase string, template catalog.AssignmentTemplate, offense, defense []snap.ActorRef) (snap.MatchupGraph, error) {
	if len(offense) != 11 {
		return snap.MatchupGraph{}, fmt.Errorf("play %s: offense has %d participants, want 11", playID, len(offense))
	}
	if len(defense) != 11 {
		return snap.MatchupGraph{}, fmt.Errorf("play %s: defense has %d participants, want 11", playID, len(defense))
	}
	if err := validateRoles(template.OffenseRoles, offense, "offense"); err != nil {
		return snap.MatchupGraph{}, fmt.Errorf("play %s template %s: %w", playID, template.ID, err)
	}
	if err := validateRoles(template.DefenseRoles, defense, "defense"); err != nil {
		return snap.MatchupGraph{}, fmt.Errorf("play %s template %s: %w", playID, template.ID, err)
	}

	off := sortedRefs(offense)
	def := sortedRefs(defense)
	usedOff := make(map[string]bool, 11)
	usedDef := make(map[string]bool, 11)

	type pairing struct {
		off, def  snap.ActorRef
		technique string
	}
	pairings := make([]pairing, 0, 11)

	// Hints claim actors first, in template order.
	for _, hint := range template.PairingHints {
		offRef, ok := firstUnused(off, usedOff, hint.OffenseRole)
		if !ok {
			continue
		}
		defRef, ok := firstUnused(def, usedDef, hint.DefenseRole)
		if !ok {
			continue
		}
		usedOff[offRef.ActorID] = true
		usedDef[defRef.ActorID] = true
		pairings = append(pairings, pairing{off: offRef, def: defRef, technique: hint.Technique})
	}

	// Remaining offense actors walk the preference table for their role,
	// falling back to any unclaimed defender.
	for _, offRef := range off {
		if usedOff[offRef.ActorID] {
			continue
		}
		defRef, ok := preferredDefender(def, usedDef, offRef.Role)
		if !ok {
			return snap.MatchupGraph{}, fmt.Errorf("play %s: no defender left for %s %s", playID, offRef.Role, offRef.ActorID)
		}
		usedOff[offRef.ActorID] = true
		usedDef[defRef.ActorID] = true
		pairings = append(pairings, pairing{off: offRef, def: defRef, technique: template.DefaultTechnique})
	}

	if len(pairings) != 11 {
		return snap.MatchupGraph{}, fmt.Errorf("play %s: compiled %d edges, want 11", playID, len(pairings))
	}

	weights := equalShares(len(pairings))
	edges := make([]snap.MatchupEdge, 0, len(pairings))
	for i, p := range pairings {
		edges = append(edges, snap.MatchupEdge{
			EdgeID:               fmt.Sprintf("%s:%s:edge:%02d", playID, phase, i),
			OffenseActorID:       p.off.ActorID,
			DefenseActorID:       p.def.ActorID,
			OffenseRole:          p.off.Role,
			DefenseRole:          p.def.Role,
			Technique:            p.technique,
			Leverage:             leverageFor(p.technique),
			ResponsibilityWeight: weights[i],
		})
	}
	tagMicroGroups(edges)

	graph := snap.MatchupGraph{
		GraphID: fmt.Sprintf("%s:%s:graph", playID, phase),
		PlayID:  playID,
		Phase:   phase,
		Edges:   edges,
	}
	if err := graph.Validate(); err != nil {
		return snap.MatchupGraph{}, err
	}
	return graph, nil
}

// validateRoles checks the participant role multiset against the
// template, honoring role aliases.
func validateRoles(required []string, refs []snap.ActorRef, side string) error {
	need := make(map[string]int, len(required))
	for _, role := range required {
		need[role]++
	}
	available := make(map[string]int, len(refs))
	for _, ref := range refs {
		available[ref.Role]++
	}

	slots := make([]string, 0, len(need))
	for role := range need {
		slots = append(slots, role)
	}
	// Exact matches consume first, then alias roles fill what remains.
	sort.Strings(slots)
	for _, role := range slots {
		take := min(need[role], available[role])
		need[role] -= take
		available[role] -= take
	}
	for _, role := range slots {
		if need[role] == 0 {
			continue
		}
		for avail, count := range available {
			if count == 0 {
				continue
			}
			for _, fills := range roleAliases[avail] {
				if fills != role {
					continue
				}
				take := min(need[role], count)
				need[role] -= take
				available[avail] -= take
				break
			}
		}
		if need[role] > 0 {
			return fmt.Errorf("%s is missing %d actor(s) for role %s", side, need[role], role)
		}
	}
	return nil
}

func sortedRefs(refs []snap.ActorRef) []snap.ActorRef {
	out := make([]snap.ActorRef, len(refs))
	copy(out, refs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].ActorID < out[j].ActorID
	})
	return out
}

func firstUnused(refs []snap.ActorRef, used map[string]bool, role string) (snap.ActorRef, bool) {
	for _, ref := range refs {
		if used[ref.ActorID] {
			continue
		}
		if ref.Role == role || fillsRole(ref.Role, role) {
			return ref, true
		}
	}
	return snap.ActorRef{}, false
}

func fillsRole(actual, wanted string) bool {
	for _, fills := range roleAliases[actual] {
		if fills == wanted {
			return true
		}
	}
	return false
}

func preferredDefender(def []snap.ActorRef, used map[string]bool, offenseRole string) (snap.ActorRef, bool) {
	for _, wanted := range preferenceTable[offenseRole] {
		if ref, ok := firstUnused(def, used, wanted); ok {
			return ref, true
		}
	}
	for _, ref := range def {
		if !used[ref.ActorID] {
			return ref, true
		}
	}
	return snap.ActorRef{}, false
}

// equalShares splits 1.0 into n equal weights at 6-decimal precision,
// folding the rounding remainder into the first share.
func equalShares(n int) []float64 {
	share := math.Round(1.0/float64(n)*1e6) / 1e6
	out := make([]float64, n)
	total := 0.0
	for i := 1; i < n; i++ {
		out[i] = share
		total += share
	}
	out[0] = math.Round((1.0-total)*1e6) / 1e6
	return out
}

func leverageFor(technique string) string {
	switch technique {
	case "press_man":
		return "tight"
	case "off_man", "scan_free":
		return "soft"
	default:
		return "neutral"
	}
}

// tagMicroGroups annotates cooperative structures. A group is only
// tagged when at least two edges qualify for it: the first two OL edges
// against the widened front form the double team, the first two skill
// edges in coverage form the bracket, the first TE/RB edge chips with
// the first OL edge, and the first two OL edges against down linemen
// form the stunt exchange.
func tagMicroGroups(edges []snap.MatchupEdge) {
	var olFront, bracket, chip, stunt []int
	for i, edge := range edges {
		if edge.OffenseRole == "OL" && blockFrontRoles[edge.DefenseRole] {
			olFront = append(olFront, i)
		}
		if edge.OffenseRole == "OL" && frontRoles[edge.DefenseRole] {
			stunt = append(stunt, i)
		}
		if skillRoles[edge.OffenseRole] && coverageRoles[edge.DefenseRole] {
			bracket = append(bracket, i)
		}
		if edge.OffenseRole == "TE" || edge.OffenseRole == "RB" {
			chip = append(chip, i)
		}
	}

	addTag := func(idx int, tag string) {
		edges[idx].ContextTags = append(edges[idx].ContextTags, tag)
	}
	if len(olFront) >= 2 {
		addTag(olFront[0], "double_team")
		addTag(olFront[1], "double_team")
	}
	if len(bracket) >= 2 {
		addTag(bracket[0], "bracket")
		addTag(bracket[1], "bracket")
	}
	if len(chip) >= 1 && len(olFront) >= 1 {
		addTag(chip[0], "chip_release")
		addTag(olFront[0], "chip_release")
	}
	if len(stunt) >= 2 {
		addTag(stunt[0], "stunt_exchange")
		addTag(stunt[1], "stunt_exchange")
	}
}
