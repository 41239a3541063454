package contest

import (
	"fmt"
	"sort"

	"gridiron/internal/snap"
)

// RequiredFamilies lists every influence family the resolver can draw
// for a play type. Influence resources missing any of these are
// rejected before resolution starts.
func RequiredFamilies(playType snap.PlayType) []string {
	switch playType {
	case snap.PlayRun:
		return []string{"lane_creation", "fit_integrity", "tackle_finish", "ball_security"}
	case snap.PlayPass:
		return []string{"pressure_emergence", "separation_window", "decision_risk", "catch_point_contest", "yac_continuation", "ball_security"}
	case snap.PlayTwoPoint:
		return []string{"pressure_emergence", "separation_window", "decision_risk", "catch_point_contest", "tackle_finish", "ball_security"}
	case snap.PlayPunt, snap.PlayKickoff:
		return []string{"kick_quality", "block_pressure", "coverage_lane_integrity", "return_vision_convergence"}
	case snap.PlayFieldGoal, snap.PlayExtraPoint:
		return []string{"kick_quality", "block_pressure"}
	default:
		return nil
	}
}

// rolePreferences orders the roles a family draws actors from, most
// relevant first. Offense and defense sides are kept separate.
var rolePreferences = map[string]struct{ offense, defense []string }{
	"lane_creation":             {offense: []string{"OL", "TE", "RB"}, defense: []string{"DT", "DE", "DL", "LB"}},
	"fit_integrity":             {offense: []string{"RB", "OL", "TE"}, defense: []string{"LB", "S", "DT", "DE", "DL"}},
	"tackle_finish":             {offense: []string{"RB", "WR", "TE"}, defense: []string{"LB", "S", "CB"}},
	"ball_security":             {offense: []string{"RB", "QB", "WR", "TE"}, defense: []string{"LB", "S", "CB", "DE", "DT", "DL"}},
	"pressure_emergence":        {offense: []string{"OL", "RB", "TE"}, defense: []string{"DE", "DT", "DL", "LB"}},
	"separation_window":         {offense: []string{"WR", "TE", "RB"}, defense: []string{"CB", "S", "LB"}},
	"decision_risk":             {offense: []string{"QB"}, defense: []string{"S", "LB", "CB"}},
	"catch_point_contest":       {offense: []string{"WR", "TE", "RB"}, defense: []string{"CB", "S", "LB"}},
	"yac_continuation":          {offense: []string{"WR", "TE", "RB"}, defense: []string{"S", "CB", "LB"}},
	"kick_quality":              {offense: []string{"K", "P", "QB"}, defense: []string{"DE", "DT", "DL", "LB"}},
	"block_pressure":            {offense: []string{"OL", "TE", "RB"}, defense: []string{"DE", "DT", "DL", "LB"}},
	"coverage_lane_integrity":   {offense: []string{"WR", "RB", "LB", "CB", "S"}, defense: []string{"RB", "WR", "CB", "S", "LB"}},
	"return_vision_convergence": {offense: []string{"WR", "RB", "CB"}, defense: []string{"S", "CB", "LB", "WR", "RB"}},
}

// SelectActors picks the actor subset a family contest draws from one
// side. Participants are ranked by the family's role preference then
// by actor id, so selection is stable under input reordering.
func SelectActors(family, side string, participants []snap.ActorRef, target int) ([]string, error) {
	prefs, ok := rolePreferences[family]
	if !ok {
		return nil, fmt.Errorf("no role preferences registered for family %q", family)
	}
	order := prefs.offense
	if side == "defense" {
		order = prefs.defense
	}
	rank := make(map[string]int, len(order))
	for i, role := range order {
		rank[role] = i
	}

	ranked := make([]snap.ActorRef, len(participants))
	copy(ranked, participants)
	sort.Slice(ranked, func(i, j int) bool {
		ri, iOK := rank[ranked[i].Role]
		rj, jOK := rank[ranked[j].Role]
		if iOK != jOK {
			return iOK
		}
		if iOK && ri != rj {
			return ri < rj
		}
		return ranked[i].ActorID < ranked[j].ActorID
	})

	if target > len(ranked) {
		target = len(ranked)
	}
	if target == 0 {
		return nil, fmt.Errorf("family %q: no participants available on %s", family, side)
	}
	ids := make([]string, 0, target)
	for _, ref := range ranked[:target] {
		ids = append(ids, ref.ActorID)
	}
	return ids, nil
}
