package matchup

import (
	"math"
	"math/rand"
	"testing"

	"gridiron/internal/catalog"
	"gridiron/internal/snap"
)

func scrimmageTemplate() catalog.AssignmentTemplate {
	return catalog.AssignmentTemplate{
		ID:           "scrimmage_base",
		OffenseRoles: []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"},
		DefenseRoles: []string{"DL", "DL", "DL", "DL", "LB", "LB", "LB", "CB", "CB", "S", "S"},
		PairingHints: []catalog.PairingHint{
			{OffenseRole: "WR", DefenseRole: "CB", Technique: "press_man"},
			{OffenseRole: "WR", DefenseRole: "CB", Technique: "off_man"},
			{OffenseRole: "RB", DefenseRole: "LB", Technique: "scan_free"},
		},
		DefaultTechnique: "zone_fit",
	}
}

func scrimmageParticipants() (offense, defense []snap.ActorRef) {
	offRoles := []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"}
	defRoles := []string{"DE", "DE", "DT", "DT", "LB", "LB", "LB", "CB", "CB", "S", "S"}
	for i, role := range offRoles {
		offense = append(offense, snap.ActorRef{
			ActorID: roleID("off", role, i), TeamID: "home", Role: role,
		})
	}
	for i, role := range defRoles {
		defense = append(defense, snap.ActorRef{
			ActorID: roleID("def", role, i), TeamID: "away", Role: role,
		})
	}
	return offense, defense
}

func roleID(side, role string, i int) string {
	return side + "-" + role + "-" + string(rune('a'+i))
}

func TestCompileProducesElevenWeightedEdges(t *testing.T) {
	offense, defense := scrimmageParticipants()
	graph, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(graph.Edges) != 11 {
		t.Fatalf("edge count = %d, want 11", len(graph.Edges))
	}
	sum := 0.0
	offSeen := make(map[string]bool)
	defSeen := make(map[string]bool)
	for _, edge := range graph.Edges {
		sum += edge.ResponsibilityWeight
		if offSeen[edge.OffenseActorID] {
			t.Errorf("offense actor %s appears on two edges", edge.OffenseActorID)
		}
		if defSeen[edge.DefenseActorID] {
			t.Errorf("defense actor %s appears on two edges", edge.DefenseActorID)
		}
		offSeen[edge.OffenseActorID] = true
		defSeen[edge.DefenseActorID] = true
	}
	if math.Abs(sum-1.0) > snap.WeightTolerance {
		t.Errorf("responsibility weights sum to %v, want 1.0", sum)
	}
	if err := graph.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCompileAppliesPairingHints(t *testing.T) {
	offense, defense := scrimmageParticipants()
	graph, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	techniques := make(map[string]int)
	for _, edge := range graph.Edges {
		techniques[edge.Technique]++
	}
	if techniques["press_man"] != 1 || techniques["off_man"] != 1 || techniques["scan_free"] != 1 {
		t.Errorf("hint techniques = %v, want one each of press_man, off_man, scan_free", techniques)
	}
	for _, edge := range graph.Edges {
		if edge.Technique == "press_man" {
			if edge.OffenseRole != "WR" || edge.DefenseRole != "CB" {
				t.Errorf("press_man edge pairs %s vs %s, want WR vs CB", edge.OffenseRole, edge.DefenseRole)
			}
			if edge.Leverage != "tight" {
				t.Errorf("press_man leverage = %s, want tight", edge.Leverage)
			}
		}
	}
}

func TestCompileInvariantUnderParticipantOrder(t *testing.T) {
	offense, defense := scrimmageParticipants()
	base, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	shuffler := rand.New(rand.NewSource(5))
	for trial := 0; trial < 8; trial++ {
		shuffledOff := append([]snap.ActorRef{}, offense...)
		shuffledDef := append([]snap.ActorRef{}, defense...)
		shuffler.Shuffle(len(shuffledOff), func(i, j int) {
			shuffledOff[i], shuffledOff[j] = shuffledOff[j], shuffledOff[i]
		})
		shuffler.Shuffle(len(shuffledDef), func(i, j int) {
			shuffledDef[i], shuffledDef[j] = shuffledDef[j], shuffledDef[i]
		})
		got, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), shuffledOff, shuffledDef)
		if err != nil {
			t.Fatalf("Compile (shuffled): %v", err)
		}
		for i := range base.Edges {
			if base.Edges[i].OffenseActorID != got.Edges[i].OffenseActorID ||
				base.Edges[i].DefenseActorID != got.Edges[i].DefenseActorID ||
				base.Edges[i].Technique != got.Edges[i].Technique {
				t.Fatalf("edge %d differs under reordering: %+v vs %+v", i, base.Edges[i], got.Edges[i])
			}
		}
	}
}

func TestCompileEdgeRolesFillGenericFrontSlots(t *testing.T) {
	// Template asks for 4 DL; the roster carries DE/DT bodies instead.
	offense, defense := scrimmageParticipants()
	if _, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense); err != nil {
		t.Fatalf("DE/DT should satisfy DL slots: %v", err)
	}
}

func TestCompileRejectsRoleMismatch(t *testing.T) {
	offense, defense := scrimmageParticipants()
	offense[0].Role = "K"
	if _, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense); err == nil {
		t.Fatal("expected role multiset error, got nil")
	}
}

func TestCompileRejectsShortSides(t *testing.T) {
	offense, defense := scrimmageParticipants()
	if _, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense[:10], defense); err == nil {
		t.Fatal("expected participant count error, got nil")
	}
}

func TestCompileTagsCooperativeGroups(t *testing.T) {
	offense, defense := scrimmageParticipants()
	graph, err := Compile("play-7", snap.PhaseEngagement, scrimmageTemplate(), offense, defense)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	counts := make(map[string]int)
	for _, edge := range graph.Edges {
		for _, tag := range edge.ContextTags {
			counts[tag]++
		}
	}
	for _, tag := range []string{"double_team", "bracket", "chip_release", "stunt_exchange"} {
		if counts[tag] != 2 {
			t.Errorf("%s tag count = %d, want 2", tag, counts[tag])
		}
	}
}

// Two OL edges on down linemen are enough for a stunt exchange; the
// group must not wait for a four-man front.
func TestStuntExchangeNeedsOnlyTwoQualifyingEdges(t *testing.T) {
	edges := []snap.MatchupEdge{
		{OffenseRole: "OL", DefenseRole: "DE"},
		{OffenseRole: "OL", DefenseRole: "DT"},
		{OffenseRole: "OL", DefenseRole: "LB"},
		{OffenseRole: "WR", DefenseRole: "CB"},
	}
	tagMicroGroups(edges)

	stunts := 0
	for _, edge := range edges {
		for _, tag := range edge.ContextTags {
			if tag == "stunt_exchange" {
				stunts++
			}
		}
	}
	if stunts != 2 {
		t.Errorf("stunt_exchange tagged %d edges, want 2", stunts)
	}
}

func TestEqualSharesCloseToOne(t *testing.T) {
	for _, n := range []int{3, 7, 11} {
		shares := equalShares(n)
		sum := 0.0
		for _, s := range shares {
			sum += s
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("equalShares(%d) sums to %v", n, sum)
		}
	}
}
