package contest

import (
	"math"
	"strings"
	"testing"

	"gridiron/internal/catalog"
	"gridiron/internal/snap"
)

func testProfile() catalog.FamilyProfile {
	return catalog.FamilyProfile{
		Family:             "tackle_finish",
		OffenseWeights:     map[string]float64{"contact_balance": 0.6, "ball_security": 0.4},
		DefenseWeights:     map[string]float64{"tackle_reliability": 0.7, "pursuit_angles": 0.3},
		FatigueSensitivity: 0.2,
		WearSensitivity:    0.1,
	}
}

func testInput() Input {
	return Input{
		ContestID:       "c-001",
		PlayID:          "play-1",
		PlayType:        snap.PlayRun,
		Phase:           "terminal",
		Family:          "tackle_finish",
		OffenseActorIDs: []string{"rb1"},
		DefenseActorIDs: []string{"lb1"},
		Profile:         testProfile(),
		States: map[string]snap.ActorState{
			"rb1": {},
			"lb1": {},
		},
		Traits: map[string]map[string]float64{
			"rb1": {"contact_balance": 70, "ball_security": 70, "volatility_profile": 50},
			"lb1": {"tackle_reliability": 70, "pursuit_angles": 70, "volatility_profile": 50},
		},
	}
}

func TestEvaluateBalancedGroups(t *testing.T) {
	res, err := Evaluator{}.Evaluate(testInput())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(res.Score-0.5) > 1e-9 {
		t.Errorf("balanced contest score = %v, want 0.5", res.Score)
	}
	if res.Score <= 0 || res.Score >= 1 {
		t.Errorf("score %v outside (0, 1)", res.Score)
	}
	if _, ok := res.ActorContributions["rb1"]; !ok {
		t.Error("missing actor contribution for rb1")
	}
	if _, ok := res.TraitContributions["tackle_reliability"]; !ok {
		t.Error("missing trait contribution for tackle_reliability")
	}
}

func TestEvaluateMismatchShiftsScore(t *testing.T) {
	in := testInput()
	in.Traits["rb1"]["contact_balance"] = 99
	in.Traits["rb1"]["ball_security"] = 99
	in.Traits["lb1"]["tackle_reliability"] = 5
	in.Traits["lb1"]["pursuit_angles"] = 5
	res, err := Evaluator{}.Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score <= 0.5 {
		t.Errorf("dominant offense score = %v, want > 0.5", res.Score)
	}
}

func TestEvaluateFatigueDampens(t *testing.T) {
	fresh, err := Evaluator{}.Evaluate(testInput())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	tired := testInput()
	tired.States["rb1"] = snap.ActorState{Fatigue: 0.9, AcuteWear: 0.5}
	res, err := Evaluator{}.Evaluate(tired)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score >= fresh.Score {
		t.Errorf("fatigued offense score = %v, want below fresh %v", res.Score, fresh.Score)
	}
}

func TestEvaluateMissingTraitIsError(t *testing.T) {
	in := testInput()
	delete(in.Traits["lb1"], "pursuit_angles")
	if _, err := (Evaluator{}).Evaluate(in); err == nil {
		t.Fatal("expected error for missing trait, got nil")
	} else if !strings.Contains(err.Error(), "pursuit_angles") {
		t.Errorf("error %q does not name the missing trait", err)
	}
}

func TestEvaluateEmptyGroupIsError(t *testing.T) {
	in := testInput()
	in.DefenseActorIDs = nil
	if _, err := (Evaluator{}).Evaluate(in); err == nil {
		t.Fatal("expected error for empty defense group, got nil")
	}
}

func TestEvaluateUnknownContextModifierIsError(t *testing.T) {
	in := testInput()
	in.Profile.ContextModifiers = map[string]float64{"full_moon_bonus": 0.2}
	if _, err := (Evaluator{}).Evaluate(in); err == nil {
		t.Fatal("expected error for unknown context modifier, got nil")
	}
}

func TestEvaluateContextModifierApplies(t *testing.T) {
	in := testInput()
	in.Profile.ContextModifiers = map[string]float64{"short_yardage_bonus": 0.2}
	in.Situation = snap.Situation{Down: 3, Distance: 1, YardLine: 50, Quarter: 2, ClockSeconds: 400}
	res, err := Evaluator{}.Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score <= 0.5 {
		t.Errorf("short yardage bonus score = %v, want > 0.5", res.Score)
	}
}

func TestRequiredFamilies(t *testing.T) {
	for _, pt := range snap.PlayTypes() {
		if len(RequiredFamilies(pt)) == 0 {
			t.Errorf("no required families for play type %s", pt)
		}
	}
	for _, family := range RequiredFamilies(snap.PlayFieldGoal) {
		if family == "decision_risk" {
			t.Error("field goal plays must not draw the decision_risk family")
		}
	}
	if got := RequiredFamilies(snap.PlayFieldGoal); len(got) != 2 {
		t.Errorf("field goal families = %v, want kick_quality and block_pressure only", got)
	}
}

func TestRolePreferencesCoverRequiredFamilies(t *testing.T) {
	for _, pt := range snap.PlayTypes() {
		for _, family := range RequiredFamilies(pt) {
			if _, ok := rolePreferences[family]; !ok {
				t.Errorf("family %s has no role preferences", family)
			}
		}
	}
}

func TestSelectActorsStableUnderReordering(t *testing.T) {
	participants := []snap.ActorRef{
		{ActorID: "wr2", TeamID: "home", Role: "WR"},
		{ActorID: "rb1", TeamID: "home", Role: "RB"},
		{ActorID: "te1", TeamID: "home", Role: "TE"},
		{ActorID: "wr1", TeamID: "home", Role: "WR"},
		{ActorID: "qb1", TeamID: "home", Role: "QB"},
	}
	first, err := SelectActors("separation_window", "offense", participants, 3)
	if err != nil {
		t.Fatalf("SelectActors: %v", err)
	}
	reversed := make([]snap.ActorRef, len(participants))
	for i, ref := range participants {
		reversed[len(participants)-1-i] = ref
	}
	second, err := SelectActors("separation_window", "offense", reversed, 3)
	if err != nil {
		t.Fatalf("SelectActors: %v", err)
	}
	if len(first) != 3 || first[0] != "wr1" || first[1] != "wr2" || first[2] != "te1" {
		t.Errorf("selection order = %v, want [wr1 wr2 te1]", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("selection changed under reordering: %v vs %v", first, second)
		}
	}
}
