package injury

import (
	"errors"
	"reflect"
	"testing"

	"gridiron/internal/forensic"
	"gridiron/internal/rng"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

func testVectors(t *testing.T, actorIDs ...string) map[string]map[string]float64 {
	t.Helper()
	vectors := make(map[string]map[string]float64, len(actorIDs))
	for _, id := range actorIDs {
		vector, err := traits.Generate(id, "RB", traits.Truth{Overall: 0.6, Volatility: 0.4, InjurySusceptibility: 0.6})
		if err != nil {
			t.Fatalf("Generate(%s): %v", id, err)
		}
		vectors[id] = vector
	}
	return vectors
}

func multiRep(actorIDs ...string) snap.RepLedgerEntry {
	actors := make([]snap.RepActor, 0, len(actorIDs))
	weights := make(map[string]float64, len(actorIDs))
	share := 1.0 / float64(len(actorIDs))
	for _, id := range actorIDs {
		actors = append(actors, snap.RepActor{ActorID: id, TeamID: "home", Role: "RB"})
		weights[id] = share
	}
	return snap.RepLedgerEntry{
		RepID:                 "p1:rep:00",
		PlayID:                "p1",
		Phase:                 snap.PhaseAftermath,
		RepType:               snap.RepMultiActor,
		Actors:                actors,
		ResponsibilityWeights: weights,
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := Evaluator{Params: DefaultParams()}
	reps := []snap.RepLedgerEntry{multiRep("a1", "a2", "a3")}
	vectors := testVectors(t, "a1", "a2", "a3")

	first, err := e.Evaluate("p1", reps, nil, vectors, rng.NewSeeded(99))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	second, err := e.Evaluate("p1", reps, nil, vectors, rng.NewSeeded(99))
	if err != nil {
		t.Fatalf("Evaluate replay: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced %v then %v", first, second)
	}
}

func TestEvaluateMissingAvailabilityTrait(t *testing.T) {
	e := Evaluator{Params: DefaultParams()}
	reps := []snap.RepLedgerEntry{multiRep("a1")}
	vectors := testVectors(t, "a1")
	delete(vectors["a1"], "durability")

	_, err := e.Evaluate("p1", reps, nil, vectors, rng.NewSeeded(99))
	var ierr *forensic.IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("error %v is not an IntegrityError", err)
	}
	if ierr.Artifact.ErrorCode != ErrMissingAvailabilityTrait {
		t.Errorf("code = %s, want %s", ierr.Artifact.ErrorCode, ErrMissingAvailabilityTrait)
	}
	if ierr.Artifact.Identifiers["actor_id"] != "a1" {
		t.Errorf("artifact identifiers = %v, want actor a1", ierr.Artifact.Identifiers)
	}
}

func TestEvaluateMissingVector(t *testing.T) {
	e := Evaluator{Params: DefaultParams()}
	reps := []snap.RepLedgerEntry{multiRep("ghost")}
	_, err := e.Evaluate("p1", reps, nil, map[string]map[string]float64{}, rng.NewSeeded(99))
	var ierr *forensic.IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("error %v is not an IntegrityError", err)
	}
	if ierr.Artifact.ErrorCode != ErrMissingAvailabilityTrait {
		t.Errorf("code = %s, want %s", ierr.Artifact.ErrorCode, ErrMissingAvailabilityTrait)
	}
}

func TestCollisionIntensityMultiRepFixed(t *testing.T) {
	e := Evaluator{Params: DefaultParams()}
	contests := []snap.ContestResolution{{
		ContestID:          "c1",
		Score:              0.5,
		ActorContributions: map[string]float64{"a1": 0.3, "a2": -0.2},
	}}
	reps := []snap.RepLedgerEntry{multiRep("a1")}

	intensity := e.collisionIntensity(reps, contests)
	if intensity["a1"] != e.Params.MultiRepIntensity {
		t.Errorf("multi-rep actor intensity = %v, want fixed %v", intensity["a1"], e.Params.MultiRepIntensity)
	}
	// A dead-even contest is maximum exposure for everyone else.
	want := e.Params.BaseIntensity + e.Params.IntensitySpread
	if intensity["a2"] != want {
		t.Errorf("contest actor intensity = %v, want %v", intensity["a2"], want)
	}
}

func TestEvaluateSeverityBuckets(t *testing.T) {
	// High intensity and maximal fragility push occurrence probability
	// up; across many actors some injuries should land, each labelled
	// out or limited.
	params := DefaultParams()
	params.ContactWeight = 5
	params.SoftTissueWeight = 5
	params.DurabilityWeight = 5
	e := Evaluator{Params: params}

	ids := []string{"a1", "a2", "a3", "a4", "a5", "a6"}
	reps := []snap.RepLedgerEntry{multiRep(ids...)}
	vectors := testVectors(t, ids...)

	injuries, err := e.Evaluate("p1", reps, nil, vectors, rng.NewSeeded(5))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(injuries) == 0 {
		t.Fatalf("inflated risk weights produced no injuries")
	}
	for actorID, severity := range injuries {
		if severity != "out" && severity != "limited" {
			t.Errorf("actor %s severity = %q", actorID, severity)
		}
	}
}
