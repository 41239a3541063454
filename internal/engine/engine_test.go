package engine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"gridiron/internal/catalog"
	"gridiron/internal/events"
	"gridiron/internal/forensic"
	"gridiron/internal/rng"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

func newTestEngine(t *testing.T, seed int64, opts ...Option) *Engine {
	t.Helper()
	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	e, err := New(cat, seed, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func runIntent() snap.Intent {
	return snap.Intent{
		PlayType:         snap.PlayRun,
		Personnel:        "11",
		Formation:        "singleback",
		OffensiveConcept: "inside_zone",
		DefensiveConcept: "over_front",
		Tempo:            "normal",
		Aggression:       "balanced",
	}
}

func passIntent() snap.Intent {
	return snap.Intent{
		PlayType:         snap.PlayPass,
		Personnel:        "11",
		Formation:        "gun_trips",
		OffensiveConcept: "mesh_concept",
		DefensiveConcept: "cover_three",
		Tempo:            "normal",
		Aggression:       "balanced",
	}
}

func fieldGoalIntent() snap.Intent {
	return snap.Intent{
		PlayType:         snap.PlayFieldGoal,
		Personnel:        "st_fg",
		Formation:        "fg_heavy",
		OffensiveConcept: "fg_operation",
		DefensiveConcept: "fg_block_interior",
		Tempo:            "normal",
		Aggression:       "conservative",
	}
}

// buildContext assembles a full 22-participant snap context with
// generated trait vectors for the given offense role sheet.
func buildContext(t *testing.T, intent snap.Intent, offRoles []string) snap.Context {
	t.Helper()
	defRoles := []string{"DE", "DE", "DT", "DT", "LB", "LB", "LB", "CB", "CB", "S", "S"}
	ctx := snap.Context{
		GameID: "g1",
		PlayID: "p1",
		Mode:   snap.ModePlay,
		Situation: snap.Situation{
			Down: 1, Distance: 10, YardLine: 35, Quarter: 1,
			ClockSeconds: 900, PossessionTeamID: "home",
			TimeoutsOffense: 3, TimeoutsDefense: 3,
		},
		States: make(map[string]snap.ActorState),
		Traits: make(map[string]map[string]float64),
		Intent: intent,
	}
	add := func(team, role string, i int) {
		id := fmt.Sprintf("%s-%s-%d", team, role, i)
		ctx.Participants = append(ctx.Participants, snap.ActorRef{ActorID: id, TeamID: team, Role: role})
		ctx.States[id] = snap.ActorState{Fatigue: 0.1, DisciplineRisk: 0.1}
		vector, err := traits.Generate(id, role, traits.Truth{Overall: 0.65, Volatility: 0.3, InjurySusceptibility: 0.2})
		if err != nil {
			t.Fatalf("Generate(%s): %v", id, err)
		}
		ctx.Traits[id] = vector
	}
	for i, role := range offRoles {
		add("home", role, i)
	}
	for i, role := range defRoles {
		add("away", role, i)
	}
	return ctx
}

func runContext(t *testing.T) snap.Context {
	return buildContext(t, runIntent(),
		[]string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"})
}

func passContext(t *testing.T) snap.Context {
	return buildContext(t, passIntent(),
		[]string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"})
}

func fieldGoalContext(t *testing.T) snap.Context {
	ctx := buildContext(t, fieldGoalIntent(),
		[]string{"K", "QB", "OL", "OL", "OL", "OL", "OL", "TE", "TE", "WR", "RB"})
	ctx.Situation.YardLine = 70
	return ctx
}

func integrityCode(t *testing.T, err error) string {
	t.Helper()
	var ierr *forensic.IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("error %v is not an IntegrityError", err)
	}
	return ierr.Artifact.ErrorCode
}

func TestRunSnapDeterminism(t *testing.T) {
	ctx := runContext(t)
	first, err := newTestEngine(t, 99).RunSnap(ctx)
	if err != nil {
		t.Fatalf("first RunSnap: %v", err)
	}
	second, err := newTestEngine(t, 99).RunSnap(ctx)
	if err != nil {
		t.Fatalf("second RunSnap: %v", err)
	}

	if !reflect.DeepEqual(first.PlayResult, second.PlayResult) {
		t.Errorf("play results differ:\n%+v\n%+v", first.PlayResult, second.PlayResult)
	}
	if !reflect.DeepEqual(first.Contests, second.Contests) {
		t.Errorf("contest resolutions differ across identical engines")
	}
	if !reflect.DeepEqual(first.RepLedger, second.RepLedger) {
		t.Errorf("rep ledgers differ across identical engines")
	}
	if !reflect.DeepEqual(first.Causality, second.Causality) {
		t.Errorf("causality chains differ across identical engines")
	}
	if !reflect.DeepEqual(first.Injuries, second.Injuries) {
		t.Errorf("injury sets differ across identical engines")
	}
}

func TestRunSnapSeedSensitivity(t *testing.T) {
	ctx := passContext(t)
	a, err := newTestEngine(t, 99).RunSnap(ctx)
	if err != nil {
		t.Fatalf("RunSnap seed 99: %v", err)
	}
	// Different seeds should disagree on at least one of several plays.
	var diverged bool
	for i := 0; i < 5; i++ {
		play := ctx.WithPlayID(fmt.Sprintf("p%d", i))
		ra, err := newTestEngine(t, 99).RunSnap(play)
		if err != nil {
			t.Fatalf("RunSnap: %v", err)
		}
		rb, err := newTestEngine(t, 100).RunSnap(play)
		if err != nil {
			t.Fatalf("RunSnap: %v", err)
		}
		if !reflect.DeepEqual(ra.PlayResult, rb.PlayResult) {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Errorf("seeds 99 and 100 produced identical results on every play; got %+v", a.PlayResult)
	}
}

func TestModeInvariance(t *testing.T) {
	e := newTestEngine(t, 99)
	ctx := runContext(t)
	base, err := e.RunSnap(ctx)
	if err != nil {
		t.Fatalf("RunSnap: %v", err)
	}
	for _, mode := range []snap.Mode{snap.ModePlay, snap.ModeSim, snap.ModeOffscreen} {
		t.Run(string(mode), func(t *testing.T) {
			got, err := e.RunModeInvariant(ctx, mode)
			if err != nil {
				t.Fatalf("RunModeInvariant: %v", err)
			}
			if !reflect.DeepEqual(got.PlayResult, base.PlayResult) {
				t.Errorf("mode %s changed the play result:\n%+v\n%+v", mode, got.PlayResult, base.PlayResult)
			}
			if !reflect.DeepEqual(got.Contests, base.Contests) {
				t.Errorf("mode %s changed contest resolutions", mode)
			}
			if !reflect.DeepEqual(got.Injuries, base.Injuries) {
				t.Errorf("mode %s changed injuries", mode)
			}
		})
	}
}

func TestInsufficientParticipantsFailsBeforeDraws(t *testing.T) {
	e := newTestEngine(t, 99)
	ctx := runContext(t)
	ctx.Participants = ctx.Participants[:1]
	_, err := e.RunSnap(ctx)
	if code := integrityCode(t, err); code != ErrInsufficientParticipants {
		t.Fatalf("code = %s, want %s", code, ErrInsufficientParticipants)
	}
}

func TestInvalidTeamContext(t *testing.T) {
	e := newTestEngine(t, 99)
	ctx := runContext(t)
	ctx.Situation.PossessionTeamID = ""
	_, err := e.RunSnap(ctx)
	if code := integrityCode(t, err); code != ErrInvalidTeamContext {
		t.Fatalf("code = %s, want %s", code, ErrInvalidTeamContext)
	}
}

func TestPreSimValidationFailure(t *testing.T) {
	e := newTestEngine(t, 99)
	ctx := runContext(t)
	ctx.Intent.Formation = "wishbone"
	_, err := e.RunSnap(ctx)
	if code := integrityCode(t, err); code != ErrPreSimValidationFailed {
		t.Fatalf("code = %s, want %s", code, ErrPreSimValidationFailed)
	}
}

func TestFieldGoalContestFamilies(t *testing.T) {
	e := newTestEngine(t, 99)
	res, err := e.RunSnap(fieldGoalContext(t))
	if err != nil {
		t.Fatalf("RunSnap: %v", err)
	}
	if len(res.Contests) != 2 {
		t.Fatalf("field goal drew %d contests, want 2", len(res.Contests))
	}
	want := map[string]bool{"kick_quality": true, "block_pressure": true}
	for _, contest := range res.Contests {
		if !want[contest.Family] {
			t.Errorf("field goal drew family %q", contest.Family)
		}
		if contest.Family == "decision_risk" {
			t.Errorf("field goal must never draw decision_risk")
		}
	}
}

func TestResolutionClosureInvariants(t *testing.T) {
	e := newTestEngine(t, 99)
	for _, build := range []func(*testing.T) snap.Context{runContext, passContext, fieldGoalContext} {
		ctx := build(t)
		t.Run(string(ctx.Intent.PlayType), func(t *testing.T) {
			res, err := e.RunSnap(ctx)
			if err != nil {
				t.Fatalf("RunSnap: %v", err)
			}
			if err := res.Graph.Validate(); err != nil {
				t.Errorf("matchup graph: %v", err)
			}
			for _, entry := range res.RepLedger {
				if err := entry.Validate(); err != nil {
					t.Errorf("rep ledger: %v", err)
				}
			}
			if err := res.Causality.Validate(); err != nil {
				t.Errorf("causality chain: %v", err)
			}
			if res.PlayResult.NextDown < 1 || res.PlayResult.NextDown > 4 {
				t.Errorf("next down %d outside [1, 4]", res.PlayResult.NextDown)
			}
		})
	}
}

func TestParticipantOrderDoesNotChangeResult(t *testing.T) {
	e := newTestEngine(t, 99)
	ctx := runContext(t)
	base, err := e.RunSnap(ctx)
	if err != nil {
		t.Fatalf("RunSnap: %v", err)
	}

	shuffled := ctx
	shuffled.Participants = make([]snap.ActorRef, len(ctx.Participants))
	copy(shuffled.Participants, ctx.Participants)
	for i, j := 0, len(shuffled.Participants)-1; i < j; i, j = i+1, j-1 {
		shuffled.Participants[i], shuffled.Participants[j] = shuffled.Participants[j], shuffled.Participants[i]
	}
	got, err := e.RunSnap(shuffled)
	if err != nil {
		t.Fatalf("RunSnap shuffled: %v", err)
	}
	if !reflect.DeepEqual(got.PlayResult, base.PlayResult) {
		t.Errorf("participant order changed the play result:\n%+v\n%+v", got.PlayResult, base.PlayResult)
	}
	if !reflect.DeepEqual(got.Contests, base.Contests) {
		t.Errorf("participant order changed contest resolutions")
	}
}

func TestRunForcedRequiresDevMode(t *testing.T) {
	e := newTestEngine(t, 99)
	_, err := e.RunForced(runContext(t), "first_down", 50)
	if code := integrityCode(t, err); code != ErrDevModeRequired {
		t.Fatalf("code = %s, want %s", code, ErrDevModeRequired)
	}
}

func TestRunForcedReachesTarget(t *testing.T) {
	e := newTestEngine(t, 99, WithDevMode(true))
	ctx := runContext(t)
	ctx.Situation.Distance = 2
	res, err := e.RunForced(ctx, "first_down", DefaultForceAttempts)
	if err != nil {
		t.Fatalf("RunForced: %v", err)
	}
	if res.PlayResult.Yards < ctx.Situation.Distance {
		t.Errorf("forced first down gained %d yards, want at least %d", res.PlayResult.Yards, ctx.Situation.Distance)
	}
	if res.Attempts < 1 || res.Attempts > DefaultForceAttempts {
		t.Errorf("attempts = %d outside [1, %d]", res.Attempts, DefaultForceAttempts)
	}
}

// Forced resolutions must be distinguishable from organic ones even when
// the target lands on the first attempt.
func TestRunForcedAlwaysConditioned(t *testing.T) {
	e := newTestEngine(t, 99, WithDevMode(true))
	ctx := runContext(t)
	res, err := e.RunForced(ctx, "normal_play", DefaultForceAttempts)
	if err != nil {
		t.Fatalf("RunForced: %v", err)
	}
	if !res.Conditioned {
		t.Errorf("forced resolution not marked conditioned (attempts = %d)", res.Attempts)
	}
	want := fmt.Sprintf("%s_TRY%04d", ctx.PlayID, res.Attempts)
	if res.PlayResult.PlayID != want {
		t.Errorf("forced play id = %q, want %q", res.PlayResult.PlayID, want)
	}
	var sawConditioned bool
	for _, event := range res.Narrative {
		if event.EventType == "conditioned_play" {
			sawConditioned = true
		}
	}
	if !sawConditioned {
		t.Errorf("forced resolution emitted no conditioned_play narrative event")
	}
}

func TestRunForcedExhaustsAttemptCeiling(t *testing.T) {
	e := newTestEngine(t, 99, WithDevMode(true))
	_, err := e.RunForced(runContext(t), "unreachable_event", 25)
	if code := integrityCode(t, err); code != ErrForceOutcome {
		t.Fatalf("code = %s, want %s", code, ErrForceOutcome)
	}
}

func TestNarrativeEventsPublished(t *testing.T) {
	bus := events.NewBus()
	e := newTestEngine(t, 99, WithSink(bus))
	if _, err := e.RunSnap(runContext(t)); err != nil {
		t.Fatalf("RunSnap: %v", err)
	}
	if bus.EmittedCount(resolverScope) == 0 {
		t.Errorf("no narrative events reached the sink")
	}
}

func TestPostureBuckets(t *testing.T) {
	cases := []struct {
		name      string
		situation snap.Situation
		want      string
	}{
		{"open_field", snap.Situation{Down: 1, Distance: 10, YardLine: 35}, "normal"},
		{"short", snap.Situation{Down: 3, Distance: 1, YardLine: 50}, "short_yardage"},
		{"third_long", snap.Situation{Down: 3, Distance: 9, YardLine: 40}, "third_and_long"},
		{"fg_range", snap.Situation{Down: 4, Distance: 6, YardLine: 70}, "field_goal_try"},
		{"fourth_long", snap.Situation{Down: 4, Distance: 8, YardLine: 40}, "fourth_and_long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Posture(tc.situation); got != tc.want {
				t.Errorf("Posture = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPolicyCoachCallsFromPosture(t *testing.T) {
	e := newTestEngine(t, 99)
	coach, err := NewPolicyCoach(e.Catalog(), "balanced_default")
	if err != nil {
		t.Fatalf("NewPolicyCoach: %v", err)
	}
	source := rng.NewSeeded(7)
	entry, err := coach.CallPlay(snap.Situation{Down: 1, Distance: 10, YardLine: 35}, source)
	if err != nil {
		t.Fatalf("CallPlay: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("CallPlay returned empty entry")
	}

	again, err := coach.CallPlay(snap.Situation{Down: 1, Distance: 10, YardLine: 35}, rng.NewSeeded(7))
	if err != nil {
		t.Fatalf("CallPlay replay: %v", err)
	}
	if again.ID != entry.ID {
		t.Errorf("identical sources picked %s then %s", entry.ID, again.ID)
	}
}

func TestScriptedCoachReplaysSheet(t *testing.T) {
	e := newTestEngine(t, 99)
	coach := &ScriptedCoach{Catalog: e.Catalog(), Sheet: []string{"pb_inside_zone", "pb_mesh"}}
	situation := snap.Situation{Down: 1, Distance: 10, YardLine: 35}

	for _, want := range []string{"pb_inside_zone", "pb_mesh"} {
		entry, err := coach.CallPlay(situation, rng.NewSeeded(1))
		if err != nil {
			t.Fatalf("CallPlay: %v", err)
		}
		if entry.ID != want {
			t.Errorf("CallPlay = %s, want %s", entry.ID, want)
		}
	}
	if _, err := coach.CallPlay(situation, rng.NewSeeded(1)); err == nil {
		t.Fatalf("expected error after call sheet is exhausted")
	}
}
