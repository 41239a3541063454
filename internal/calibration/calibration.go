// Package calibration batch-samples the resolution engine to surface
// aggregate outcome distributions per play type. Sampled contexts are
// synthetic but complete, so every run exercises the full pre-sim
// validation and resolution path.
package calibration

import (
	"fmt"
	"sync"

	"gridiron/internal/engine"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

// Profile describes one sampling batch. A non-nil Tuning rebuilds the
// trait-influence bundle for the batch; see BuildTunedCatalog.
type Profile struct {
	PlayType       snap.PlayType
	Plays          int
	OffenseOverall float64
	DefenseOverall float64
	Tuning         *Tuning
}

// Summary aggregates one batch.
type Summary struct {
	PlayType       snap.PlayType
	Plays          int
	MeanYards      float64
	TurnoverRate   float64
	ScoreRate      float64
	PenaltyRate    float64
	InjuryRate     float64
	TerminalEvents map[string]int
}

type intentSheet struct {
	intent   snap.Intent
	offRoles []string
}

var sheets = map[snap.PlayType]intentSheet{
	snap.PlayRun: {
		intent: snap.Intent{
			PlayType: snap.PlayRun, Personnel: "11", Formation: "singleback",
			OffensiveConcept: "inside_zone", DefensiveConcept: "over_front",
			Tempo: "normal", Aggression: "balanced",
		},
		offRoles: []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"},
	},
	snap.PlayPass: {
		intent: snap.Intent{
			PlayType: snap.PlayPass, Personnel: "11", Formation: "gun_trips",
			OffensiveConcept: "mesh_concept", DefensiveConcept: "cover_three",
			Tempo: "normal", Aggression: "balanced",
		},
		offRoles: []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"},
	},
	snap.PlayTwoPoint: {
		intent: snap.Intent{
			PlayType: snap.PlayTwoPoint, Personnel: "11", Formation: "gun_trips",
			OffensiveConcept: "quick_game", DefensiveConcept: "cover_one_pressure",
			Tempo: "normal", Aggression: "aggressive",
		},
		offRoles: []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"},
	},
	snap.PlayPunt: {
		intent: snap.Intent{
			PlayType: snap.PlayPunt, Personnel: "st_punt", Formation: "punt_spread",
			OffensiveConcept: "punt_directional", DefensiveConcept: "punt_return_wall",
			Tempo: "normal", Aggression: "conservative",
		},
		offRoles: []string{"P", "OL", "OL", "OL", "OL", "OL", "TE", "WR", "WR", "RB", "RB"},
	},
	snap.PlayKickoff: {
		intent: snap.Intent{
			PlayType: snap.PlayKickoff, Personnel: "st_kick", Formation: "kick_standard",
			OffensiveConcept: "kickoff_deep", DefensiveConcept: "kick_return_middle",
			Tempo: "normal", Aggression: "conservative",
		},
		offRoles: []string{"K", "LB", "LB", "LB", "CB", "CB", "S", "S", "WR", "WR", "RB"},
	},
	snap.PlayFieldGoal: {
		intent: snap.Intent{
			PlayType: snap.PlayFieldGoal, Personnel: "st_fg", Formation: "fg_heavy",
			OffensiveConcept: "fg_operation", DefensiveConcept: "fg_block_interior",
			Tempo: "normal", Aggression: "conservative",
		},
		offRoles: []string{"K", "QB", "OL", "OL", "OL", "OL", "OL", "TE", "TE", "WR", "RB"},
	},
	snap.PlayExtraPoint: {
		intent: snap.Intent{
			PlayType: snap.PlayExtraPoint, Personnel: "st_fg", Formation: "fg_heavy",
			OffensiveConcept: "fg_operation", DefensiveConcept: "fg_block_interior",
			Tempo: "normal", Aggression: "conservative",
		},
		offRoles: []string{"K", "QB", "OL", "OL", "OL", "OL", "OL", "TE", "TE", "WR", "RB"},
	},
}

var defenseRoles = []string{"DE", "DE", "DT", "DT", "LB", "LB", "LB", "CB", "CB", "S", "S"}

// BuildContext assembles a synthetic but fully valid snap context for
// the play type. Trait generation keys on the derived actor ids, so the
// same arguments always produce the same context.
func BuildContext(playType snap.PlayType, gameID, playID string, offenseOverall, defenseOverall float64) (snap.Context, error) {
	sheet, ok := sheets[playType]
	if !ok {
		return snap.Context{}, fmt.Errorf("no sample sheet for play type %q", playType)
	}

	situation := snap.Situation{
		Down: 1, Distance: 10, YardLine: 35, Quarter: 2,
		ClockSeconds: 600, PossessionTeamID: "home",
		TimeoutsOffense: 3, TimeoutsDefense: 3,
	}
	switch playType {
	case snap.PlayFieldGoal:
		situation.Down, situation.Distance, situation.YardLine = 4, 7, 70
	case snap.PlayExtraPoint, snap.PlayTwoPoint:
		situation.Down, situation.Distance, situation.YardLine = 1, 2, 98
	case snap.PlayPunt:
		situation.Down, situation.Distance = 4, 8
	}

	ctx := snap.Context{
		GameID:    gameID,
		PlayID:    playID,
		Mode:      snap.ModeOffscreen,
		Situation: situation,
		Intent:    sheet.intent,
		States:    make(map[string]snap.ActorState),
		Traits:    make(map[string]map[string]float64),
	}

	add := func(team, role string, i int, overall float64) error {
		id := fmt.Sprintf("%s-%s-%d", team, role, i)
		ctx.Participants = append(ctx.Participants, snap.ActorRef{ActorID: id, TeamID: team, Role: role})
		ctx.States[id] = snap.ActorState{Fatigue: 0.15, DisciplineRisk: 0.12}
		vector, err := traits.Generate(id, role, traits.Truth{
			Overall: overall, Volatility: 0.3, InjurySusceptibility: 0.3,
		})
		if err != nil {
			return fmt.Errorf("generating traits for %s: %w", id, err)
		}
		ctx.Traits[id] = vector
		return nil
	}
	for i, role := range sheet.offRoles {
		if err := add("home", role, i, offenseOverall); err != nil {
			return snap.Context{}, err
		}
	}
	for i, role := range defenseRoles {
		if err := add("away", role, i, defenseOverall); err != nil {
			return snap.Context{}, err
		}
	}
	return ctx, nil
}

// Sampler runs batches against an engine with a fixed worker pool.
type Sampler struct {
	Engine  *engine.Engine
	Workers int
}

// Run samples profile.Plays snaps. Results are deterministic for a
// given engine seed and profile: each play gets its own derived play
// id, and the aggregate counters commute across worker interleavings.
func (s *Sampler) Run(profile Profile) (Summary, error) {
	if profile.Plays < 1 {
		return Summary{}, fmt.Errorf("profile needs at least 1 play, got %d", profile.Plays)
	}
	workers := s.Workers
	if workers < 1 {
		workers = 4
	}
	if workers > profile.Plays {
		workers = profile.Plays
	}

	eng := s.Engine
	if profile.Tuning != nil {
		cat, err := BuildTunedCatalog(profile.Tuning)
		if err != nil {
			return Summary{}, fmt.Errorf("building tuned catalog: %w", err)
		}
		eng, err = engine.New(cat, s.Engine.Seed())
		if err != nil {
			return Summary{}, fmt.Errorf("building tuned engine: %w", err)
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		yards     int
		turnovers int
		scores    int
		penalties int
		injuries  int
		terminals = make(map[string]int)
	)

	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				playID := fmt.Sprintf("cal:%s:%04d", profile.PlayType, n)
				sampleCtx, err := BuildContext(profile.PlayType, "calibration", playID,
					profile.OffenseOverall, profile.DefenseOverall)
				if err == nil {
					var res *snap.Resolution
					res, err = eng.RunSnap(sampleCtx)
					if err == nil {
						mu.Lock()
						yards += res.PlayResult.Yards
						if res.PlayResult.Turnover {
							turnovers++
						}
						if res.PlayResult.ScoreEvent != "" {
							scores++
						}
						if len(res.PlayResult.Penalties) > 0 {
							penalties++
						}
						injuries += len(res.Injuries)
						terminals[res.Causality.TerminalEvent]++
						mu.Unlock()
						continue
					}
				}
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("sampling %s: %w", playID, err)
				}
				mu.Unlock()
			}
		}()
	}
	for n := 0; n < profile.Plays; n++ {
		jobs <- n
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return Summary{}, firstErr
	}

	plays := float64(profile.Plays)
	return Summary{
		PlayType:       profile.PlayType,
		Plays:          profile.Plays,
		MeanYards:      float64(yards) / plays,
		TurnoverRate:   float64(turnovers) / plays,
		ScoreRate:      float64(scores) / plays,
		PenaltyRate:    float64(penalties) / plays,
		InjuryRate:     float64(injuries) / plays,
		TerminalEvents: terminals,
	}, nil
}
