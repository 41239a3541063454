package snap

import (
	"fmt"
	"math"
)

// PlayType enumerates the snap families the engine can resolve.
type PlayType string

const (
	PlayRun        PlayType = "run"
	PlayPass       PlayType = "pass"
	PlayPunt       PlayType = "punt"
	PlayKickoff    PlayType = "kickoff"
	PlayFieldGoal  PlayType = "field_goal"
	PlayExtraPoint PlayType = "extra_point"
	PlayTwoPoint   PlayType = "two_point"
)

// PlayTypes returns every supported play type in stable order.
func PlayTypes() []PlayType {
	return []PlayType{PlayRun, PlayPass, PlayPunt, PlayKickoff, PlayFieldGoal, PlayExtraPoint, PlayTwoPoint}
}

// ParsePlayType validates a raw play type string.
func ParsePlayType(raw string) (PlayType, error) {
	for _, pt := range PlayTypes() {
		if string(pt) == raw {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unsupported play type %q", raw)
}

// Mode selects the execution surface. Physics must be identical across
// modes for identical seeded input; the mode only changes presentation.
type Mode string

const (
	ModePlay      Mode = "play"
	ModeSim       Mode = "sim"
	ModeOffscreen Mode = "offscreen"
)

// Phase names, in the fixed order a snap advances through them.
const (
	PhasePreSnap    = "pre_snap"
	PhaseEarly      = "early"
	PhaseEngagement = "engagement"
	PhaseDecision   = "decision"
	PhaseTerminal   = "terminal"
	PhaseAftermath  = "aftermath"
)

// Phases returns the snap phase progression in order.
func Phases() []string {
	return []string{PhasePreSnap, PhaseEarly, PhaseEngagement, PhaseDecision, PhaseTerminal, PhaseAftermath}
}

// WeightTolerance is the closure tolerance on responsibility and
// causality weight sums.
const WeightTolerance = 0.001

// RepMultiActor is the rep type of the trailing multi-actor collision
// rep appended to every ledger. Injury evaluation treats it as a fixed
// high-intensity collision.
const RepMultiActor = "multi_actor_collision"

// Situation is the scoreboard and field state at the snap.
type Situation struct {
	Down             int    `json:"down"`
	Distance         int    `json:"distance"`
	YardLine         int    `json:"yard_line"`
	Quarter          int    `json:"quarter"`
	ClockSeconds     int    `json:"clock_seconds"`
	ScoreDiff        int    `json:"score_diff"`
	TimeoutsOffense  int    `json:"timeouts_offense"`
	TimeoutsDefense  int    `json:"timeouts_defense"`
	PossessionTeamID string `json:"possession_team_id"`
}

// ActorRef identifies one of the 22 snap participants.
type ActorRef struct {
	ActorID string `json:"actor_id"`
	TeamID  string `json:"team_id"`
	Role    string `json:"role"`
}

// ActorState is the transient per-actor condition entering the snap.
type ActorState struct {
	Fatigue          float64 `json:"fatigue"`
	AcuteWear        float64 `json:"acute_wear"`
	Confidence       float64 `json:"confidence"`
	InjuryLimitation float64 `json:"injury_limitation"`
	DisciplineRisk   float64 `json:"discipline_risk"`
}

// Intent is the parameterized play call for the snap.
type Intent struct {
	PlayType         PlayType `json:"play_type"`
	Personnel        string   `json:"personnel"`
	Formation        string   `json:"formation"`
	OffensiveConcept string   `json:"offensive_concept"`
	DefensiveConcept string   `json:"defensive_concept"`
	PlaybookEntryID  string   `json:"playbook_entry_id,omitempty"`
	Tempo            string   `json:"tempo"`
	Aggression       string   `json:"aggression"`
}

// Context is the immutable per-snap input. Every downstream entity is
// constructed fresh from it and discarded once handed to the caller.
type Context struct {
	GameID       string                        `json:"game_id"`
	PlayID       string                        `json:"play_id"`
	Mode         Mode                          `json:"mode"`
	Situation    Situation                     `json:"situation"`
	Participants []ActorRef                    `json:"participants"`
	States       map[string]ActorState         `json:"states"`
	Traits       map[string]map[string]float64 `json:"traits"`
	Intent       Intent                        `json:"intent"`
	WeatherFlags []string                      `json:"weather_flags,omitempty"`
}

// WithMode returns a copy of the context with only the mode replaced.
func (c Context) WithMode(mode Mode) Context {
	c.Mode = mode
	return c
}

// WithPlayID returns a copy of the context with only the play id replaced.
func (c Context) WithPlayID(playID string) Context {
	c.PlayID = playID
	return c
}

// Penalty is one accepted penalty applied to the play result.
type Penalty struct {
	Code          string `json:"code"`
	AgainstTeamID string `json:"against_team_id"`
	Yards         int    `json:"yards"`
	Rationale     string `json:"rationale"`
}

// PlayResult is the terminal outcome of a snap, consumed by game-session
// orchestration.
type PlayResult struct {
	PlayID               string    `json:"play_id"`
	Yards                int       `json:"yards"`
	NewSpot              int       `json:"new_spot"`
	Turnover             bool      `json:"turnover"`
	TurnoverType         string    `json:"turnover_type,omitempty"`
	ScoreEvent           string    `json:"score_event,omitempty"`
	Penalties            []Penalty `json:"penalties"`
	ClockDelta           int       `json:"clock_delta"`
	NextDown             int       `json:"next_down"`
	NextDistance         int       `json:"next_distance"`
	NextPossessionTeamID string    `json:"next_possession_team_id"`
}

// MatchupEdge binds one offense actor to one defense actor for the snap.
type MatchupEdge struct {
	EdgeID               string   `json:"edge_id"`
	OffenseActorID       string   `json:"offense_actor_id"`
	DefenseActorID       string   `json:"defense_actor_id"`
	OffenseRole          string   `json:"offense_role"`
	DefenseRole          string   `json:"defense_role"`
	Technique            string   `json:"technique"`
	Leverage             string   `json:"leverage"`
	ResponsibilityWeight float64  `json:"responsibility_weight"`
	ContextTags          []string `json:"context_tags"`
}

// MatchupGraph is the 11-edge offense-to-defense pairing for one phase.
type MatchupGraph struct {
	GraphID string        `json:"graph_id"`
	PlayID  string        `json:"play_id"`
	Phase   string        `json:"phase"`
	Edges   []MatchupEdge `json:"edges"`
}

// Validate checks the graph closure invariants: exactly 11 edges with
// responsibility weights summing to 1.0 within tolerance.
func (g MatchupGraph) Validate() error {
	if len(g.Edges) != 11 {
		return fmt.Errorf("matchup graph %s has %d edges, want 11", g.GraphID, len(g.Edges))
	}
	sum := 0.0
	for _, edge := range g.Edges {
		sum += edge.ResponsibilityWeight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("matchup graph %s responsibility weights sum to %.6f, want 1.0", g.GraphID, sum)
	}
	return nil
}

// RepActor records one actor's participation in a rep.
type RepActor struct {
	ActorID       string `json:"actor_id"`
	TeamID        string `json:"team_id"`
	Role          string `json:"role"`
	AssignmentTag string `json:"assignment_tag"`
}

// RepLedgerEntry is one micro-event of the snap.
type RepLedgerEntry struct {
	RepID                 string             `json:"rep_id"`
	PlayID                string             `json:"play_id"`
	Phase                 string             `json:"phase"`
	RepType               string             `json:"rep_type"`
	Actors                []RepActor         `json:"actors"`
	AssignmentTags        []string           `json:"assignment_tags"`
	OutcomeTags           []string           `json:"outcome_tags"`
	ResponsibilityWeights map[string]float64 `json:"responsibility_weights"`
	ContextTags           []string           `json:"context_tags"`
}

// Validate checks the per-entry closure invariant: weights sum to 1.0
// within tolerance and every weighted actor appears in the entry.
func (r RepLedgerEntry) Validate() error {
	if len(r.Actors) == 0 {
		return fmt.Errorf("rep %s has no actors", r.RepID)
	}
	present := make(map[string]bool, len(r.Actors))
	for _, actor := range r.Actors {
		present[actor.ActorID] = true
	}
	sum := 0.0
	for actorID, weight := range r.ResponsibilityWeights {
		if !present[actorID] {
			return fmt.Errorf("rep %s weights unknown actor %q", r.RepID, actorID)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("rep %s responsibility weights sum to %.6f, want 1.0", r.RepID, sum)
	}
	return nil
}

// CausalityNode attributes a share of the terminal event to one rep or
// contest.
type CausalityNode struct {
	SourceType  string  `json:"source_type"`
	SourceID    string  `json:"source_id"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// CausalityChain explains why the play's terminal event occurred.
type CausalityChain struct {
	TerminalEvent string          `json:"terminal_event"`
	PlayID        string          `json:"play_id"`
	Nodes         []CausalityNode `json:"nodes"`
}

// Validate checks the chain closure invariant.
func (c CausalityChain) Validate() error {
	if len(c.Nodes) == 0 {
		return fmt.Errorf("causality chain for %s has no nodes", c.PlayID)
	}
	sum := 0.0
	for _, node := range c.Nodes {
		sum += node.Weight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("causality chain for %s weights sum to %.6f, want 1.0", c.PlayID, sum)
	}
	return nil
}

// ContestResolution is one scored contest bound to a snap phase.
type ContestResolution struct {
	ContestID          string             `json:"contest_id"`
	PlayID             string             `json:"play_id"`
	Phase              string             `json:"phase"`
	Family             string             `json:"family"`
	Score              float64            `json:"score"`
	OffenseScore       float64            `json:"offense_score"`
	DefenseScore       float64            `json:"defense_score"`
	ActorContributions map[string]float64 `json:"actor_contributions"`
	TraitContributions map[string]float64 `json:"trait_contributions"`
	VarianceHint       float64            `json:"variance_hint"`
	Handles            []string           `json:"evidence_handles"`
}
