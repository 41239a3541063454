package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gridiron/internal/catalog"
	"gridiron/internal/contest"
	"gridiron/internal/events"
	"gridiron/internal/forensic"
	"gridiron/internal/matchup"
	"gridiron/internal/rng"
	"gridiron/internal/snap"
)

const resolverScope = "snap_resolver"

// Integrity error codes the resolver can raise. Each marks a condition
// the engine must never produce on valid input.
const (
	ErrInsufficientParticipants = "INSUFFICIENT_PARTICIPANTS"
	ErrInvalidTeamContext       = "INVALID_TEAM_CONTEXT"
	ErrPreSimValidationFailed   = "PRE_SIM_VALIDATION_FAILED"
	ErrMatchupCompileFailed     = "MATCHUP_COMPILE_FAILED"
	ErrContestEvalFailed        = "CONTEST_EVAL_FAILED"
	ErrWeightClosureViolation   = "WEIGHT_CLOSURE_VIOLATION"
)

// repStep is one entry of a play type's fixed rep sequence.
type repStep struct {
	repType string
	phase   string
}

var repSequences = map[snap.PlayType][]repStep{
	snap.PlayRun: {
		{"snap_exchange", snap.PhasePreSnap},
		{"run_block", snap.PhaseEarly},
		{"second_level_fit", snap.PhaseEngagement},
		{"finish", snap.PhaseTerminal},
	},
	snap.PlayPass: {
		{"release", snap.PhaseEarly},
		{"coverage", snap.PhaseEngagement},
		{"pass_pro", snap.PhaseEngagement},
		{"read", snap.PhaseDecision},
		{"contest", snap.PhaseTerminal},
	},
	snap.PlayTwoPoint: {
		{"release", snap.PhaseEarly},
		{"coverage", snap.PhaseEngagement},
		{"pass_pro", snap.PhaseEngagement},
		{"read", snap.PhaseDecision},
		{"contest", snap.PhaseTerminal},
	},
	snap.PlayPunt: {
		{"snap_operation", snap.PhasePreSnap},
		{"kick", snap.PhaseEarly},
		{"coverage_lanes", snap.PhaseEngagement},
		{"return", snap.PhaseTerminal},
	},
	snap.PlayKickoff: {
		{"kick", snap.PhaseEarly},
		{"coverage_lanes", snap.PhaseEngagement},
		{"return_setup", snap.PhaseDecision},
		{"return", snap.PhaseTerminal},
	},
	snap.PlayFieldGoal: {
		{"snap_operation", snap.PhasePreSnap},
		{"hold", snap.PhaseEarly},
		{"block_attempt", snap.PhaseEngagement},
		{"kick", snap.PhaseDecision},
	},
	snap.PlayExtraPoint: {
		{"snap_operation", snap.PhasePreSnap},
		{"hold", snap.PhaseEarly},
		{"block_attempt", snap.PhaseEngagement},
		{"kick", snap.PhaseDecision},
	},
}

// familyPhases binds each contest family to the phase it is scored in.
var familyPhases = map[string]string{
	"lane_creation":             snap.PhaseEarly,
	"fit_integrity":             snap.PhaseEngagement,
	"tackle_finish":             snap.PhaseTerminal,
	"ball_security":             snap.PhaseTerminal,
	"pressure_emergence":        snap.PhaseEngagement,
	"separation_window":         snap.PhaseEarly,
	"decision_risk":             snap.PhaseDecision,
	"catch_point_contest":       snap.PhaseTerminal,
	"yac_continuation":          snap.PhaseAftermath,
	"kick_quality":              snap.PhaseEarly,
	"block_pressure":            snap.PhaseEngagement,
	"coverage_lane_integrity":   snap.PhaseDecision,
	"return_vision_convergence": snap.PhaseTerminal,
}

// Responsibility split for the trailing multi-actor rep: two offense
// actors and one defense actor.
var multiActorWeights = []float64{0.45, 0.25, 0.30}

// resolveState carries the intermediate products of one resolution.
type resolveState struct {
	ctx      snap.Context
	entry    catalog.PlaybookEntry
	template catalog.AssignmentTemplate
	outcome  catalog.OutcomeProfile
	offense  []snap.ActorRef
	defense  []snap.ActorRef
	offTeam  string
	defTeam  string
	scores   map[string]float64
	contests []snap.ContestResolution
	graph    snap.MatchupGraph
	ledger   []snap.RepLedgerEntry
}

func (e *Engine) resolve(ctx snap.Context, conditioned bool, attempt int) (*snap.Resolution, error) {
	if len(ctx.Participants) < 2 {
		return nil, forensic.NewError(resolverScope, ErrInsufficientParticipants,
			fmt.Sprintf("snap context carries %d participants, need at least 2", len(ctx.Participants)),
			map[string]any{"participant_count": len(ctx.Participants)},
			map[string]any{"game_id": ctx.GameID, "mode": ctx.Mode},
			map[string]string{"play_id": ctx.PlayID},
			[]string{"pre_sim"})
	}

	if err := e.validator.CheckSnapContext(ctx, e.roster); err != nil {
		return nil, preSimFailure(ctx, err)
	}
	if err := e.validator.CheckPlayCall(ctx.Intent); err != nil {
		return nil, preSimFailure(ctx, err)
	}

	state := &resolveState{ctx: ctx}
	if err := e.splitTeams(state); err != nil {
		return nil, err
	}

	entry, err := e.catalog.ResolveEntryForIntent(ctx.Intent)
	if err != nil {
		return nil, preSimFailure(ctx, err)
	}
	state.entry = entry
	template, err := e.catalog.ResolveTemplate(entry.AssignmentTemplateID)
	if err != nil {
		return nil, preSimFailure(ctx, err)
	}
	state.template = template
	influence, err := e.catalog.ResolveInfluence(string(ctx.Intent.PlayType))
	if err != nil {
		return nil, preSimFailure(ctx, err)
	}
	state.outcome = influence.Outcome

	// The physics substream is keyed on game and play only. Mode is
	// deliberately absent from the label so PLAY/SIM/OFFSCREEN replay
	// the exact same draw sequence.
	root := rng.NewSeeded(e.seed)
	phys := root.Spawn(fmt.Sprintf("%s:%s", ctx.GameID, ctx.PlayID))

	if err := e.compileMatchups(state); err != nil {
		return nil, err
	}
	if err := e.runContests(state, influence); err != nil {
		return nil, err
	}
	if err := e.buildLedger(state); err != nil {
		return nil, err
	}

	penalties := e.evaluatePenalties(state, phys)
	result, terminal, err := e.drawOutcome(state, phys, penalties)
	if err != nil {
		return nil, err
	}

	chain, err := e.buildCausality(state, terminal)
	if err != nil {
		return nil, err
	}

	injuries, err := e.injuries.Evaluate(ctx.PlayID, state.ledger, state.contests, ctx.Traits, root)
	if err != nil {
		return nil, err
	}

	narrative := []events.Narrative{
		events.NewNarrative(resolverScope, "snap_resolved",
			actorIDs(ctx.Participants),
			[]string{fmt.Sprintf("terminal_event=%s", terminal), fmt.Sprintf("yards=%d", result.Yards)},
			[]string{"play:" + ctx.PlayID, "graph:" + state.graph.GraphID},
			"info"),
	}
	if conditioned {
		narrative = append(narrative, events.NewNarrative(resolverScope, "conditioned_play",
			nil,
			[]string{fmt.Sprintf("attempt=%d", attempt)},
			[]string{"play:" + ctx.PlayID},
			"warning"))
	}
	for _, event := range narrative {
		e.sink.Publish(event)
	}

	return &snap.Resolution{
		PlayResult:  result,
		Graph:       state.graph,
		RepLedger:   state.ledger,
		Causality:   chain,
		Contests:    state.contests,
		Narrative:   narrative,
		Injuries:    injuries,
		Conditioned: conditioned,
		Attempts:    attempt,
	}, nil
}

func preSimFailure(ctx snap.Context, err error) error {
	return forensic.NewError(resolverScope, ErrPreSimValidationFailed,
		err.Error(),
		map[string]any{"intent": ctx.Intent},
		map[string]any{"game_id": ctx.GameID, "mode": ctx.Mode},
		map[string]string{"play_id": ctx.PlayID},
		[]string{"pre_sim"})
}

// splitTeams infers offense and defense from participant team ids and
// the possession team.
func (e *Engine) splitTeams(state *resolveState) error {
	teams := make(map[string][]snap.ActorRef)
	for _, ref := range state.ctx.Participants {
		teams[ref.TeamID] = append(teams[ref.TeamID], ref)
	}
	possession := state.ctx.Situation.PossessionTeamID
	if len(teams) != 2 || teams[possession] == nil {
		return forensic.NewError(resolverScope, ErrInvalidTeamContext,
			fmt.Sprintf("possession team %q must be one of exactly 2 participant teams, got %d", possession, len(teams)),
			map[string]any{"team_count": len(teams)},
			map[string]any{"possession_team_id": possession},
			map[string]string{"play_id": state.ctx.PlayID},
			[]string{"team_inference"})
	}
	state.offTeam = possession
	state.offense = teams[possession]
	for teamID, refs := range teams {
		if teamID != possession {
			state.defTeam = teamID
			state.defense = refs
		}
	}
	return nil
}

func (e *Engine) compileMatchups(state *resolveState) error {
	graph, err := matchup.Compile(state.ctx.PlayID, snap.PhaseEngagement, state.template, state.offense, state.defense)
	if err != nil {
		return forensic.NewError(resolverScope, ErrMatchupCompileFailed,
			err.Error(),
			map[string]any{"template_id": state.template.ID},
			map[string]any{"play_type": state.ctx.Intent.PlayType},
			map[string]string{"play_id": state.ctx.PlayID},
			[]string{"matchup_compile"})
	}
	state.graph = graph
	return nil
}

func (e *Engine) runContests(state *resolveState, influence catalog.Influence) error {
	playType := state.ctx.Intent.PlayType
	target := 4
	if playType == snap.PlayFieldGoal || playType == snap.PlayExtraPoint {
		target = 3
	}

	state.scores = make(map[string]float64)
	for idx, family := range contest.RequiredFamilies(playType) {
		profile, ok := influence.FamilyByName(family)
		if !ok {
			return contestFailure(state, family, fmt.Errorf("influence profile %q has no family %q", influence.ID, family))
		}
		phase := familyPhases[family]
		offIDs, err := contest.SelectActors(family, "offense", state.offense, target)
		if err != nil {
			return contestFailure(state, family, err)
		}
		defIDs, err := contest.SelectActors(family, "defense", state.defense, target)
		if err != nil {
			return contestFailure(state, family, err)
		}
		resolution, err := contest.Evaluator{}.Evaluate(contest.Input{
			ContestID:       fmt.Sprintf("%s:%s:%s:%02d", state.ctx.PlayID, phase, family, idx),
			PlayID:          state.ctx.PlayID,
			PlayType:        playType,
			Phase:           phase,
			Family:          family,
			OffenseActorIDs: offIDs,
			DefenseActorIDs: defIDs,
			Profile:         profile,
			Situation:       state.ctx.Situation,
			States:          state.ctx.States,
			Traits:          state.ctx.Traits,
		})
		if err != nil {
			return contestFailure(state, family, err)
		}
		state.contests = append(state.contests, resolution)
		state.scores[family] = resolution.Score
	}
	return nil
}

func contestFailure(state *resolveState, family string, err error) error {
	return forensic.NewError(resolverScope, ErrContestEvalFailed,
		err.Error(),
		map[string]any{"family": family},
		map[string]any{"play_type": state.ctx.Intent.PlayType},
		map[string]string{"play_id": state.ctx.PlayID},
		[]string{"contest_evaluation"})
}

// buildLedger produces the fixed rep sequence for the play type plus
// the trailing multi-actor rep, and validates every entry's closure.
func (e *Engine) buildLedger(state *resolveState) error {
	off := sortedRefs(state.offense)
	def := sortedRefs(state.defense)
	steps := repSequences[state.ctx.Intent.PlayType]
	families := contest.RequiredFamilies(state.ctx.Intent.PlayType)

	for i, step := range steps {
		actors := make([]snap.RepActor, 0, 5)
		weights := make(map[string]float64, 5)
		offTags := []string{"primary", "support", "support"}
		for j := 0; j < 3; j++ {
			ref := off[(i*3+j)%len(off)]
			actors = append(actors, snap.RepActor{
				ActorID: ref.ActorID, TeamID: ref.TeamID, Role: ref.Role, AssignmentTag: offTags[j],
			})
			weights[ref.ActorID] = 0.2
		}
		for j := 0; j < 2; j++ {
			ref := def[(i*2+j)%len(def)]
			actors = append(actors, snap.RepActor{
				ActorID: ref.ActorID, TeamID: ref.TeamID, Role: ref.Role, AssignmentTag: "counter",
			})
			weights[ref.ActorID] = 0.2
		}

		family := families[i%len(families)]
		outcome := "lost"
		if state.scores[family] >= 0.5 {
			outcome = "won"
		}
		entry := snap.RepLedgerEntry{
			RepID:                 fmt.Sprintf("%s:rep:%02d", state.ctx.PlayID, i),
			PlayID:                state.ctx.PlayID,
			Phase:                 step.phase,
			RepType:               step.repType,
			Actors:                actors,
			AssignmentTags:        []string{state.template.DefaultTechnique},
			OutcomeTags:           []string{family + ":" + outcome},
			ResponsibilityWeights: weights,
			ContextTags:           []string{"play_type:" + string(state.ctx.Intent.PlayType)},
		}
		if err := entry.Validate(); err != nil {
			return closureFailure(state, entry.RepID, err)
		}
		state.ledger = append(state.ledger, entry)
	}

	multi := snap.RepLedgerEntry{
		RepID:   fmt.Sprintf("%s:rep:%02d", state.ctx.PlayID, len(steps)),
		PlayID:  state.ctx.PlayID,
		Phase:   snap.PhaseAftermath,
		RepType: snap.RepMultiActor,
		Actors: []snap.RepActor{
			{ActorID: off[0].ActorID, TeamID: off[0].TeamID, Role: off[0].Role, AssignmentTag: "lead"},
			{ActorID: off[1].ActorID, TeamID: off[1].TeamID, Role: off[1].Role, AssignmentTag: "assist"},
			{ActorID: def[0].ActorID, TeamID: def[0].TeamID, Role: def[0].Role, AssignmentTag: "finish"},
		},
		AssignmentTags: []string{"collision"},
		OutcomeTags:    []string{"pile"},
		ResponsibilityWeights: map[string]float64{
			off[0].ActorID: multiActorWeights[0],
			off[1].ActorID: multiActorWeights[1],
			def[0].ActorID: multiActorWeights[2],
		},
		ContextTags: microGroupTags(state.graph),
	}
	if err := multi.Validate(); err != nil {
		return closureFailure(state, multi.RepID, err)
	}
	state.ledger = append(state.ledger, multi)
	return nil
}

func closureFailure(state *resolveState, repID string, err error) error {
	return forensic.NewError(resolverScope, ErrWeightClosureViolation,
		err.Error(),
		map[string]any{"rep_id": repID},
		map[string]any{"play_type": state.ctx.Intent.PlayType},
		map[string]string{"play_id": state.ctx.PlayID},
		[]string{"rep_ledger"})
}

// microGroupTags collects the distinct cooperative tags the matchup
// compiler produced, in stable order.
func microGroupTags(graph snap.MatchupGraph) []string {
	seen := make(map[string]bool)
	for _, edge := range graph.Edges {
		for _, tag := range edge.ContextTags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// evaluatePenalties draws penalties from the average discipline risk.
// Pass-family plays risk defensive pass interference; run and punt
// plays risk offensive holding at a higher cutoff.
func (e *Engine) evaluatePenalties(state *resolveState, phys rng.Source) []snap.Penalty {
	total := 0.0
	for _, ref := range state.ctx.Participants {
		total += state.ctx.States[ref.ActorID].DisciplineRisk
	}
	avgRisk := total / float64(len(state.ctx.Participants))

	var penalties []snap.Penalty
	switch state.ctx.Intent.PlayType {
	case snap.PlayPass, snap.PlayTwoPoint:
		if avgRisk > e.params.DPIRiskThreshold && phys.Float64() < avgRisk {
			penalties = append(penalties, snap.Penalty{
				Code:          "DPI",
				AgainstTeamID: state.defTeam,
				Yards:         e.params.DPIYards,
				Rationale:     fmt.Sprintf("average discipline risk %.2f above %.2f", avgRisk, e.params.DPIRiskThreshold),
			})
		}
	case snap.PlayRun, snap.PlayPunt:
		if avgRisk > e.params.HoldingRiskThreshold && phys.Float64() < avgRisk {
			penalties = append(penalties, snap.Penalty{
				Code:          "HOLD",
				AgainstTeamID: state.offTeam,
				Yards:         e.params.HoldingYards,
				Rationale:     fmt.Sprintf("average discipline risk %.2f above %.2f", avgRisk, e.params.HoldingRiskThreshold),
			})
		}
	}
	return penalties
}

// drawOutcome produces the numeric play result and its terminal event
// label. Every draw comes from the physics substream in fixed order.
func (e *Engine) drawOutcome(state *resolveState, phys rng.Source, penalties []snap.Penalty) (snap.PlayResult, string, error) {
	var yards int
	var turnover bool
	var turnoverType, scoreEvent string
	changesPossession := false

	switch state.ctx.Intent.PlayType {
	case snap.PlayRun:
		yards, turnover, turnoverType = e.drawRun(state, phys)
	case snap.PlayPass:
		yards, turnover, turnoverType = e.drawPass(state, phys)
	case snap.PlayTwoPoint:
		yards, turnover, turnoverType = e.drawPass(state, phys)
		if !turnover && yards >= 2 {
			scoreEvent = "TWO_POINT_GOOD"
		}
	case snap.PlayPunt, snap.PlayKickoff:
		yards, scoreEvent = e.drawKickExchange(state, phys)
		changesPossession = true
	case snap.PlayFieldGoal, snap.PlayExtraPoint:
		yards, scoreEvent = e.drawPlaceKick(state, phys)
		changesPossession = scoreEvent == ""
	default:
		return snap.PlayResult{}, "", preSimFailure(state.ctx, fmt.Errorf("unsupported play type %q", state.ctx.Intent.PlayType))
	}

	for _, penalty := range penalties {
		if penalty.AgainstTeamID == state.defTeam {
			yards += penalty.Yards
		} else {
			yards -= penalty.Yards
		}
	}

	situation := state.ctx.Situation
	if scoreEvent == "" && !turnover && !changesPossession && situation.YardLine+yards >= 100 {
		scoreEvent = "TOUCHDOWN"
		yards = 100 - situation.YardLine
	}

	newSpot := clampInt(situation.YardLine+yards, 0, 100)
	nextDown, nextDistance, nextPossession := adjudicate(situation, yards, turnover, scoreEvent, changesPossession, state)
	clockDelta := phys.IntBetween(state.outcome.ClockDeltaMin, state.outcome.ClockDeltaMax)

	result := snap.PlayResult{
		PlayID:               state.ctx.PlayID,
		Yards:                yards,
		NewSpot:              newSpot,
		Turnover:             turnover,
		TurnoverType:         turnoverType,
		ScoreEvent:           scoreEvent,
		Penalties:            penalties,
		ClockDelta:           clockDelta,
		NextDown:             nextDown,
		NextDistance:         nextDistance,
		NextPossessionTeamID: nextPossession,
	}
	return result, terminalEvent(result, situation), nil
}

func (e *Engine) drawRun(state *resolveState, phys rng.Source) (int, bool, string) {
	lane := state.scores["lane_creation"]
	fit := state.scores["fit_integrity"]
	tackle := state.scores["tackle_finish"]
	security := state.scores["ball_security"]

	raw := (lane+fit-1)*e.params.RunBlockYardScale +
		tackle*e.params.RunFinishYardScale +
		(phys.Float64()-0.5)*e.params.RunNoiseYards*state.outcome.NoiseScale
	yards := int(math.Round(raw))

	if phys.Float64() < state.outcome.TurnoverScale*(1-security)*e.params.FumbleScale {
		return yards, true, "FUMBLE"
	}
	return yards, false, ""
}

func (e *Engine) drawPass(state *resolveState, phys rng.Source) (int, bool, string) {
	protection := state.scores["pressure_emergence"]
	separation := state.scores["separation_window"]
	decision := state.scores["decision_risk"]
	catchPoint := state.scores["catch_point_contest"]
	security := state.scores["ball_security"]

	completion := clampFloat(
		e.params.PassCompletionBase+separation*0.3+decision*0.25+catchPoint*0.2-(1-protection)*0.2,
		e.params.PassCompletionFloor, e.params.PassCompletionCeiling)

	var yards int
	if phys.Float64() < completion {
		raw := (separation+protection-1)*e.params.PassAirYardScale +
			(phys.Float64()-0.5)*e.params.PassNoiseYards*state.outcome.NoiseScale
		yards = int(math.Round(raw))
	} else {
		yards = -phys.IntBetween(0, e.params.SackYardsMax)
	}

	interception := state.outcome.TurnoverScale * (1 - decision) * (1 - catchPoint) *
		(e.params.InterceptionPressure + (1 - protection))
	if phys.Float64() < interception {
		return yards, true, "INT"
	}
	if phys.Float64() < state.outcome.TurnoverScale*(1-security)*e.params.FumbleScale {
		return yards, true, "FUMBLE"
	}
	return yards, false, ""
}

// drawKickExchange resolves punts and kickoffs: gross distance minus the
// return, with a small return-touchdown chance when the return unit
// beats coverage.
func (e *Engine) drawKickExchange(state *resolveState, phys rng.Source) (int, string) {
	kick := state.scores["kick_quality"]
	coverage := state.scores["coverage_lane_integrity"]
	convergence := state.scores["return_vision_convergence"]
	returnAbility := 1 - convergence

	gross := e.params.PuntGrossBase + kick*e.params.PuntGrossScale +
		(phys.Float64()-0.5)*8*state.outcome.NoiseScale
	ret := e.params.ReturnBase + returnAbility*e.params.ReturnAbilityScale -
		coverage*e.params.CoverageScale + (phys.Float64()-0.5)*6*state.outcome.NoiseScale
	if ret < 0 {
		ret = 0
	}

	tdProb := e.params.ReturnTDBase + math.Max(0, (returnAbility-coverage)*e.params.ReturnTDScale)
	if phys.Float64() < tdProb {
		return int(math.Round(gross)), "RETURN_TOUCHDOWN"
	}
	return int(math.Round(gross - ret)), ""
}

func (e *Engine) drawPlaceKick(state *resolveState, phys rng.Source) (int, string) {
	kick := state.scores["kick_quality"]
	protection := state.scores["block_pressure"]
	distance := math.Max(18, float64(100-state.ctx.Situation.YardLine))

	makeProb := clampFloat(
		kick*e.params.KickMakeScale+protection*e.params.KickBlockRelief-distance/e.params.KickDistanceSlope,
		e.params.KickMakeFloor, e.params.KickMakeCeiling)
	if phys.Float64() < makeProb {
		if state.ctx.Intent.PlayType == snap.PlayExtraPoint {
			return 0, "EXTRA_POINT_GOOD"
		}
		return 0, "FIELD_GOAL_GOOD"
	}
	return 0, ""
}

// adjudicate computes the next down, distance, and possession with
// standard down-and-distance logic.
func adjudicate(situation snap.Situation, yards int, turnover bool, scoreEvent string, changesPossession bool, state *resolveState) (int, int, string) {
	if turnover || changesPossession || scoreEvent != "" {
		return 1, 10, state.defTeam
	}
	remaining := situation.Distance - yards
	if remaining <= 0 {
		return 1, 10, state.offTeam
	}
	return minInt(4, situation.Down+1), maxInt(1, remaining), state.offTeam
}

// terminalEvent labels the play for the causality chain, most specific
// condition first.
func terminalEvent(result snap.PlayResult, situation snap.Situation) string {
	switch {
	case result.TurnoverType == "INT":
		return "interception"
	case result.TurnoverType == "FUMBLE":
		return "fumble"
	case result.ScoreEvent != "":
		return strings.ToLower(result.ScoreEvent)
	case result.Yards < 0:
		return "negative_play"
	case result.Yards >= situation.Distance:
		return "first_down"
	default:
		return "normal_play"
	}
}

// Causal descriptions per terminal category, bound in order to the
// first reps of the ledger.
var causalDescriptions = map[string][]string{
	"interception": {
		"coverage baited the throwing window",
		"pressure compressed the decision clock",
		"catch point lost at the break",
	},
	"fumble": {
		"ball exposed through contact",
		"second defender attacked the carry",
		"pile stripped the recovery",
	},
	"normal": {
		"initial leverage set the track",
		"engagement decided the crease",
		"pursuit bounded the finish",
		"terminal contact closed the play",
	},
}

func (e *Engine) buildCausality(state *resolveState, terminal string) (snap.CausalityChain, error) {
	category := "normal"
	if terminal == "interception" || terminal == "fumble" {
		category = terminal
	}
	descriptions := causalDescriptions[category]

	n := len(descriptions)
	if len(state.ledger) < n {
		n = len(state.ledger)
	}
	weights := equalNodeWeights(n)
	nodes := make([]snap.CausalityNode, 0, n)
	for i := 0; i < n; i++ {
		nodes = append(nodes, snap.CausalityNode{
			SourceType:  "rep",
			SourceID:    state.ledger[i].RepID,
			Weight:      weights[i],
			Description: descriptions[i],
		})
	}
	chain := snap.CausalityChain{
		TerminalEvent: terminal,
		PlayID:        state.ctx.PlayID,
		Nodes:         nodes,
	}
	if err := chain.Validate(); err != nil {
		return snap.CausalityChain{}, forensic.NewError(resolverScope, ErrWeightClosureViolation,
			err.Error(),
			map[string]any{"terminal_event": terminal},
			map[string]any{"node_count": len(nodes)},
			map[string]string{"play_id": state.ctx.PlayID},
			[]string{"causality_chain"})
	}
	return chain, nil
}

// equalNodeWeights splits 1.0 evenly at 6-decimal precision, first node
// absorbing the rounding remainder.
func equalNodeWeights(n int) []float64 {
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

func actorIDs(refs []snap.ActorRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ActorID)
	}
	return ids
}

func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
