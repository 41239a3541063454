package catalog

// Default trait-influence data pack. The weights and sensitivities are
// tuned constants carried as data; changing them changes game feel but
// not the structural contracts the engine enforces.

func family(name string, off, def map[string]float64, fatigue, wear float64, ctx map[string]float64) FamilyProfile {
	if ctx == nil {
		ctx = map[string]float64{}
	}
	return FamilyProfile{
		Family:             name,
		OffenseWeights:     off,
		DefenseWeights:     def,
		FatigueSensitivity: fatigue,
		WearSensitivity:    wear,
		ContextModifiers:   ctx,
	}
}

func laneCreation() FamilyProfile {
	return family("lane_creation",
		map[string]float64{"run_block_drive": 0.4, "run_block_positioning": 0.3, "combo_coordination": 0.3},
		map[string]float64{"block_shed": 0.4, "gap_integrity": 0.35, "stack_shed": 0.25},
		0.25, 0.15,
		map[string]float64{"short_yardage_bonus": 0.05})
}

func fitIntegrity() FamilyProfile {
	return family("fit_integrity",
		map[string]float64{"vision": 0.4, "run_block_positioning": 0.3, "balance": 0.3},
		map[string]float64{"run_fit_iq": 0.4, "gap_integrity": 0.3, "recognition": 0.3},
		0.2, 0.15, nil)
}

func tackleFinish() FamilyProfile {
	return family("tackle_finish",
		map[string]float64{"balance": 0.35, "strength": 0.3, "yac_vision": 0.35},
		map[string]float64{"tackle_form": 0.4, "tackle_power": 0.35, "closing_speed": 0.25},
		0.3, 0.2,
		map[string]float64{"goal_line_bonus": 0.04})
}

func ballSecurity() FamilyProfile {
	return family("ball_security",
		map[string]float64{"ball_security": 0.6, "awareness": 0.2, "strength": 0.2},
		map[string]float64{"hand_fighting": 0.4, "tackle_power": 0.3, "anticipation": 0.3},
		0.2, 0.25, nil)
}

func pressureEmergence() FamilyProfile {
	return family("pressure_emergence",
		map[string]float64{"pass_set": 0.3, "anchor": 0.25, "mirror_skill": 0.25, "pocket_sense": 0.2},
		map[string]float64{"get_off": 0.35, "hand_fighting": 0.3, "rush_plan_diversity": 0.35},
		0.3, 0.2,
		map[string]float64{"long_yardage_bonus": 0.05})
}

func separationWindow() FamilyProfile {
	return family("separation_window",
		map[string]float64{"route_fidelity": 0.35, "release_quality": 0.3, "burst": 0.35},
		map[string]float64{"man_footwork": 0.3, "route_match_skill": 0.35, "transition_speed": 0.35},
		0.25, 0.15, nil)
}

func decisionRisk() FamilyProfile {
	return family("decision_risk",
		map[string]float64{"decision_quality": 0.4, "processing_speed": 0.3, "blitz_identification": 0.3},
		map[string]float64{"zone_awareness": 0.4, "anticipation": 0.3, "communication_secondary": 0.3},
		0.15, 0.1,
		map[string]float64{"trailing_bonus": 0.03})
}

func catchPointContest() FamilyProfile {
	return family("catch_point_contest",
		map[string]float64{"hands": 0.35, "contested_catch": 0.35, "catch_radius": 0.3},
		map[string]float64{"ball_skills_defense": 0.4, "leverage_management": 0.3, "recovery_speed": 0.3},
		0.2, 0.15,
		map[string]float64{"redzone_bonus": 0.03})
}

func yacContinuation() FamilyProfile {
	return family("yac_continuation",
		map[string]float64{"yac_vision": 0.4, "agility": 0.3, "balance": 0.3},
		map[string]float64{"closing_speed": 0.35, "tackle_form": 0.35, "pursuit_angles": 0.3},
		0.3, 0.2, nil)
}

func kickQuality() FamilyProfile {
	return family("kick_quality",
		map[string]float64{"kick_power": 0.4, "kick_accuracy": 0.4, "kick_composure": 0.2},
		map[string]float64{"get_off": 0.4, "closing_speed": 0.3, "anticipation": 0.3},
		0.1, 0.1, nil)
}

func blockPressure() FamilyProfile {
	return family("block_pressure",
		map[string]float64{"anchor": 0.35, "hand_placement": 0.35, "pass_set": 0.3},
		map[string]float64{"get_off": 0.4, "hand_fighting": 0.3, "block_shed": 0.3},
		0.15, 0.1, nil)
}

func coverageLaneIntegrity() FamilyProfile {
	return family("coverage_lane_integrity",
		map[string]float64{"pursuit_angles": 0.35, "discipline": 0.35, "top_speed": 0.3},
		map[string]float64{"screen_blocking": 0.3, "awareness": 0.35, "lateral_quickness": 0.35},
		0.3, 0.2, nil)
}

func returnVisionConvergence() FamilyProfile {
	return family("return_vision_convergence",
		map[string]float64{"pursuit_angles": 0.4, "tackle_form": 0.3, "discipline": 0.3},
		map[string]float64{"vision": 0.35, "return_elusiveness": 0.35, "burst": 0.3},
		0.3, 0.2, nil)
}

func defaultInfluences() []Influence {
	return []Influence{
		{
			ID:       "run",
			Families: []FamilyProfile{laneCreation(), fitIntegrity(), tackleFinish(), ballSecurity()},
			Outcome:  OutcomeProfile{NoiseScale: 1.0, ExplosiveThreshold: 12, TurnoverScale: 0.05, ScoreScale: 1.0, ClockDeltaMin: 28, ClockDeltaMax: 40},
		},
		{
			ID:       "pass",
			Families: []FamilyProfile{pressureEmergence(), separationWindow(), decisionRisk(), catchPointContest(), yacContinuation(), ballSecurity()},
			Outcome:  OutcomeProfile{NoiseScale: 1.0, ExplosiveThreshold: 16, TurnoverScale: 0.08, ScoreScale: 1.0, ClockDeltaMin: 15, ClockDeltaMax: 38},
		},
		{
			ID:       "punt",
			Families: []FamilyProfile{kickQuality(), blockPressure(), coverageLaneIntegrity(), returnVisionConvergence()},
			Outcome:  OutcomeProfile{NoiseScale: 0.8, ExplosiveThreshold: 20, TurnoverScale: 0.01, ScoreScale: 0.5, ClockDeltaMin: 10, ClockDeltaMax: 16},
		},
		{
			ID:       "kickoff",
			Families: []FamilyProfile{kickQuality(), blockPressure(), coverageLaneIntegrity(), returnVisionConvergence()},
			Outcome:  OutcomeProfile{NoiseScale: 0.8, ExplosiveThreshold: 25, TurnoverScale: 0.01, ScoreScale: 0.5, ClockDeltaMin: 8, ClockDeltaMax: 14},
		},
		{
			ID:       "field_goal",
			Families: []FamilyProfile{kickQuality(), blockPressure()},
			Outcome:  OutcomeProfile{NoiseScale: 0.3, ExplosiveThreshold: 0, TurnoverScale: 0.005, ScoreScale: 1.0, ClockDeltaMin: 4, ClockDeltaMax: 7},
		},
		{
			ID:       "extra_point",
			Families: []FamilyProfile{kickQuality(), blockPressure()},
			Outcome:  OutcomeProfile{NoiseScale: 0.2, ExplosiveThreshold: 0, TurnoverScale: 0.002, ScoreScale: 1.0, ClockDeltaMin: 1, ClockDeltaMax: 3},
		},
		{
			ID:       "two_point",
			Families: []FamilyProfile{pressureEmergence(), separationWindow(), decisionRisk(), catchPointContest(), tackleFinish(), ballSecurity()},
			Outcome:  OutcomeProfile{NoiseScale: 1.0, ExplosiveThreshold: 0, TurnoverScale: 0.08, ScoreScale: 1.0, ClockDeltaMin: 4, ClockDeltaMax: 8},
		},
	}
}
