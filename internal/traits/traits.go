package traits

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Trait value domain. Every trait is required and bounded; no consumer
// may substitute a neutral value for a missing trait.
const (
	MinValue = 1.0
	MaxValue = 99.0
)

// Status marks whether a trait is consumed by the current contest
// families or reserved for a later phase of the play model.
type Status string

const (
	StatusCoreNow       Status = "core_now"
	StatusReservedPhase Status = "reserved_phasal"
)

// Entry describes one trait in the canonical catalog.
type Entry struct {
	Code        string  `json:"code"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Required    bool    `json:"required"`
	Status      Status  `json:"status"`
	Version     string  `json:"version"`
}

type def struct {
	code     string
	category string
	desc     string
}

// CatalogVersion is the trait schema version the engine expects.
const CatalogVersion = "1.0"

var coreDefs = []def{
	{"strength", "athletic", "Functional strength"},
	{"burst", "athletic", "Explosive first-step burst"},
	{"top_speed", "athletic", "Maximum speed"},
	{"acceleration", "athletic", "Acceleration profile"},
	{"agility", "athletic", "Change-of-direction agility"},
	{"balance", "athletic", "Contact and body balance"},
	{"stamina", "athletic", "Sustained effort stamina"},
	{"lateral_quickness", "athletic", "Lateral movement quickness"},
	{"body_control", "movement", "Body control through contact"},
	{"leverage_control", "movement", "Pad-level and leverage control"},
	{"momentum_management", "movement", "Momentum control in transition"},
	{"pursuit_angles", "movement", "Pursuit and tracking angles"},
	{"hip_fluidity", "movement", "Hip fluidity in transition"},
	{"vision", "movement", "Open-field vision"},
	{"awareness", "cognition", "Field awareness"},
	{"processing_speed", "cognition", "Mental processing speed"},
	{"recognition", "cognition", "Pattern and key recognition"},
	{"anticipation", "cognition", "Anticipatory reaction"},
	{"discipline", "cognition", "Discipline and assignment fidelity"},
	{"decision_quality", "cognition", "Decision quality under pressure"},
	{"communication", "cognition", "Communication quality"},
	{"communication_secondary", "cognition", "Coverage communication"},
	{"composure", "cognition", "Composure under stress"},
	{"short_accuracy", "qb", "Short throw placement"},
	{"intermediate_accuracy", "qb", "Intermediate throw placement"},
	{"deep_accuracy", "qb", "Deep throw placement"},
	{"throw_power", "qb", "Throw velocity and power"},
	{"throw_touch", "qb", "Trajectory and touch control"},
	{"release_quickness", "qb", "Release speed"},
	{"pocket_sense", "qb", "Pocket movement and pressure sense"},
	{"timing_precision", "qb", "Timing precision"},
	{"play_action_craft", "qb", "Play-action sell and sequencing"},
	{"blitz_identification", "qb", "Pre/post-snap blitz identification"},
	{"cadence_control", "qb", "Cadence and count manipulation"},
	{"snap_operation", "qb", "Snap exchange and operation integrity"},
	{"scramble_ability", "qb", "Scramble escape ability"},
	{"throw_on_run", "qb", "Accuracy while throwing on the move"},
	{"hands", "ball", "Hands reliability"},
	{"catch_radius", "ball", "Catch radius"},
	{"contested_catch", "ball", "Contested catch skill"},
	{"ball_tracking", "ball", "Ball tracking"},
	{"route_fidelity", "ball", "Route detail fidelity"},
	{"release_quality", "ball", "Release quality"},
	{"yac_vision", "ball", "Vision after catch or contact"},
	{"ball_security", "ball", "Ball security"},
	{"return_elusiveness", "ball", "Elusiveness on returns"},
	{"pass_set", "blocking", "Pass protection set quality"},
	{"hand_placement", "blocking", "Hand placement"},
	{"mirror_skill", "blocking", "Pass-pro mirror skill"},
	{"anchor", "blocking", "Anchor against power"},
	{"recovery_blocking", "blocking", "Recovery ability when initially beaten"},
	{"run_block_drive", "blocking", "Run block drive"},
	{"run_block_positioning", "blocking", "Run block positioning"},
	{"combo_coordination", "blocking", "Combo block coordination"},
	{"screen_blocking", "blocking", "Screen and space blocking"},
	{"get_off", "front7", "Pass rush get-off"},
	{"hand_fighting", "front7", "Hand usage in trench contests"},
	{"rush_plan_diversity", "front7", "Rush plan diversity"},
	{"edge_contain", "front7", "Edge contain discipline"},
	{"block_shed", "front7", "Block shedding"},
	{"gap_integrity", "front7", "Gap integrity"},
	{"stack_shed", "front7", "Stack and shed"},
	{"closing_speed", "front7", "Closing speed"},
	{"tackle_power", "front7", "Tackle power"},
	{"tackle_form", "front7", "Tackle form"},
	{"run_fit_iq", "front7", "Run fit assignment processing"},
	{"man_footwork", "coverage", "Man coverage footwork"},
	{"route_match_skill", "coverage", "Route-matching skill"},
	{"leverage_management", "coverage", "Leverage management"},
	{"transition_speed", "coverage", "Transition speed"},
	{"ball_skills_defense", "coverage", "Defensive ball skills"},
	{"press_technique", "coverage", "Press technique"},
	{"jam_strength", "coverage", "Jam force and redirection strength"},
	{"recovery_speed", "coverage", "Recovery speed in coverage"},
	{"dpi_risk_control", "coverage", "DPI risk control"},
	{"zone_awareness", "coverage", "Zone landmark and pattern awareness"},
	{"kick_power", "special_teams", "Kick distance power"},
	{"kick_accuracy", "special_teams", "Kick directional accuracy"},
	{"hang_time_control", "special_teams", "Kick hang-time control"},
	{"kick_composure", "special_teams", "Composure on kick operations"},
	{"long_snap_accuracy", "special_teams", "Long snap accuracy"},
	{"hold_operation", "special_teams", "Hold placement and operation"},
	{"soft_tissue_risk", "availability", "Soft tissue injury risk"},
	{"contact_injury_risk", "availability", "Contact injury risk"},
	{"re_injury_risk", "availability", "Re-injury risk"},
	{"durability", "availability", "Durability"},
	{"pain_tolerance", "availability", "Pain tolerance"},
	{"recovery_rate", "availability", "Recovery rate"},
	{"conditioning_resilience", "availability", "Late-game conditioning resilience"},
	{"volatility_profile", "availability", "Performance volatility profile"},
}

// Count is the fixed size of the canonical trait vector.
const Count = 90

var reservedCodes = map[string]bool{
	"play_action_craft":  true,
	"cadence_control":    true,
	"snap_operation":     true,
	"jam_strength":       true,
	"volatility_profile": true,
}

func init() {
	seen := make(map[string]bool, len(coreDefs))
	for _, d := range coreDefs {
		if seen[d.code] {
			panic(fmt.Sprintf("duplicate trait code %q", d.code))
		}
		seen[d.code] = true
	}
	if len(coreDefs) != Count {
		panic(fmt.Sprintf("trait catalog defines %d traits, want %d", len(coreDefs), Count))
	}
}

// Catalog returns the canonical trait catalog at the current version.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(coreDefs))
	for _, d := range coreDefs {
		status := StatusCoreNow
		if reservedCodes[d.code] {
			status = StatusReservedPhase
		}
		entries = append(entries, Entry{
			Code:        d.code,
			Category:    d.category,
			Description: d.desc,
			Min:         MinValue,
			Max:         MaxValue,
			Required:    true,
			Status:      status,
			Version:     CatalogVersion,
		})
	}
	return entries
}

// RequiredCodes returns every required trait code in catalog order.
func RequiredCodes() []string {
	codes := make([]string, 0, len(coreDefs))
	for _, d := range coreDefs {
		codes = append(codes, d.code)
	}
	return codes
}

// Truth holds the hidden generation parameters a trait vector is derived
// from. Values are in [0, 1].
type Truth struct {
	Overall              float64
	Volatility           float64
	InjurySusceptibility float64
}

// Generate derives a complete trait vector for a player. The derivation
// is a pure function of (player id, position, truth), so regenerating a
// player always yields the same vector.
func Generate(playerID, position string, truth Truth) (map[string]float64, error) {
	vector := make(map[string]float64, Count)
	for _, code := range RequiredCodes() {
		value, err := derive(playerID, position, code, truth)
		if err != nil {
			return nil, err
		}
		vector[code] = value
	}
	return vector, nil
}

func derive(playerID, position, code string, truth Truth) (float64, error) {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", playerID, position, code)))
	jitter := float64(binary.BigEndian.Uint32(digest[:4]))/float64(0xFFFFFFFF)*10.0 - 5.0

	base := truth.Overall*100.0 + jitter
	if len(code) >= 4 && code[len(code)-4:] == "risk" {
		base = (100.0 - truth.InjurySusceptibility*100.0) + jitter
	}
	if code == "volatility_profile" {
		base = 100.0 - truth.Volatility*100.0 + jitter
	}

	value := round3(base)
	if value < MinValue || value > MaxValue {
		return 0, fmt.Errorf("derived value %.3f out of domain for trait %q on player %q", value, code, playerID)
	}
	return value, nil
}

func round3(v float64) float64 {
	return float64(int64(v*1000+sign(v)*0.5)) / 1000
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
