package catalog

import "gridiron/internal/snap"

// ExpectedSchemaVersion is the bundle schema version this engine reads.
const ExpectedSchemaVersion = "1.0"

// Bundle file names inside a resource directory.
const (
	FilePersonnel       = "personnel_packages.json"
	FileFormations      = "formations.json"
	FileConceptsOffense = "concepts_offense.json"
	FileConceptsDefense = "concepts_defense.json"
	FilePolicies        = "coaching_policies.json"
	FileTraitInfluences = "trait_influences.json"
	FilePlaybook        = "playbook_entries.json"
	FileTemplates       = "assignment_templates.json"
)

// BundleFiles lists every bundle file the catalog loads, with the
// manifest resource type each must declare.
var BundleFiles = map[string]string{
	FilePersonnel:       "personnel_package",
	FileFormations:      "formation",
	FileConceptsOffense: "concept_offense",
	FileConceptsDefense: "concept_defense",
	FilePolicies:        "coaching_policy",
	FileTraitInfluences: "trait_influence_profile",
	FilePlaybook:        "playbook_entry",
	FileTemplates:       "assignment_template",
}

// Manifest describes a bundle's identity and integrity.
type Manifest struct {
	ResourceType    string `json:"resource_type"`
	SchemaVersion   string `json:"schema_version"`
	ResourceVersion string `json:"resource_version"`
	GeneratedAt     string `json:"generated_at"`
	Checksum        string `json:"checksum"`
}

// Personnel is one personnel package (e.g. "11": 1 RB, 1 TE, 3 WR).
type Personnel struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	RoleCounts map[string]int `json:"role_counts"`
}

// Formation restricts which personnel packages may align in it.
type Formation struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	AllowedPersonnel []string `json:"allowed_personnel"`
}

// Concept is an offensive or defensive scheme concept with the play
// types it supports.
type Concept struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	PlayTypes []string `json:"play_types"`
}

// Policy is a coaching policy: tuning defaults plus a playbook keyed by
// situational posture.
type Policy struct {
	ID                string              `json:"id"`
	Label             string              `json:"label"`
	Defaults          map[string]float64  `json:"defaults"`
	PlaybookByPosture map[string][]string `json:"playbook_by_posture"`
}

// FamilyProfile holds the per-side trait weights for one contest family.
type FamilyProfile struct {
	Family             string             `json:"family"`
	OffenseWeights     map[string]float64 `json:"offense_weights"`
	DefenseWeights     map[string]float64 `json:"defense_weights"`
	FatigueSensitivity float64            `json:"fatigue_sensitivity"`
	WearSensitivity    float64            `json:"wear_sensitivity"`
	ContextModifiers   map[string]float64 `json:"context_modifiers"`
}

// OutcomeProfile holds the tuned outcome-resolution constants for one
// play type. Values are designed approximations with no documented
// derivation; they are carried as data, never inferred.
type OutcomeProfile struct {
	NoiseScale         float64 `json:"noise_scale"`
	ExplosiveThreshold int     `json:"explosive_threshold"`
	TurnoverScale      float64 `json:"turnover_scale"`
	ScoreScale         float64 `json:"score_scale"`
	ClockDeltaMin      int     `json:"clock_delta_min"`
	ClockDeltaMax      int     `json:"clock_delta_max"`
}

// Influence is the full trait-influence profile for one play type.
type Influence struct {
	ID       string          `json:"id"`
	Families []FamilyProfile `json:"families"`
	Outcome  OutcomeProfile  `json:"outcome_profile"`
}

// FamilyByName indexes the influence families.
func (i Influence) FamilyByName(family string) (FamilyProfile, bool) {
	for _, f := range i.Families {
		if f.Family == family {
			return f, true
		}
	}
	return FamilyProfile{}, false
}

// PairingHint asks the matchup compiler to pair two roles with a given
// technique before preference-table matching runs.
type PairingHint struct {
	OffenseRole string `json:"offense_role"`
	DefenseRole string `json:"defense_role"`
	Technique   string `json:"technique"`
}

// AssignmentTemplate names the required role multiset per side plus
// optional pairing hints.
type AssignmentTemplate struct {
	ID               string        `json:"id"`
	OffenseRoles     []string      `json:"offense_roles"`
	DefenseRoles     []string      `json:"defense_roles"`
	PairingHints     []PairingHint `json:"pairing_hints"`
	DefaultTechnique string        `json:"default_technique"`
}

// PlaybookEntry binds a play call to its resources.
type PlaybookEntry struct {
	ID                   string        `json:"id"`
	PlayType             snap.PlayType `json:"play_type"`
	Family               string        `json:"family"`
	PersonnelID          string        `json:"personnel_id"`
	FormationID          string        `json:"formation_id"`
	OffensiveConceptID   string        `json:"offensive_concept_id"`
	DefensiveConceptID   string        `json:"defensive_concept_id"`
	AssignmentTemplateID string        `json:"assignment_template_id"`
	Tags                 []string      `json:"tags"`
}
