package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gridiron/internal/snap"
)

// DefaultResourceVersion identifies the built-in data pack.
const DefaultResourceVersion = "2026.1"

// DefaultRaw builds the built-in data pack as raw bundles with freshly
// stamped manifests. Calibration overrides start from this set, replace
// resources, and re-checksum through NewManifest.
func DefaultRaw() (map[string]RawBundle, error) {
	bundles := make(map[string]RawBundle, len(BundleFiles))

	add := func(filename string, values any) error {
		resources, err := toRawResources(values)
		if err != nil {
			return fmt.Errorf("building bundle %s: %w", filename, err)
		}
		manifest, err := NewManifest(BundleFiles[filename], DefaultResourceVersion, resources)
		if err != nil {
			return fmt.Errorf("building bundle %s: %w", filename, err)
		}
		bundles[filename] = RawBundle{Manifest: manifest, Resources: resources}
		return nil
	}

	if err := add(FilePersonnel, defaultPersonnel()); err != nil {
		return nil, err
	}
	if err := add(FileFormations, defaultFormations()); err != nil {
		return nil, err
	}
	if err := add(FileConceptsOffense, defaultOffenseConcepts()); err != nil {
		return nil, err
	}
	if err := add(FileConceptsDefense, defaultDefenseConcepts()); err != nil {
		return nil, err
	}
	if err := add(FilePolicies, defaultPolicies()); err != nil {
		return nil, err
	}
	if err := add(FileTraitInfluences, defaultInfluences()); err != nil {
		return nil, err
	}
	if err := add(FilePlaybook, defaultPlaybook()); err != nil {
		return nil, err
	}
	if err := add(FileTemplates, defaultTemplates()); err != nil {
		return nil, err
	}
	return bundles, nil
}

// LoadDefault builds a catalog directly from the built-in data pack.
func LoadDefault() (*Catalog, error) {
	raw, err := DefaultRaw()
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// WriteDefaults writes the built-in bundles as JSON files under dir.
func WriteDefaults(dir string) error {
	raw, err := DefaultRaw()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating resource directory: %w", err)
	}
	for filename, bundle := range raw {
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding bundle %s: %w", filename, err)
		}
		if err := os.WriteFile(filepath.Join(dir, filename), append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing bundle %s: %w", filename, err)
		}
	}
	return nil
}

func toRawResources(values any) ([]any, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	var resources []any
	if err := json.Unmarshal(raw, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func defaultPersonnel() []Personnel {
	return []Personnel{
		{ID: "11", Label: "11 personnel", RoleCounts: map[string]int{"QB": 1, "RB": 1, "TE": 1, "WR": 3, "OL": 5}},
		{ID: "12", Label: "12 personnel", RoleCounts: map[string]int{"QB": 1, "RB": 1, "TE": 2, "WR": 2, "OL": 5}},
		{ID: "21", Label: "21 personnel", RoleCounts: map[string]int{"QB": 1, "RB": 2, "TE": 1, "WR": 2, "OL": 5}},
		{ID: "st_punt", Label: "Punt unit", RoleCounts: map[string]int{"P": 1, "OL": 5, "TE": 1, "WR": 2, "RB": 2}},
		{ID: "st_kick", Label: "Kick unit", RoleCounts: map[string]int{"K": 1, "LB": 3, "CB": 2, "S": 2, "WR": 2, "RB": 1}},
		{ID: "st_fg", Label: "Field goal unit", RoleCounts: map[string]int{"K": 1, "QB": 1, "OL": 5, "TE": 2, "WR": 1, "RB": 1}},
	}
}

func defaultFormations() []Formation {
	return []Formation{
		{ID: "gun_trips", Label: "Gun trips right", AllowedPersonnel: []string{"11"}},
		{ID: "singleback", Label: "Singleback", AllowedPersonnel: []string{"11", "12"}},
		{ID: "i_form", Label: "I formation", AllowedPersonnel: []string{"21", "12"}},
		{ID: "punt_spread", Label: "Punt spread shield", AllowedPersonnel: []string{"st_punt"}},
		{ID: "kick_standard", Label: "Kickoff standard", AllowedPersonnel: []string{"st_kick"}},
		{ID: "fg_heavy", Label: "Field goal heavy", AllowedPersonnel: []string{"st_fg"}},
	}
}

func defaultOffenseConcepts() []Concept {
	return []Concept{
		{ID: "inside_zone", Label: "Inside zone", PlayTypes: []string{"run"}},
		{ID: "duo_lead", Label: "Duo lead", PlayTypes: []string{"run", "two_point"}},
		{ID: "mesh_concept", Label: "Mesh", PlayTypes: []string{"pass", "two_point"}},
		{ID: "quick_game", Label: "Quick game", PlayTypes: []string{"pass", "two_point"}},
		{ID: "punt_directional", Label: "Directional punt", PlayTypes: []string{"punt"}},
		{ID: "kickoff_deep", Label: "Deep kickoff", PlayTypes: []string{"kickoff"}},
		{ID: "fg_operation", Label: "Field goal operation", PlayTypes: []string{"field_goal", "extra_point"}},
	}
}

func defaultDefenseConcepts() []Concept {
	return []Concept{
		{ID: "over_front", Label: "Over front", PlayTypes: []string{"run", "two_point"}},
		{ID: "cover_three", Label: "Cover three", PlayTypes: []string{"pass", "two_point"}},
		{ID: "cover_one_pressure", Label: "Cover one pressure", PlayTypes: []string{"pass", "run", "two_point"}},
		{ID: "punt_return_wall", Label: "Punt return wall", PlayTypes: []string{"punt"}},
		{ID: "kick_return_middle", Label: "Kick return middle", PlayTypes: []string{"kickoff"}},
		{ID: "fg_block_interior", Label: "Field goal block interior", PlayTypes: []string{"field_goal", "extra_point"}},
	}
}

func defaultPolicies() []Policy {
	return []Policy{
		{
			ID:       "balanced_default",
			Label:    "Balanced",
			Defaults: map[string]float64{"aggression": 0.5, "tempo_bias": 0.5},
			PlaybookByPosture: map[string][]string{
				"normal":          {"pb_inside_zone", "pb_mesh", "pb_quick"},
				"short_yardage":   {"pb_duo", "pb_quick"},
				"third_and_long":  {"pb_mesh", "pb_quick"},
				"fourth_and_long": {"pb_punt"},
				"field_goal_try":  {"pb_field_goal"},
			},
		},
		{
			ID:       "aggressive_tempo",
			Label:    "Aggressive tempo",
			Defaults: map[string]float64{"aggression": 0.8, "tempo_bias": 0.7},
			PlaybookByPosture: map[string][]string{
				"normal":          {"pb_mesh", "pb_quick", "pb_inside_zone"},
				"short_yardage":   {"pb_duo"},
				"third_and_long":  {"pb_mesh"},
				"fourth_and_long": {"pb_mesh", "pb_punt"},
				"field_goal_try":  {"pb_field_goal"},
			},
		},
	}
}

func defaultPlaybook() []PlaybookEntry {
	return []PlaybookEntry{
		{ID: "pb_inside_zone", PlayType: snap.PlayRun, Family: "zone_run", PersonnelID: "11", FormationID: "singleback", OffensiveConceptID: "inside_zone", DefensiveConceptID: "over_front", AssignmentTemplateID: "scrimmage_base", Tags: []string{"base"}},
		{ID: "pb_duo", PlayType: snap.PlayRun, Family: "gap_run", PersonnelID: "21", FormationID: "i_form", OffensiveConceptID: "duo_lead", DefensiveConceptID: "over_front", AssignmentTemplateID: "scrimmage_base", Tags: []string{"short_yardage"}},
		{ID: "pb_mesh", PlayType: snap.PlayPass, Family: "dropback", PersonnelID: "11", FormationID: "gun_trips", OffensiveConceptID: "mesh_concept", DefensiveConceptID: "cover_three", AssignmentTemplateID: "scrimmage_base", Tags: []string{"base"}},
		{ID: "pb_quick", PlayType: snap.PlayPass, Family: "quick", PersonnelID: "11", FormationID: "gun_trips", OffensiveConceptID: "quick_game", DefensiveConceptID: "cover_one_pressure", AssignmentTemplateID: "scrimmage_base", Tags: []string{"tempo"}},
		{ID: "pb_two_point", PlayType: snap.PlayTwoPoint, Family: "quick", PersonnelID: "11", FormationID: "gun_trips", OffensiveConceptID: "quick_game", DefensiveConceptID: "cover_one_pressure", AssignmentTemplateID: "scrimmage_base", Tags: []string{"conversion"}},
		{ID: "pb_punt", PlayType: snap.PlayPunt, Family: "punt", PersonnelID: "st_punt", FormationID: "punt_spread", OffensiveConceptID: "punt_directional", DefensiveConceptID: "punt_return_wall", AssignmentTemplateID: "punt_base", Tags: []string{"special"}},
		{ID: "pb_kickoff", PlayType: snap.PlayKickoff, Family: "kickoff", PersonnelID: "st_kick", FormationID: "kick_standard", OffensiveConceptID: "kickoff_deep", DefensiveConceptID: "kick_return_middle", AssignmentTemplateID: "kickoff_base", Tags: []string{"special"}},
		{ID: "pb_field_goal", PlayType: snap.PlayFieldGoal, Family: "field_goal", PersonnelID: "st_fg", FormationID: "fg_heavy", OffensiveConceptID: "fg_operation", DefensiveConceptID: "fg_block_interior", AssignmentTemplateID: "field_goal_base", Tags: []string{"special"}},
		{ID: "pb_extra_point", PlayType: snap.PlayExtraPoint, Family: "extra_point", PersonnelID: "st_fg", FormationID: "fg_heavy", OffensiveConceptID: "fg_operation", DefensiveConceptID: "fg_block_interior", AssignmentTemplateID: "field_goal_base", Tags: []string{"special"}},
	}
}

func defaultTemplates() []AssignmentTemplate {
	return []AssignmentTemplate{
		{
			ID:           "scrimmage_base",
			OffenseRoles: []string{"QB", "RB", "WR", "WR", "WR", "TE", "OL", "OL", "OL", "OL", "OL"},
			DefenseRoles: []string{"DL", "DL", "DL", "DL", "LB", "LB", "LB", "CB", "CB", "S", "S"},
			PairingHints: []PairingHint{
				{OffenseRole: "WR", DefenseRole: "CB", Technique: "press_man"},
				{OffenseRole: "WR", DefenseRole: "CB", Technique: "off_man"},
				{OffenseRole: "RB", DefenseRole: "LB", Technique: "scan_free"},
			},
			DefaultTechnique: "balanced",
		},
		{
			ID:           "punt_base",
			OffenseRoles: []string{"P", "OL", "OL", "OL", "OL", "OL", "TE", "WR", "WR", "RB", "RB"},
			DefenseRoles: []string{"DL", "DL", "DL", "DL", "LB", "LB", "LB", "CB", "CB", "S", "S"},
			PairingHints: []PairingHint{
				{OffenseRole: "WR", DefenseRole: "CB", Technique: "vice_release"},
			},
			DefaultTechnique: "shield",
		},
		{
			ID:               "kickoff_base",
			OffenseRoles:     []string{"K", "LB", "LB", "LB", "CB", "CB", "S", "S", "WR", "WR", "RB"},
			DefenseRoles:     []string{"DL", "DL", "DL", "DL", "LB", "LB", "LB", "CB", "CB", "S", "S"},
			PairingHints:     nil,
			DefaultTechnique: "lane",
		},
		{
			ID:           "field_goal_base",
			OffenseRoles: []string{"K", "QB", "OL", "OL", "OL", "OL", "OL", "TE", "TE", "WR", "RB"},
			DefenseRoles: []string{"DL", "DL", "DL", "DL", "LB", "LB", "LB", "CB", "CB", "S", "S"},
			PairingHints: []PairingHint{
				{OffenseRole: "TE", DefenseRole: "DL", Technique: "wing_seal"},
			},
			DefaultTechnique: "protect",
		},
	}
}
