package catalog

import (
	"errors"
	"testing"

	"gridiron/internal/snap"
)

func issueCodes(t *testing.T, err error) map[string]int {
	t.Helper()
	var verr *snap.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	codes := make(map[string]int)
	for _, issue := range verr.Issues {
		codes[issue.Code]++
	}
	return codes
}

func TestLoadDefaultClean(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if got := len(cat.Manifests()); got != len(BundleFiles) {
		t.Errorf("manifest count = %d, want %d", got, len(BundleFiles))
	}
	for _, id := range []string{"11", "12", "21", "st_punt", "st_kick", "st_fg"} {
		if _, err := cat.ResolvePersonnel(id); err != nil {
			t.Errorf("ResolvePersonnel(%s): %v", id, err)
		}
	}
	for _, pt := range snap.PlayTypes() {
		if _, err := cat.ResolveInfluence(string(pt)); err != nil {
			t.Errorf("ResolveInfluence(%s): %v", pt, err)
		}
	}
}

func TestWriteDefaultsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDefaults(dir); err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}
	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cat.ResolveFormation("gun_trips"); err != nil {
		t.Errorf("ResolveFormation: %v", err)
	}
}

func TestFromRawChecksumMismatch(t *testing.T) {
	raw, err := DefaultRaw()
	if err != nil {
		t.Fatalf("DefaultRaw: %v", err)
	}
	bundle := raw[FileFormations]
	bundle.Manifest.Checksum = "0000"
	raw[FileFormations] = bundle
	_, err = FromRaw(raw)
	if err == nil {
		t.Fatal("expected checksum error, got nil")
	}
	if codes := issueCodes(t, err); codes["resource_checksum_mismatch"] == 0 {
		t.Errorf("codes = %v, want resource_checksum_mismatch", codes)
	}
}

func TestFromRawTypeAndSchemaMismatch(t *testing.T) {
	raw, err := DefaultRaw()
	if err != nil {
		t.Fatalf("DefaultRaw: %v", err)
	}
	bundle := raw[FilePersonnel]
	bundle.Manifest.ResourceType = "formation"
	bundle.Manifest.SchemaVersion = "0.9"
	raw[FilePersonnel] = bundle
	_, err = FromRaw(raw)
	codes := issueCodes(t, err)
	if codes["resource_type_mismatch"] == 0 || codes["resource_schema_mismatch"] == 0 {
		t.Errorf("codes = %v, want resource_type_mismatch and resource_schema_mismatch", codes)
	}
}

func TestFromRawMissingBundle(t *testing.T) {
	raw, err := DefaultRaw()
	if err != nil {
		t.Fatalf("DefaultRaw: %v", err)
	}
	delete(raw, FilePolicies)
	_, err = FromRaw(raw)
	if codes := issueCodes(t, err); codes["missing_resource_bundle"] == 0 {
		t.Errorf("codes = %v, want missing_resource_bundle", codes)
	}
}

func TestFromRawCrossReferenceFailure(t *testing.T) {
	raw, err := DefaultRaw()
	if err != nil {
		t.Fatalf("DefaultRaw: %v", err)
	}
	formations := append([]Formation{}, defaultFormations()...)
	formations[0].AllowedPersonnel = []string{"ghost"}
	resources, err := toRawResources(formations)
	if err != nil {
		t.Fatalf("toRawResources: %v", err)
	}
	manifest, err := NewManifest(BundleFiles[FileFormations], DefaultResourceVersion, resources)
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	raw[FileFormations] = RawBundle{Manifest: manifest, Resources: resources}
	_, err = FromRaw(raw)
	if err == nil {
		t.Fatal("expected cross-reference error, got nil")
	}
	if codes := issueCodes(t, err); codes["formation_personnel_ref_missing"] == 0 {
		t.Errorf("codes = %v, want formation_personnel_ref_missing", codes)
	}
}

func TestResolveUnknownIDs(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if _, err := cat.ResolvePersonnel("ghost"); err == nil {
		t.Error("ResolvePersonnel(ghost): want error")
	}
	if _, err := cat.ResolveConcept("mesh_concept", "defense"); err == nil {
		t.Error("mesh_concept is offense-only, defense lookup must fail")
	}
	if _, err := cat.ResolvePolicy("ghost"); err == nil {
		t.Error("ResolvePolicy(ghost): want error")
	}
}

func TestResolveEntryForIntent(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	entry, err := cat.ResolveEntryForIntent(snap.Intent{
		PlayType:         snap.PlayPass,
		Personnel:        "11",
		Formation:        "gun_trips",
		OffensiveConcept: "mesh_concept",
		DefensiveConcept: "cover_three",
	})
	if err != nil {
		t.Fatalf("ResolveEntryForIntent: %v", err)
	}
	if entry.ID != "pb_mesh" {
		t.Errorf("entry = %s, want pb_mesh", entry.ID)
	}

	if _, err := cat.ResolveEntryForIntent(snap.Intent{
		PlayType:         snap.PlayRun,
		Personnel:        "11",
		Formation:        "gun_trips",
		OffensiveConcept: "mesh_concept",
		DefensiveConcept: "cover_three",
	}); err == nil {
		t.Fatal("unmatched intent must not fall back to a derived entry")
	}
}

func TestChecksumIndependentOfKeyOrder(t *testing.T) {
	a := []any{map[string]any{"id": "x", "b": 1.0, "a": 2.0}}
	b := []any{map[string]any{"a": 2.0, "id": "x", "b": 1.0}}
	ca, err := Checksum(a)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	cb, err := Checksum(b)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if ca != cb {
		t.Errorf("checksum depends on key order: %s vs %s", ca, cb)
	}
}
