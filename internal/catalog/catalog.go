package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gridiron/internal/snap"
)

// RawBundle is the narrow raw-JSON boundary at the point of external
// file ingestion. Everything past FromRaw is closed, explicitly typed.
type RawBundle struct {
	Manifest  Manifest `json:"manifest"`
	Resources []any    `json:"resources"`
}

// Catalog is the read-only registry of simulation resources. It is
// loaded once per runtime and safe for concurrent reads; calibration
// overrides construct a new Catalog instead of patching this one.
type Catalog struct {
	personnel  map[string]Personnel
	formations map[string]Formation
	offense    map[string]Concept
	defense    map[string]Concept
	policies   map[string]Policy
	influences map[string]Influence
	playbook   map[string]PlaybookEntry
	templates  map[string]AssignmentTemplate
	manifests  []Manifest
}

// Load reads every bundle file from dir and builds a validated catalog.
func Load(dir string) (*Catalog, error) {
	bundles := make(map[string]RawBundle, len(BundleFiles))
	for filename := range BundleFiles {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("reading bundle %s: %w", filename, err)
		}
		var bundle RawBundle
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("decoding bundle %s: %w", filename, err)
		}
		bundles[filename] = bundle
	}
	return FromRaw(bundles)
}

// FromRaw validates manifests, checksums, typed shape, and cross-bundle
// referential integrity, returning every blocking issue at once.
func FromRaw(bundles map[string]RawBundle) (*Catalog, error) {
	var issues []snap.Issue

	for filename, expectedType := range BundleFiles {
		bundle, ok := bundles[filename]
		if !ok {
			issues = append(issues, snap.Issue{
				Code:      "missing_resource_bundle",
				Severity:  snap.SeverityBlocking,
				FieldPath: filename,
				EntityID:  expectedType,
				Message:   "resource bundle is not provided",
			})
			continue
		}
		issues = append(issues, validateManifest(filename, expectedType, bundle)...)
	}
	if blocking := snap.BlockingIssues(issues); len(blocking) > 0 {
		snap.SortIssues(blocking)
		return nil, &snap.ValidationError{Issues: blocking}
	}

	c := &Catalog{
		personnel:  map[string]Personnel{},
		formations: map[string]Formation{},
		offense:    map[string]Concept{},
		defense:    map[string]Concept{},
		policies:   map[string]Policy{},
		influences: map[string]Influence{},
		playbook:   map[string]PlaybookEntry{},
		templates:  map[string]AssignmentTemplate{},
	}

	issues = append(issues, decodeBundle(bundles[FilePersonnel], FilePersonnel, c.personnel, func(p Personnel) string { return p.ID })...)
	issues = append(issues, decodeBundle(bundles[FileFormations], FileFormations, c.formations, func(f Formation) string { return f.ID })...)
	issues = append(issues, decodeBundle(bundles[FileConceptsOffense], FileConceptsOffense, c.offense, func(co Concept) string { return co.ID })...)
	issues = append(issues, decodeBundle(bundles[FileConceptsDefense], FileConceptsDefense, c.defense, func(co Concept) string { return co.ID })...)
	issues = append(issues, decodeBundle(bundles[FilePolicies], FilePolicies, c.policies, func(p Policy) string { return p.ID })...)
	issues = append(issues, decodeBundle(bundles[FileTraitInfluences], FileTraitInfluences, c.influences, func(i Influence) string { return i.ID })...)
	issues = append(issues, decodeBundle(bundles[FilePlaybook], FilePlaybook, c.playbook, func(p PlaybookEntry) string { return p.ID })...)
	issues = append(issues, decodeBundle(bundles[FileTemplates], FileTemplates, c.templates, func(t AssignmentTemplate) string { return t.ID })...)

	for filename := range BundleFiles {
		c.manifests = append(c.manifests, bundles[filename].Manifest)
	}
	sort.Slice(c.manifests, func(i, j int) bool { return c.manifests[i].ResourceType < c.manifests[j].ResourceType })

	issues = append(issues, c.crossReferenceIssues()...)

	if blocking := snap.BlockingIssues(issues); len(blocking) > 0 {
		snap.SortIssues(blocking)
		return nil, &snap.ValidationError{Issues: blocking}
	}
	return c, nil
}

func validateManifest(filename, expectedType string, bundle RawBundle) []snap.Issue {
	var issues []snap.Issue
	if len(bundle.Resources) == 0 {
		issues = append(issues, snap.Issue{
			Code:      "empty_resource_set",
			Severity:  snap.SeverityBlocking,
			FieldPath: filename,
			EntityID:  expectedType,
			Message:   "resource bundle contains no resources",
		})
	}
	if bundle.Manifest.ResourceType != expectedType {
		issues = append(issues, snap.Issue{
			Code:      "resource_type_mismatch",
			Severity:  snap.SeverityBlocking,
			FieldPath: filename + ".manifest.resource_type",
			EntityID:  expectedType,
			Message:   fmt.Sprintf("expected %q, got %q", expectedType, bundle.Manifest.ResourceType),
		})
	}
	if bundle.Manifest.SchemaVersion != ExpectedSchemaVersion {
		issues = append(issues, snap.Issue{
			Code:      "resource_schema_mismatch",
			Severity:  snap.SeverityBlocking,
			FieldPath: filename + ".manifest.schema_version",
			EntityID:  expectedType,
			Message:   fmt.Sprintf("expected schema %s, got %q", ExpectedSchemaVersion, bundle.Manifest.SchemaVersion),
		})
	}
	checksum, err := Checksum(bundle.Resources)
	if err != nil {
		issues = append(issues, snap.Issue{
			Code:      "invalid_resource_bundle",
			Severity:  snap.SeverityBlocking,
			FieldPath: filename,
			EntityID:  expectedType,
			Message:   err.Error(),
		})
		return issues
	}
	if bundle.Manifest.Checksum != checksum {
		issues = append(issues, snap.Issue{
			Code:      "resource_checksum_mismatch",
			Severity:  snap.SeverityBlocking,
			FieldPath: filename + ".manifest.checksum",
			EntityID:  expectedType,
			Message:   fmt.Sprintf("expected %s, got %s", checksum, bundle.Manifest.Checksum),
		})
	}
	return issues
}

func decodeBundle[T any](bundle RawBundle, filename string, into map[string]T, idOf func(T) string) []snap.Issue {
	var issues []snap.Issue
	for idx, resource := range bundle.Resources {
		raw, err := json.Marshal(resource)
		if err != nil {
			issues = append(issues, decodeIssue(filename, idx, err.Error()))
			continue
		}
		var typed T
		if err := json.Unmarshal(raw, &typed); err != nil {
			issues = append(issues, decodeIssue(filename, idx, err.Error()))
			continue
		}
		id := idOf(typed)
		if id == "" {
			issues = append(issues, decodeIssue(filename, idx, "resource is missing an id"))
			continue
		}
		if _, exists := into[id]; exists {
			issues = append(issues, decodeIssue(filename, idx, fmt.Sprintf("duplicate resource id %q", id)))
			continue
		}
		into[id] = typed
	}
	return issues
}

func decodeIssue(filename string, idx int, message string) snap.Issue {
	return snap.Issue{
		Code:      "invalid_resource_entry",
		Severity:  snap.SeverityBlocking,
		FieldPath: fmt.Sprintf("%s.resources[%d]", filename, idx),
		EntityID:  filename,
		Message:   message,
	}
}
