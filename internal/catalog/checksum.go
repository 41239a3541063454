package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Checksum computes the SHA-256 hex digest over the canonicalized
// resource list: each resource serialized with sorted keys and no
// extraneous whitespace. The same canonicalization is used when bundles
// are generated and when they are loaded, so any drift is detected.
func Checksum(resources []any) (string, error) {
	canonical, err := canonicalize(resources)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

// canonicalize round-trips the resource list through JSON-decoded form
// so map keys serialize sorted and compact regardless of source typing.
func canonicalize(resources []any) ([]byte, error) {
	raw, err := json.Marshal(resources)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing resources: %w", err)
	}
	var decoded []any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("canonicalizing resources: %w", err)
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing resources: %w", err)
	}
	return canonical, nil
}

// NewManifest stamps a manifest for a freshly generated or overridden
// resource list. Overriding a bundle means re-checksumming it through
// this path, never patching a loaded catalog in place.
func NewManifest(resourceType, resourceVersion string, resources []any) (Manifest, error) {
	checksum, err := Checksum(resources)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{
		ResourceType:    resourceType,
		SchemaVersion:   ExpectedSchemaVersion,
		ResourceVersion: resourceVersion,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Checksum:        checksum,
	}, nil
}
