package forensic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Artifact is the append-only audit record produced whenever the engine
// must hard-stop instead of silently recovering. It is written as one
// JSON file per failure for offline diagnosis.
type Artifact struct {
	ArtifactID     string            `json:"artifact_id"`
	Timestamp      time.Time         `json:"timestamp"`
	EngineScope    string            `json:"engine_scope"`
	ErrorCode      string            `json:"error_code"`
	Message        string            `json:"message"`
	StateSnapshot  map[string]any    `json:"state_snapshot"`
	Context        map[string]any    `json:"context"`
	Identifiers    map[string]string `json:"identifiers"`
	CausalFragment []string          `json:"causal_fragment"`
}

// IntegrityError marks a contract violation the engine itself must never
// produce. It is fatal to the caller's current operation: no retry, no
// default substitution, no clamping.
type IntegrityError struct {
	Artifact Artifact
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Artifact.ErrorCode, e.Artifact.Message)
}

// NewError builds an IntegrityError with a fully populated artifact.
func NewError(scope, code, message string, snapshot, context map[string]any, identifiers map[string]string, causalFragment []string) *IntegrityError {
	if snapshot == nil {
		snapshot = map[string]any{}
	}
	if context == nil {
		context = map[string]any{}
	}
	if identifiers == nil {
		identifiers = map[string]string{}
	}
	return &IntegrityError{Artifact: Artifact{
		ArtifactID:     uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		EngineScope:    scope,
		ErrorCode:      code,
		Message:        message,
		StateSnapshot:  snapshot,
		Context:        context,
		Identifiers:    identifiers,
		CausalFragment: causalFragment,
	}}
}

// Persist writes the artifact as forensic_<id>.json under dir, creating
// the directory when needed, and returns the written path.
func Persist(artifact Artifact, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating forensic directory: %w", err)
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding forensic artifact: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("forensic_%s.json", artifact.ArtifactID))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing forensic artifact: %w", err)
	}
	return path, nil
}
