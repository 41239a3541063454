package snap

import (
	"fmt"
	"sort"
	"strings"
)

// Severity of a validation issue. Blocking issues abort the calling
// operation; warnings are informational and never silently dropped.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// Issue is one structured, data-driven validation finding.
type Issue struct {
	Code      string   `json:"code"`
	Severity  Severity `json:"severity"`
	FieldPath string   `json:"field_path"`
	EntityID  string   `json:"entity_id"`
	Message   string   `json:"message"`
}

// ValidationError carries every blocking issue found, not just the
// first. It is the expected, data-driven error kind; contract violations
// use forensic.IntegrityError instead.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	codes := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		codes = append(codes, issue.Code)
	}
	return fmt.Sprintf("validation failed with %d blocking issue(s): %s", len(e.Issues), strings.Join(codes, ", "))
}

// SortIssues orders issues deterministically by severity, code, entity,
// then field path.
func SortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.EntityID != b.EntityID {
			return a.EntityID < b.EntityID
		}
		return a.FieldPath < b.FieldPath
	})
}

// BlockingIssues filters issues down to the blocking subset.
func BlockingIssues(issues []Issue) []Issue {
	var blocking []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityBlocking {
			blocking = append(blocking, issue)
		}
	}
	return blocking
}
