package mcp

import (
	"context"
	"testing"

	"gridiron/internal/catalog"
	"gridiron/internal/engine"
	"gridiron/internal/traits"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	e, err := engine.New(cat, 99)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewServer(e, "test")
}

func TestResolveSnap(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleResolveSnap(context.Background(), nil, ResolveSnapInput{
		PlayType: "run", GameID: "g1", PlayID: "p1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.PlayID != "p1" {
		t.Fatalf("play id = %s", output.PlayID)
	}
	if output.TerminalEvent == "" {
		t.Fatalf("missing terminal event")
	}
	if len(output.Contests) == 0 {
		t.Fatalf("no contests in output")
	}

	_, replay, err := server.handleResolveSnap(context.Background(), nil, ResolveSnapInput{
		PlayType: "run", GameID: "g1", PlayID: "p1",
	})
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if replay.Yards != output.Yards || replay.TerminalEvent != output.TerminalEvent {
		t.Errorf("replay diverged: %+v vs %+v", replay, output)
	}
}

func TestResolveSnapRejectsBadInput(t *testing.T) {
	server := newTestServer(t)

	_, _, err := server.handleResolveSnap(context.Background(), nil, ResolveSnapInput{PlayType: "option", GameID: "g1", PlayID: "p1"})
	if err == nil {
		t.Fatalf("expected error for unknown play type")
	}
	_, _, err = server.handleResolveSnap(context.Background(), nil, ResolveSnapInput{PlayType: "run"})
	if err == nil {
		t.Fatalf("expected error for missing identifiers")
	}
}

func TestValidatePlayCall(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleValidatePlayCall(context.Background(), nil, ValidatePlayCallInput{
		PlayType: "pass", Personnel: "11", Formation: "gun_trips",
		OffensiveConcept: "mesh_concept", DefensiveConcept: "cover_three",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Valid || len(output.Issues) != 0 {
		t.Fatalf("expected valid call, got %+v", output)
	}

	_, output, err = server.handleValidatePlayCall(context.Background(), nil, ValidatePlayCallInput{
		PlayType: "pass", Personnel: "11", Formation: "wishbone",
		OffensiveConcept: "mesh_concept", DefensiveConcept: "cover_three",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Valid || len(output.Issues) == 0 {
		t.Fatalf("expected issues for unknown formation, got %+v", output)
	}
}

func TestGetTraitCatalog(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleGetTraitCatalog(context.Background(), nil, GetTraitCatalogInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Version != traits.CatalogVersion {
		t.Errorf("version = %s", output.Version)
	}
	if len(output.Traits) != traits.Count {
		t.Errorf("got %d traits, want %d", len(output.Traits), traits.Count)
	}
}

func TestGenerateTraits(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleGenerateTraits(context.Background(), nil, GenerateTraitsInput{
		PlayerID: "player-1", Position: "WR", Overall: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Vector) != traits.Count {
		t.Errorf("vector has %d traits, want %d", len(output.Vector), traits.Count)
	}

	_, _, err = server.handleGenerateTraits(context.Background(), nil, GenerateTraitsInput{Position: "WR", Overall: 0.7})
	if err == nil {
		t.Fatalf("expected error for missing player id")
	}
	_, _, err = server.handleGenerateTraits(context.Background(), nil, GenerateTraitsInput{PlayerID: "p", Overall: 1.5})
	if err == nil {
		t.Fatalf("expected error for out-of-range overall")
	}
}

func TestListResources(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleListResources(context.Background(), nil, ListResourcesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Playbook) == 0 || len(output.Influences) == 0 || len(output.Templates) == 0 {
		t.Fatalf("catalog listing incomplete: %+v", output)
	}
}
