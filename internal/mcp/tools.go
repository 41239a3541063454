package mcp

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"gridiron/internal/calibration"
	"gridiron/internal/snap"
	"gridiron/internal/traits"
)

type ResolveSnapInput struct {
	PlayType       string  `json:"play_type" jsonschema:"run, pass, punt, kickoff, field_goal, extra_point, or two_point"`
	GameID         string  `json:"game_id" jsonschema:"game identifier"`
	PlayID         string  `json:"play_id" jsonschema:"play identifier"`
	Mode           string  `json:"mode,omitempty" jsonschema:"play, sim, or offscreen"`
	OffenseOverall float64 `json:"offense_overall,omitempty" jsonschema:"offense talent level in (0, 1)"`
	DefenseOverall float64 `json:"defense_overall,omitempty" jsonschema:"defense talent level in (0, 1)"`
}

type ResolveSnapOutput struct {
	PlayID        string            `json:"play_id"`
	Yards         int               `json:"yards"`
	TerminalEvent string            `json:"terminal_event"`
	ScoreEvent    string            `json:"score_event,omitempty"`
	Turnover      bool              `json:"turnover"`
	TurnoverType  string            `json:"turnover_type,omitempty"`
	ClockDelta    int               `json:"clock_delta"`
	NextDown      int               `json:"next_down"`
	NextDistance  int               `json:"next_distance"`
	Contests      []ContestOutput   `json:"contests"`
	Injuries      map[string]string `json:"injuries"`
}

type ContestOutput struct {
	Family string  `json:"family"`
	Phase  string  `json:"phase"`
	Score  float64 `json:"score"`
}

type ValidatePlayCallInput struct {
	PlayType         string `json:"play_type" jsonschema:"play type to validate"`
	Personnel        string `json:"personnel" jsonschema:"personnel package id"`
	Formation        string `json:"formation" jsonschema:"formation id"`
	OffensiveConcept string `json:"offensive_concept" jsonschema:"offensive concept id"`
	DefensiveConcept string `json:"defensive_concept" jsonschema:"defensive concept id"`
}

type ValidatePlayCallOutput struct {
	Valid  bool          `json:"valid"`
	Issues []IssueOutput `json:"issues"`
}

type IssueOutput struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Field    string `json:"field,omitempty"`
	Entity   string `json:"entity,omitempty"`
	Message  string `json:"message"`
}

type GetTraitCatalogInput struct{}

type GetTraitCatalogOutput struct {
	Version string        `json:"version"`
	Traits  []TraitOutput `json:"traits"`
}

type TraitOutput struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Required bool   `json:"required"`
	Status   string `json:"status"`
}

type GenerateTraitsInput struct {
	PlayerID             string  `json:"player_id" jsonschema:"player identifier, seeds the generation"`
	Position             string  `json:"position" jsonschema:"roster position, e.g. WR"`
	Overall              float64 `json:"overall" jsonschema:"talent level in (0, 1)"`
	Volatility           float64 `json:"volatility,omitempty" jsonschema:"performance volatility in (0, 1)"`
	InjurySusceptibility float64 `json:"injury_susceptibility,omitempty" jsonschema:"injury susceptibility in (0, 1)"`
}

type GenerateTraitsOutput struct {
	PlayerID string             `json:"player_id"`
	Vector   map[string]float64 `json:"vector"`
}

type ListResourcesInput struct{}

type ListResourcesOutput struct {
	Personnel      []string `json:"personnel"`
	Formations     []string `json:"formations"`
	OffenseConcept []string `json:"offense_concepts"`
	DefenseConcept []string `json:"defense_concepts"`
	Policies       []string `json:"policies"`
	Influences     []string `json:"influences"`
	Playbook       []string `json:"playbook"`
	Templates      []string `json:"templates"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_snap",
		Description: "Resolve one snap with synthetic rosters and return its outcome",
	}, s.handleResolveSnap)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "validate_playcall",
		Description: "Validate a play call against the loaded resource catalog",
	}, s.handleValidatePlayCall)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_trait_catalog",
		Description: "Return the trait catalog definition",
	}, s.handleGetTraitCatalog)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "generate_traits",
		Description: "Generate a deterministic trait vector for a player",
	}, s.handleGenerateTraits)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_resources",
		Description: "List every resource id in the loaded catalog",
	}, s.handleListResources)
}

func (s *Server) handleResolveSnap(ctx context.Context, req *sdk.CallToolRequest, input ResolveSnapInput) (*sdk.CallToolResult, ResolveSnapOutput, error) {
	playType, err := snap.ParsePlayType(input.PlayType)
	if err != nil {
		return nil, ResolveSnapOutput{}, err
	}
	if input.GameID == "" || input.PlayID == "" {
		return nil, ResolveSnapOutput{}, fmt.Errorf("game_id and play_id are required")
	}

	offense := input.OffenseOverall
	if offense == 0 {
		offense = 0.6
	}
	defense := input.DefenseOverall
	if defense == 0 {
		defense = 0.6
	}

	snapCtx, err := calibration.BuildContext(playType, input.GameID, input.PlayID, offense, defense)
	if err != nil {
		return nil, ResolveSnapOutput{}, err
	}
	if input.Mode != "" {
		snapCtx.Mode = snap.Mode(input.Mode)
	}

	res, err := s.engine.RunSnap(snapCtx)
	if err != nil {
		return nil, ResolveSnapOutput{}, err
	}

	contests := make([]ContestOutput, 0, len(res.Contests))
	for _, contest := range res.Contests {
		contests = append(contests, ContestOutput{
			Family: contest.Family,
			Phase:  contest.Phase,
			Score:  contest.Score,
		})
	}
	return nil, ResolveSnapOutput{
		PlayID:        res.PlayResult.PlayID,
		Yards:         res.PlayResult.Yards,
		TerminalEvent: res.Causality.TerminalEvent,
		ScoreEvent:    res.PlayResult.ScoreEvent,
		Turnover:      res.PlayResult.Turnover,
		TurnoverType:  res.PlayResult.TurnoverType,
		ClockDelta:    res.PlayResult.ClockDelta,
		NextDown:      res.PlayResult.NextDown,
		NextDistance:  res.PlayResult.NextDistance,
		Contests:      contests,
		Injuries:      res.Injuries,
	}, nil
}

func (s *Server) handleValidatePlayCall(ctx context.Context, req *sdk.CallToolRequest, input ValidatePlayCallInput) (*sdk.CallToolResult, ValidatePlayCallOutput, error) {
	playType, err := snap.ParsePlayType(input.PlayType)
	if err != nil {
		return nil, ValidatePlayCallOutput{}, err
	}
	intent := snap.Intent{
		PlayType:         playType,
		Personnel:        input.Personnel,
		Formation:        input.Formation,
		OffensiveConcept: input.OffensiveConcept,
		DefensiveConcept: input.DefensiveConcept,
	}

	err = s.engine.Validator().CheckPlayCall(intent)
	if err == nil {
		return nil, ValidatePlayCallOutput{Valid: true, Issues: []IssueOutput{}}, nil
	}

	var verr *snap.ValidationError
	if !errors.As(err, &verr) {
		return nil, ValidatePlayCallOutput{}, err
	}
	issues := make([]IssueOutput, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		issues = append(issues, IssueOutput{
			Code:     issue.Code,
			Severity: string(issue.Severity),
			Field:    issue.FieldPath,
			Entity:   issue.EntityID,
			Message:  issue.Message,
		})
	}
	return nil, ValidatePlayCallOutput{Valid: false, Issues: issues}, nil
}

func (s *Server) handleGetTraitCatalog(ctx context.Context, req *sdk.CallToolRequest, input GetTraitCatalogInput) (*sdk.CallToolResult, GetTraitCatalogOutput, error) {
	entries := traits.Catalog()
	out := GetTraitCatalogOutput{
		Version: traits.CatalogVersion,
		Traits:  make([]TraitOutput, 0, len(entries)),
	}
	for _, entry := range entries {
		out.Traits = append(out.Traits, TraitOutput{
			Code:     entry.Code,
			Category: entry.Category,
			Required: entry.Required,
			Status:   string(entry.Status),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGenerateTraits(ctx context.Context, req *sdk.CallToolRequest, input GenerateTraitsInput) (*sdk.CallToolResult, GenerateTraitsOutput, error) {
	if input.PlayerID == "" {
		return nil, GenerateTraitsOutput{}, fmt.Errorf("player_id is required")
	}
	if input.Overall <= 0 || input.Overall >= 1 {
		return nil, GenerateTraitsOutput{}, fmt.Errorf("overall must be in (0, 1), got %v", input.Overall)
	}
	volatility := input.Volatility
	if volatility == 0 {
		volatility = 0.3
	}
	susceptibility := input.InjurySusceptibility
	if susceptibility == 0 {
		susceptibility = 0.3
	}
	vector, err := traits.Generate(input.PlayerID, input.Position, traits.Truth{
		Overall:              input.Overall,
		Volatility:           volatility,
		InjurySusceptibility: susceptibility,
	})
	if err != nil {
		return nil, GenerateTraitsOutput{}, err
	}
	return nil, GenerateTraitsOutput{PlayerID: input.PlayerID, Vector: vector}, nil
}

func (s *Server) handleListResources(ctx context.Context, req *sdk.CallToolRequest, input ListResourcesInput) (*sdk.CallToolResult, ListResourcesOutput, error) {
	cat := s.engine.Catalog()
	return nil, ListResourcesOutput{
		Personnel:      cat.PersonnelIDs(),
		Formations:     cat.FormationIDs(),
		OffenseConcept: cat.OffenseIDs(),
		DefenseConcept: cat.DefenseIDs(),
		Policies:       cat.PolicyIDs(),
		Influences:     cat.InfluenceIDs(),
		Playbook:       cat.PlaybookIDs(),
		Templates:      cat.TemplateIDs(),
	}, nil
}
