package store

// PlaySummary is one row of a game's play log.
type PlaySummary struct {
	PlayID        string
	GameID        string
	Yards         int
	TerminalEvent string
	ScoreEvent    string
	Turnover      bool
	Conditioned   bool
	SavedAt       string
}

// ArtifactSummary indexes a persisted forensic artifact.
type ArtifactSummary struct {
	ArtifactID string
	Scope      string
	ErrorCode  string
	PlayID     string
	SavedAt    string
}
