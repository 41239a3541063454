package validate

// Player is the roster record the validator and the injury evaluator
// read. Traits must carry the complete catalog vector.
type Player struct {
	PlayerID string
	Position string
	Traits   map[string]float64
}

// Roster resolves actor ids to player records. It is consumed, never
// constructed, by the engine.
type Roster interface {
	Player(actorID string) (Player, bool)
}

// MapRoster is an in-memory Roster backed by a plain map.
type MapRoster map[string]Player

func (m MapRoster) Player(actorID string) (Player, bool) {
	p, ok := m[actorID]
	return p, ok
}

// SessionIdentity pins a game input to the running session.
type SessionIdentity struct {
	Season int
	Week   int
	GameID string
}

// TeamSheet is one team's game-day submission.
type TeamSheet struct {
	TeamID     string
	PolicyID   string
	DepthChart map[string][]string
	Roster     []Player
}

// GameInput is the full pre-game readiness payload for both teams.
type GameInput struct {
	Identity SessionIdentity
	Teams    []TeamSheet
}
