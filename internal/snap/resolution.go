package snap

import "gridiron/internal/events"

// Resolution is everything one resolved snap produces. It is built fresh
// per snap and never mutated after construction.
type Resolution struct {
	PlayResult  PlayResult          `json:"play_result"`
	Graph       MatchupGraph        `json:"matchup_graph"`
	RepLedger   []RepLedgerEntry    `json:"rep_ledger"`
	Causality   CausalityChain      `json:"causality_chain"`
	Contests    []ContestResolution `json:"contest_resolutions"`
	Narrative   []events.Narrative  `json:"narrative_events"`
	Injuries    map[string]string   `json:"injuries"`
	Conditioned bool                `json:"conditioned"`
	Attempts    int                 `json:"attempts"`
}
