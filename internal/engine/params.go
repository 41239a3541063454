package engine

// Params are the tuned resolution constants. They are designed
// approximations with no documented derivation, so they are carried as
// named overridable values rather than inferred statistical targets.
type Params struct {
	// Discipline-risk cutoffs for penalty evaluation.
	DPIRiskThreshold     float64
	HoldingRiskThreshold float64
	DPIYards             int
	HoldingYards         int

	// Run outcome shape.
	RunBlockYardScale  float64
	RunFinishYardScale float64
	RunNoiseYards      float64

	// Pass outcome shape.
	PassCompletionBase    float64
	PassCompletionFloor   float64
	PassCompletionCeiling float64
	PassAirYardScale      float64
	PassNoiseYards        float64
	SackYardsMax          int
	InterceptionPressure  float64
	FumbleScale           float64

	// Kicking game shape.
	PuntGrossBase      float64
	PuntGrossScale     float64
	ReturnBase         float64
	ReturnAbilityScale float64
	CoverageScale      float64
	ReturnTDBase       float64
	ReturnTDScale      float64
	KickMakeScale      float64
	KickBlockRelief    float64
	KickDistanceSlope  float64
	KickMakeFloor      float64
	KickMakeCeiling    float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		DPIRiskThreshold:     0.30,
		HoldingRiskThreshold: 0.40,
		DPIYards:             15,
		HoldingYards:         10,

		RunBlockYardScale:  16,
		RunFinishYardScale: 5,
		RunNoiseYards:      4,

		PassCompletionBase:    0.25,
		PassCompletionFloor:   0.03,
		PassCompletionCeiling: 0.97,
		PassAirYardScale:      14,
		PassNoiseYards:        8,
		SackYardsMax:          5,
		InterceptionPressure:  0.7,
		FumbleScale:           0.35,

		PuntGrossBase:      28,
		PuntGrossScale:     36,
		ReturnBase:         8,
		ReturnAbilityScale: 24,
		CoverageScale:      14,
		ReturnTDBase:       0.01,
		ReturnTDScale:      0.18,
		KickMakeScale:      0.85,
		KickBlockRelief:    0.3,
		KickDistanceSlope:  80,
		KickMakeFloor:      0.02,
		KickMakeCeiling:    0.99,
	}
}
