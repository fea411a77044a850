package domain

// Dimensions is a substrate dimension triple in millimetres.
type Dimensions struct {
	LengthMM float64
	WidthMM  float64
	DepthMM  float64
}

// substrateDimensions fixes the physical dimensions per stocked size category.
var substrateDimensions = map[SubstrateSize]Dimensions{
	SizeScaleUp:     {LengthMM: 75, WidthMM: 25, DepthMM: 1.1},
	SizeSpinCoating: {LengthMM: 20, WidthMM: 10, DepthMM: 1.1},
}

// SizeDimensions returns the fixed dimension triple for a size category.
// Unknown categories report false and leave dimensions untouched by callers.
func SizeDimensions(size SubstrateSize) (Dimensions, bool) {
	d, ok := substrateDimensions[size]
	return d, ok
}

// StandardCleaningProtocol returns the fixed four-step lab cleaning sequence
// applied when a cleaning record selects the Standard procedure. Every step
// runs in the sonication bath.
func StandardCleaningProtocol() []CleaningStep {
	return []CleaningStep{
		{Agent: AgentAcetone, Sonication: true, DurationS: 5 * 60},
		{Agent: AgentHellmanex, Sonication: true, DurationS: 5 * 60},
		{Agent: AgentIPA, Sonication: true, DurationS: 5 * 60},
		{Agent: AgentNaOH, Sonication: true, DurationS: 10 * 60},
	}
}
