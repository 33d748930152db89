package dynamics

// RatioMode selects one of the coupled ratio and detector-time presets.
type RatioMode int

const (
	Ratio3 RatioMode = iota
	Ratio6
	Ratio9
	RatioLimit
)

// RatioSettings is the ratio and detector timing of one mode.
type RatioSettings struct {
	Ratio     float64
	AttackMs  float64
	ReleaseMs float64
}

var ratioTable = [...]RatioSettings{
	Ratio3:     {Ratio: 3, AttackMs: 10, ReleaseMs: 200},
	Ratio6:     {Ratio: 6, AttackMs: 5, ReleaseMs: 100},
	Ratio9:     {Ratio: 9, AttackMs: 3, ReleaseMs: 50},
	RatioLimit: {Ratio: 20, AttackMs: 1, ReleaseMs: 20},
}

// RatioModes lists all modes in ascending ratio order.
func RatioModes() []RatioMode {
	return []RatioMode{Ratio3, Ratio6, Ratio9, RatioLimit}
}

// Clamp maps out-of-range values to the nearest valid mode.
func (m RatioMode) Clamp() RatioMode {
	switch {
	case m < Ratio3:
		return Ratio3
	case m > RatioLimit:
		return RatioLimit
	default:
		return m
	}
}

// Settings returns the ratio and detector times of the (clamped) mode.
func (m RatioMode) Settings() RatioSettings {
	return ratioTable[m.Clamp()]
}

func (m RatioMode) String() string {
	switch m.Clamp() {
	case Ratio3:
		return "3:1"
	case Ratio6:
		return "6:1"
	case Ratio9:
		return "9:1"
	default:
		return "limit"
	}
}
