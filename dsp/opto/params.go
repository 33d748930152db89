package opto

import (
	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
	"github.com/cwbudde/algo-opto/dsp/filter/design"
	"github.com/cwbudde/algo-opto/dsp/filter/sidechain"
)

const (
	// DefaultSidechainLowPassHz is the low-pass cutoff of DefaultParams.
	DefaultSidechainLowPassHz = 10000.0
	// DefaultSidechainHighPassHz is the high-pass cutoff of DefaultParams.
	DefaultSidechainHighPassHz = 80.0
)

// Params are the controls read once per block.
type Params struct {
	// PeakReduction in [0,1] maps to a threshold of -60..-10 dB.
	PeakReduction float64
	// Gain in [0,1] maps to 0..12 dB of makeup.
	Gain float64

	Bypass    bool
	MidSide   bool
	RatioMode dynamics.RatioMode

	SidechainLowPass  sidechain.Settings
	SidechainHighPass sidechain.Settings
}

// DefaultParams returns mid-scale peak reduction, no makeup, 3:1 and both
// sidechain filters off.
func DefaultParams() Params {
	return Params{
		PeakReduction: 0.5,
		RatioMode:     dynamics.Ratio3,
		SidechainLowPass: sidechain.Settings{
			FreqHz: DefaultSidechainLowPassHz,
			Q:      design.ButterworthQ,
		},
		SidechainHighPass: sidechain.Settings{
			FreqHz: DefaultSidechainHighPassHz,
			Q:      design.ButterworthQ,
		},
	}
}

func (p Params) lane() dynamics.LaneParams {
	return dynamics.LaneParams{
		PeakReduction: p.PeakReduction,
		Gain:          p.Gain,
		Mode:          p.RatioMode.Clamp(),
		LowPass:       p.SidechainLowPass,
		HighPass:      p.SidechainHighPass,
	}
}

// Meters are the per-block outputs reported to the host.
type Meters struct {
	OutputRMSDB     float64
	GainReductionDB float64
}
