package dynamics

import "github.com/cwbudde/algo-opto/dsp/core"

const (
	// MinThresholdDB is the threshold at zero peak reduction.
	MinThresholdDB = -60.0
	// MaxThresholdDB is the threshold at full peak reduction.
	MaxThresholdDB = -10.0
	// KneeDB is the soft-knee width.
	KneeDB = 10.0
	// MaxMakeupDB is the makeup gain at full gain control.
	MaxMakeupDB = 12.0
)

// ThresholdFromPeakReduction maps a normalized peak-reduction control in
// [0, 1] linearly onto [MinThresholdDB, MaxThresholdDB].
func ThresholdFromPeakReduction(peakReduction float64) float64 {
	pr := clampUnit(peakReduction)
	return MinThresholdDB + pr*(MaxThresholdDB-MinThresholdDB)
}

// MakeupFromGain maps a normalized gain control in [0, 1] to a linear
// makeup factor between 0 dB and MaxMakeupDB.
func MakeupFromGain(gain float64) float64 {
	return core.DBToLinear(clampUnit(gain) * MaxMakeupDB)
}

func clampUnit(v float64) float64 {
	if !core.IsFinite(v) {
		return 0
	}

	return core.Clamp(v, 0, 1)
}

// GainComputer is the static soft-knee curve. Across the knee the ratio
// ramps linearly from 1 to Ratio. Above the knee the full ratio applies and
// the curve continues from the knee end, so it is continuous at both edges.
type GainComputer struct {
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
}

// NewGainComputer returns a computer for the given controls.
func NewGainComputer(peakReduction float64, mode RatioMode) GainComputer {
	return GainComputer{
		ThresholdDB: ThresholdFromPeakReduction(peakReduction),
		KneeDB:      KneeDB,
		Ratio:       mode.Settings().Ratio,
	}
}

// ReductionDB returns the gain reduction in dB (>= 0) for a detector level
// in dB.
func (g GainComputer) ReductionDB(levelDB float64) float64 {
	over := levelDB - g.ThresholdDB
	if !(over > 0) || g.Ratio <= 1 {
		return 0
	}

	slope := 1 - 1/g.Ratio

	var reduction float64
	switch {
	case g.KneeDB <= 0:
		reduction = over * slope
	case over <= g.KneeDB:
		rEff := 1 + (g.Ratio-1)*over/g.KneeDB
		reduction = over * (1 - 1/rEff)
	default:
		reduction = g.KneeDB*slope + (over-g.KneeDB)*slope
	}

	return max(reduction, 0)
}

// Reduction returns the gain reduction in dB for a linear envelope. The
// envelope is floored at core.FloorAmplitude.
func (g GainComputer) Reduction(envelope float64) float64 {
	return g.ReductionDB(core.LinearToDB(envelope))
}

// OutputDB returns the steady-state output level for an input level,
// without makeup. Useful for plotting the transfer curve.
func (g GainComputer) OutputDB(levelDB float64) float64 {
	return levelDB - g.ReductionDB(levelDB)
}
