package dynamics

import (
	"math"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/filter/sidechain"
)

// GainSmoothingMs is the time constant of the applied-gain smoother.
const GainSmoothingMs = 1.0

// LaneParams are the controls a lane reads once per block.
type LaneParams struct {
	PeakReduction float64
	Gain          float64
	Mode          RatioMode
	LowPass       sidechain.Settings
	HighPass      sidechain.Settings
}

// Lane is one independent detector and gain path. The audio sample is
// scaled by the smoothed gain; the detector hears a rectified copy shaped
// by the sidechain filter.
//
// Lane is not safe for concurrent use.
type Lane struct {
	sampleRate float64

	sidechain *sidechain.Filter
	detector  *Detector
	computer  GainComputer

	makeup    float64
	gain      float64
	gainCoeff float64
}

// NewLane returns a lane in its quiescent state.
func NewLane(sampleRate float64) *Lane {
	l := &Lane{
		sampleRate: sampleRate,
		sidechain:  sidechain.New(sampleRate),
		detector:   NewDetector(sampleRate),
		gainCoeff:  core.SmoothingCoeff(sampleRate, GainSmoothingMs),
	}
	l.Reset()
	l.Configure(LaneParams{})
	return l
}

// Configure applies block-rate controls: detector times from the ratio mode,
// the static curve, makeup and sidechain coefficients.
func (l *Lane) Configure(p LaneParams) {
	s := p.Mode.Settings()
	l.detector.SetTimes(s.AttackMs, s.ReleaseMs)
	l.computer = NewGainComputer(p.PeakReduction, p.Mode)
	l.makeup = MakeupFromGain(p.Gain)
	l.sidechain.Configure(p.LowPass, p.HighPass)
}

// ProcessSample runs one sample through detector, curve and smoother and
// returns the scaled sample. NaN and infinite samples are treated as
// silence so they cannot enter the detector or downstream filter state.
func (l *Lane) ProcessSample(x float64) float64 {
	if !core.IsFinite(x) {
		x = 0
	}

	env := l.detector.Process(l.sidechain.ProcessSample(math.Abs(x)))
	target := core.DBToLinear(-l.computer.Reduction(env)) * l.makeup
	l.gain += (target - l.gain) * l.gainCoeff

	return x * l.gain
}

// ProcessBlock applies the lane to buf in place.
func (l *Lane) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = l.ProcessSample(x)
	}
}

// Gain returns the current smoothed linear gain including makeup.
func (l *Lane) Gain() float64 { return l.gain }

// Makeup returns the linear makeup factor of the last Configure.
func (l *Lane) Makeup() float64 { return l.makeup }

// Envelope returns the detector envelope.
func (l *Lane) Envelope() float64 { return l.detector.Envelope() }

// Computer returns the static curve of the last Configure.
func (l *Lane) Computer() GainComputer { return l.computer }

// Sidechain returns the detector filter.
func (l *Lane) Sidechain() *sidechain.Filter { return l.sidechain }

// GainReductionDB returns 20*log10(makeup/gain), floored at 0.
func (l *Lane) GainReductionDB() float64 {
	if !(l.gain > 0) {
		return 0
	}

	return max(core.LinearToDB(l.makeup/l.gain), 0)
}

// Reset restores envelope 0 and gain 1, and clears the sidechain filter
// including its coefficient cache.
func (l *Lane) Reset() {
	l.detector.Reset()
	l.sidechain.Reset()
	l.gain = 1
}
