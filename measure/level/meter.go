package level

import (
	"math"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Meter tracks smoothed stereo output RMS and the gain-reduction display.
type Meter struct {
	sampleRate float64
	timeMs     float64

	rms   float64
	grDB  float64
	block float64
}

// NewMeter creates a meter in its quiescent state.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{
		sampleRate: cfg.SampleRate,
		timeMs:     cfg.TimeMs,
	}
	m.Reset()

	return m
}

// Update folds one block of output into the smoothed RMS:
//
//	block = sqrt((sum(l^2) + sum(r^2)) / 2n)
//	rms  += (block - rms) * (1 - exp(-n / (fs * t)))
//
// Only the common prefix of left and right is measured. An empty block
// leaves the meter unchanged.
func (m *Meter) Update(left, right []float64) {
	n := min(len(left), len(right))
	if n == 0 {
		return
	}

	left, right = left[:n], right[:n]
	energy := vecmath.DotProduct(left, left) + vecmath.DotProduct(right, right)

	m.block = math.Sqrt(energy / float64(2*n))
	if !core.IsFinite(m.block) {
		m.block = 0
	}

	alpha := core.BlockSmoothingCoeff(m.sampleRate, m.timeMs, n)
	m.rms = core.FlushDenormals(m.rms + (m.block-m.rms)*alpha)
}

// SetGainReduction stores the display value: the largest of the given lane
// reductions, floored at 0 dB.
func (m *Meter) SetGainReduction(lanesDB ...float64) {
	gr := 0.0

	for _, v := range lanesDB {
		if v > gr {
			gr = v
		}
	}

	m.grDB = gr
}

// RMS returns the smoothed linear RMS.
func (m *Meter) RMS() float64 { return m.rms }

// BlockRMS returns the unsmoothed RMS of the last measured block.
func (m *Meter) BlockRMS() float64 { return m.block }

// DB returns the smoothed RMS in dB, floored at core.FloorDB.
func (m *Meter) DB() float64 { return core.LinearToDB(m.rms) }

// GainReductionDB returns the gain-reduction display value.
func (m *Meter) GainReductionDB() float64 { return m.grDB }

// SampleRate returns the configured sample rate.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// Reset returns the meter to the floor reading with no gain reduction.
func (m *Meter) Reset() {
	m.rms = core.FloorAmplitude
	m.block = 0
	m.grDB = 0
}
