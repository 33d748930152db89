package dynamics

import (
	"math"

	"github.com/cwbudde/algo-opto/dsp/core"
)

// Detector is a peak envelope follower with separate attack and release
// coefficients. The envelope persists across blocks and only returns to
// zero on Reset.
type Detector struct {
	sampleRate   float64
	attackCoeff  float64
	releaseCoeff float64
	envelope     float64
}

// NewDetector returns a detector with the Ratio3 timing.
func NewDetector(sampleRate float64) *Detector {
	d := &Detector{sampleRate: sampleRate}
	s := Ratio3.Settings()
	d.SetTimes(s.AttackMs, s.ReleaseMs)
	return d
}

// SetTimes recomputes the attack and release coefficients.
func (d *Detector) SetTimes(attackMs, releaseMs float64) {
	d.attackCoeff = core.SmoothingCoeff(d.sampleRate, attackMs)
	d.releaseCoeff = core.SmoothingCoeff(d.sampleRate, releaseMs)
}

// Process advances the envelope by one detector sample and returns it.
// The input is rectified, so a filtered detector signal with negative
// excursions still drives a non-negative envelope.
func (d *Detector) Process(x float64) float64 {
	x = math.Abs(x)
	if x > d.envelope {
		d.envelope += (x - d.envelope) * d.attackCoeff
	} else {
		d.envelope += (x - d.envelope) * d.releaseCoeff
	}

	d.envelope = core.FlushDenormals(d.envelope)
	return d.envelope
}

// Envelope returns the current envelope (linear amplitude).
func (d *Detector) Envelope() float64 { return d.envelope }

// Reset returns the envelope to zero.
func (d *Detector) Reset() {
	d.envelope = 0
}
