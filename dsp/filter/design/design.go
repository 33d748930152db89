package design

import (
	"math"

	"github.com/cwbudde/algo-opto/dsp/filter/biquad"
)

// Kind selects the response type of a designed section.
type Kind int

const (
	LowPass Kind = iota
	HighPass
)

func (k Kind) String() string {
	switch k {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	default:
		return "unknown"
	}
}

const (
	// MinCutoffHz is the lowest accepted cutoff frequency.
	MinCutoffHz = 1.0
	// MinQ is the lowest accepted quality factor.
	MinQ = 0.1
	// ButterworthQ is the Q of a maximally flat second-order section.
	ButterworthQ = 1 / math.Sqrt2

	// nyquistGuard is the fraction of the sample rate a cutoff is held below.
	nyquistGuard = 0.499
)

// Compute returns normalized RBJ cookbook coefficients for the given kind.
// Non-finite or out-of-range cutoff and Q are replaced by their floors, and
// cutoffs at or above Nyquist are pulled to 0.499*sampleRate. A non-positive
// sample rate yields a passthrough section.
func Compute(kind Kind, sampleRate, cutoffHz, q float64) biquad.Coefficients {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return biquad.Coefficients{B0: 1}
	}

	cutoffHz = sanitize(cutoffHz, MinCutoffHz)
	cutoffHz = min(cutoffHz, nyquistGuard*sampleRate)
	q = sanitize(q, MinQ)

	w0 := 2 * math.Pi * cutoffHz / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	var b0, b1, b2 float64
	switch kind {
	case HighPass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = (1 + cw) / 2
	default:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = (1 - cw) / 2
	}

	return normalizeBiquad(b0, b1, b2, 1+alpha, -2*cw, 1-alpha)
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	return Compute(LowPass, sampleRate, freq, q)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	return Compute(HighPass, sampleRate, freq, q)
}

func sanitize(v, floor float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < floor {
		return floor
	}

	return v
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
