package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients describe one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Response evaluates H at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z := cmplx.Rect(1, 2*math.Pi*freqHz/sampleRate)

	num := (complex(c.B0, 0)*z+complex(c.B1, 0))*z + complex(c.B2, 0)
	den := (z+complex(c.A1, 0))*z + complex(c.A2, 0)

	return num / den
}

// MagnitudeSquared returns |H|^2 at freqHz without complex arithmetic.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	c1, c2 := math.Cos(w), math.Cos(2*w)

	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 + 2*(c.B0*c.B1+c.B1*c.B2)*c1 + 2*c.B0*c.B2*c2
	den := 1 + c.A1*c.A1 + c.A2*c.A2 + 2*(c.A1+c.A1*c.A2)*c1 + 2*c.A2*c2

	return num / den
}

// MagnitudeDB returns the section gain at freqHz in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return c.A2 < 1 && c.A2 > -1 && math.Abs(c.A1) < 1+c.A2
}
