// Package generic registers the portable cascade kernel.
package generic

import (
	"github.com/cwbudde/algo-opto/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Kernels.Add(registry.Kernel{
		Name:  "generic",
		Level: cpu.SIMDNone,
		Run:   runCascade,
	})
}

// runCascade carries each sample through all sections before reading the
// next one, so the delay lines stay in registers for short cascades.
func runCascade(coeffs []registry.Coefficients, state [][2]float64, buf []float64) {
	n := min(len(coeffs), len(state))

	for i, x := range buf {
		for s := range n {
			c := &coeffs[s]
			d := &state[s]

			y := c.B0*x + d[0]
			d[0] = c.B1*x - c.A1*y + d[1]
			d[1] = c.B2*x - c.A2*y
			x = y
		}

		buf[i] = x
	}
}
