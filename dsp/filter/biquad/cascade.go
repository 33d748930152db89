package biquad

import (
	"sync"

	"github.com/cwbudde/algo-opto/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"

	_ "github.com/cwbudde/algo-opto/dsp/filter/biquad/internal/arch/generic" // portable kernel
)

var (
	kernel     registry.Kernel
	kernelOnce sync.Once
)

func selectKernel() {
	k, ok := registry.Kernels.Select(cpu.DetectFeatures())
	if !ok || k.Run == nil {
		panic("biquad: no cascade kernel registered")
	}

	kernel = k
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	kernelOnce.Do(selectKernel)

	return kernel.Name
}

// Cascade is a fixed number of DF-II-T sections in series. Each section
// keeps its own delay line:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// The zero-coefficient cascade outputs silence.
type Cascade struct {
	coeffs []registry.Coefficients
	state  [][2]float64
}

// NewCascade returns n zeroed sections. n below 1 yields one section.
func NewCascade(n int) *Cascade {
	n = max(n, 1)

	return &Cascade{
		coeffs: make([]registry.Coefficients, n),
		state:  make([][2]float64, n),
	}
}

// SetCoefficients loads k into every section. Delay lines are kept so a
// parameter change does not restart the filter.
func (c *Cascade) SetCoefficients(k Coefficients) {
	for i := range c.coeffs {
		c.coeffs[i] = registry.Coefficients(k)
	}
}

// SetSection loads k into section i only.
func (c *Cascade) SetSection(i int, k Coefficients) {
	c.coeffs[i] = registry.Coefficients(k)
}

// Coefficients returns the coefficients of section i.
func (c *Cascade) Coefficients(i int) Coefficients {
	return Coefficients(c.coeffs[i])
}

// ProcessSample runs one sample through every section.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.coeffs {
		k := &c.coeffs[i]
		d := &c.state[i]

		y := k.B0*x + d[0]
		d[0] = k.B1*x - k.A1*y + d[1]
		d[1] = k.B2*x - k.A2*y
		x = y
	}

	return x
}

// ProcessBlock filters buf in place. It does not allocate.
func (c *Cascade) ProcessBlock(buf []float64) {
	kernelOnce.Do(selectKernel)
	kernel.Run(c.coeffs, c.state, buf)
}

// Reset zeroes the delay lines and keeps the coefficients.
func (c *Cascade) Reset() {
	clear(c.state)
}

// Clear zeroes delay lines and coefficients.
func (c *Cascade) Clear() {
	clear(c.state)
	clear(c.coeffs)
}

// Order is twice the section count.
func (c *Cascade) Order() int { return 2 * len(c.coeffs) }

// Sections returns the section count.
func (c *Cascade) Sections() int { return len(c.coeffs) }

// State returns a copy of the delay lines.
func (c *Cascade) State() [][2]float64 {
	return append([][2]float64(nil), c.state...)
}

// SetState restores delay lines saved with State. Missing entries leave the
// remaining sections untouched.
func (c *Cascade) SetState(s [][2]float64) {
	copy(c.state, s)
}

// MagnitudeDB is the summed section gain at freqHz in dB.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 0.0
	for i := range c.coeffs {
		db += Coefficients(c.coeffs[i]).MagnitudeDB(freqHz, sampleRate)
	}

	return db
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response. The running state is restored afterwards.
func (c *Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	c.Reset()

	ir := make([]float64, n)
	ir[0] = 1
	c.ProcessBlock(ir)

	return ir
}
