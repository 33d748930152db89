package sidechain

import (
	"math"

	"github.com/cwbudde/algo-opto/dsp/filter/biquad"
	"github.com/cwbudde/algo-opto/dsp/filter/design"
)

const (
	// Sections is the number of cascaded biquads per bank (6th order).
	Sections = 3
	// Tolerance is the change in frequency or Q that triggers a recompute.
	Tolerance = 1e-6
)

// Settings is the control state of one bank.
type Settings struct {
	Enabled bool
	FreqHz  float64
	Q       float64
}

// Bank is a cascade of identical low-pass or high-pass sections with a
// coefficient cache.
type Bank struct {
	kind       design.Kind
	sampleRate float64
	cascade    *biquad.Cascade
	enabled    bool

	lastFreq float64
	lastQ    float64
	valid    bool
	updates  int
}

// NewBank returns a disabled bank of the given kind.
func NewBank(kind design.Kind, sampleRate float64) *Bank {
	return &Bank{
		kind:       kind,
		sampleRate: sampleRate,
		cascade:    biquad.NewCascade(Sections),
	}
}

// Configure applies s. Coefficients are recomputed when the cache is invalid
// or when frequency or Q changed by more than Tolerance. History is kept.
func (b *Bank) Configure(s Settings) {
	b.enabled = s.Enabled
	if b.valid &&
		math.Abs(s.FreqHz-b.lastFreq) <= Tolerance &&
		math.Abs(s.Q-b.lastQ) <= Tolerance {
		return
	}

	b.cascade.SetCoefficients(design.Compute(b.kind, b.sampleRate, s.FreqHz, s.Q))
	b.lastFreq = s.FreqHz
	b.lastQ = s.Q
	b.valid = true
	b.updates++
}

// ProcessSample filters x when the bank is enabled and passes it through
// otherwise.
func (b *Bank) ProcessSample(x float64) float64 {
	if !b.enabled {
		return x
	}

	return b.cascade.ProcessSample(x)
}

// Enabled reports whether the bank filters its input.
func (b *Bank) Enabled() bool { return b.enabled }

// Kind returns the response type of the bank.
func (b *Bank) Kind() design.Kind { return b.kind }

// Cascade returns the underlying cascade for inspection.
func (b *Bank) Cascade() *biquad.Cascade { return b.cascade }

// Updates returns how many times coefficients have been computed.
func (b *Bank) Updates() int { return b.updates }

// Invalidate forces a coefficient recompute on the next Configure.
func (b *Bank) Invalidate() {
	b.valid = false
}

// Reset clears history, coefficients and the cache.
func (b *Bank) Reset() {
	b.cascade.Clear()
	b.Invalidate()
}

// Filter runs the low-pass bank then the high-pass bank.
type Filter struct {
	lp *Bank
	hp *Bank
}

// New returns a filter with both banks disabled.
func New(sampleRate float64) *Filter {
	return &Filter{
		lp: NewBank(design.LowPass, sampleRate),
		hp: NewBank(design.HighPass, sampleRate),
	}
}

// Configure applies the low-pass and high-pass settings. Call once per block.
func (f *Filter) Configure(lp, hp Settings) {
	f.lp.Configure(lp)
	f.hp.Configure(hp)
}

// ProcessSample filters one detector sample.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.hp.ProcessSample(f.lp.ProcessSample(x))
}

// LowPass returns the low-pass bank.
func (f *Filter) LowPass() *Bank { return f.lp }

// HighPass returns the high-pass bank.
func (f *Filter) HighPass() *Bank { return f.hp }

// Invalidate forces both banks to recompute coefficients on the next Configure.
func (f *Filter) Invalidate() {
	f.lp.Invalidate()
	f.hp.Invalidate()
}

// Reset clears both banks.
func (f *Filter) Reset() {
	f.lp.Reset()
	f.hp.Reset()
}
