package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-opto/dsp/core"
)

// Tone is a sine source that keeps its phase across Fill calls, so a
// signal delivered block by block equals the same signal generated at once.
type Tone struct {
	cfg       core.ProcessorConfig
	freqHz    float64
	amplitude float64
	step      float64
	pos       int64
}

// NewTone creates a tone of the given frequency and peak amplitude. The
// sample rate comes from opts and defaults to core.DefaultProcessorConfig.
func NewTone(freqHz, amplitude float64, opts ...core.ProcessorOption) (*Tone, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	if !(freqHz >= 0) || freqHz >= cfg.SampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in [0, %g): %f", cfg.SampleRate/2, freqHz)
	}

	if !(amplitude >= 0) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("tone amplitude must be >= 0: %f", amplitude)
	}

	return &Tone{
		cfg:       cfg,
		freqHz:    freqHz,
		amplitude: amplitude,
		step:      2 * math.Pi * freqHz / cfg.SampleRate,
	}, nil
}

// NewToneDB is NewTone with the peak given in dB relative to full scale.
func NewToneDB(freqHz, levelDB float64, opts ...core.ProcessorOption) (*Tone, error) {
	return NewTone(freqHz, core.DBToLinear(levelDB), opts...)
}

// Fill writes the next len(dst) samples.
func (t *Tone) Fill(dst []float64) {
	for i := range dst {
		dst[i] = t.amplitude * math.Sin(t.step*float64(t.pos))
		t.pos++
	}
}

// Reset rewinds the tone to phase 0.
func (t *Tone) Reset() { t.pos = 0 }

// Position returns the number of samples produced since the last Reset.
func (t *Tone) Position() int64 { return t.pos }

// Frequency returns the frequency in Hz.
func (t *Tone) Frequency() float64 { return t.freqHz }

// Amplitude returns the peak amplitude.
func (t *Tone) Amplitude() float64 { return t.amplitude }

// SampleRate returns the sample rate in Hz.
func (t *Tone) SampleRate() float64 { return t.cfg.SampleRate }
