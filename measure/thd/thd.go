// Package thd measures harmonic and alias distortion of a single tone.
//
// All figures are power ratios taken over capture windows around the
// spectral lines of interest, reported as RMS amplitude ratios.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-opto/dsp/window"
)

const (
	defaultLowerHz = 20.0
	defaultUpperHz = 20000.0
)

// ErrFFTSize is returned when the analysis frame cannot be transformed.
var ErrFFTSize = errors.New("thd: FFT size must be at least 2")

// Config describes one analysis.
//
// FFTSize 0 selects the next power of two of the signal length.
// FundamentalFreq 0 picks the strongest bin inside the range.
// CaptureBins 0 uses the main-lobe half width of the window.
// MaxHarmonics 0 collects every harmonic inside the range.
type Config struct {
	SampleRate      float64
	FFTSize         int
	FundamentalFreq float64
	RangeLowerFreq  float64
	RangeUpperFreq  float64
	CaptureBins     int
	MaxHarmonics    int
	WindowType      window.Type
}

// Result holds the measured ratios. The *_dB fields are -Inf for a zero
// ratio.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64

	// Harmonics lists the amplitude ratio of H2, H3, ... to the
	// fundamental.
	Harmonics []float64

	THD    float64
	THD_dB float64

	// THDN covers every in-range line except DC and the fundamental.
	THDN    float64
	THDN_dB float64
	SINAD   float64

	// Alias covers in-range content that is neither DC, the fundamental
	// nor one of its harmonics. For a tone through a nonlinearity this is
	// the distortion folded back across Nyquist.
	Alias    float64
	Alias_dB float64
}

// Analyzer owns the FFT plan, window and scratch for one frame size.
type Analyzer struct {
	cfg   Config
	plan  *algofft.Plan[complex128]
	coefs []float64
	in    []complex128
	out   []complex128
	power []float64
}

// NewAnalyzer prepares an analyzer for cfg. cfg.FFTSize must be set.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg = normalize(cfg)
	if cfg.FFTSize < 2 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, cfg.FFTSize)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("thd: plan %d: %w", cfg.FFTSize, err)
	}

	return &Analyzer{
		cfg:   cfg,
		plan:  plan,
		in:    make([]complex128, cfg.FFTSize),
		out:   make([]complex128, cfg.FFTSize),
		power: make([]float64, cfg.FFTSize/2+1),
	}, nil
}

// AnalyzeSignal is a one-shot analysis of a time-domain frame. It returns
// the zero Result when the frame cannot be analyzed.
func AnalyzeSignal(signal []float64, cfg Config) Result {
	if len(signal) == 0 {
		return Result{}
	}

	if cfg.FFTSize <= 0 {
		cfg.FFTSize = nextPowerOf2(len(signal))
	}

	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}
	}

	res, err := a.Analyze(signal)
	if err != nil {
		return Result{}
	}

	return res
}

// Analyze windows signal, zero-pads or truncates it to the frame size and
// evaluates the spectrum.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	n := min(len(signal), a.cfg.FFTSize)
	if len(a.coefs) != n {
		a.coefs = window.Generate(a.cfg.WindowType, n, window.WithPeriodic())
	}

	clear(a.in)

	for i := range n {
		w := 1.0
		if len(a.coefs) == n {
			w = a.coefs[i]
		}

		a.in[i] = complex(signal[i]*w, 0)
	}

	err := a.plan.Forward(a.out, a.in)
	if err != nil {
		return Result{}, fmt.Errorf("thd: forward transform: %w", err)
	}

	for i := range a.power {
		x := a.out[i]
		a.power[i] = real(x)*real(x) + imag(x)*imag(x)
	}

	return a.AnalyzePower(a.power), nil
}

// AnalyzePower evaluates a one-sided power spectrum holding bins
// [0, FFTSize/2].
func (a *Analyzer) AnalyzePower(power []float64) Result {
	return analyzePower(power, a.cfg)
}

// AnalyzePower is the one-shot form of Analyzer.AnalyzePower. A zero
// FFTSize is derived from len(power).
func AnalyzePower(power []float64, cfg Config) Result {
	cfg = normalize(cfg)
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 2 * (len(power) - 1)
	}

	return analyzePower(power, cfg)
}

func analyzePower(power []float64, cfg Config) Result {
	if len(power) < 2 || cfg.FFTSize < 2 {
		return Result{}
	}

	sr := cfg.SampleRate
	if sr <= 0 {
		sr = float64(cfg.FFTSize)
	}

	binHz := sr / float64(cfg.FFTSize)
	last := len(power) - 1
	lo := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, last)
	hi := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lo, last)

	fund := lo
	if cfg.FundamentalFreq > 0 {
		fund = clampInt(int(math.Round(cfg.FundamentalFreq/binHz)), lo, hi)
	} else {
		for i := lo + 1; i <= hi; i++ {
			if power[i] > power[fund] {
				fund = i
			}
		}
	}

	capture := cfg.CaptureBins
	if capture == 0 {
		capture = window.Info(cfg.WindowType).FirstMinimumBins
	}

	capture = min(capture, fund/2)

	res := Result{FundamentalFreq: float64(fund) * binHz}

	pFund := bandPower(power, fund, capture)
	if pFund <= 0 {
		return res
	}

	res.FundamentalLevel = math.Sqrt(pFund)

	pHarm := 0.0
	for k := 2; k*fund <= hi; k++ {
		if cfg.MaxHarmonics > 0 && k-1 > cfg.MaxHarmonics {
			break
		}

		p := bandPower(power, k*fund, capture)
		pHarm += p
		res.Harmonics = append(res.Harmonics, math.Sqrt(p/pFund))
	}

	pRest, pAlias := 0.0, 0.0

	for i := lo; i <= hi; i++ {
		if i <= capture || absInt(i-fund) <= capture {
			continue
		}

		p := max(power[i], 0)
		pRest += p

		k := (i + fund/2) / fund
		if k >= 1 && absInt(i-k*fund) <= capture {
			continue
		}

		pAlias += p
	}

	res.THD = math.Sqrt(pHarm / pFund)
	res.THDN = math.Sqrt(pRest / pFund)
	res.Alias = math.Sqrt(pAlias / pFund)
	res.THD_dB = ratioToDB(res.THD)
	res.THDN_dB = ratioToDB(res.THDN)
	res.Alias_dB = ratioToDB(res.Alias)
	res.SINAD = -res.THDN_dB

	return res
}

// bandPower sums bins [center-capture, center+capture] clipped to the
// spectrum.
func bandPower(power []float64, center, capture int) float64 {
	if center < 0 || center >= len(power) {
		return 0
	}

	sum := 0.0
	for i := max(center-capture, 0); i <= min(center+capture, len(power)-1); i++ {
		sum += max(power[i], 0)
	}

	return sum
}

func normalize(cfg Config) Config {
	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultUpperHz
	}

	cfg.RangeUpperFreq = max(cfg.RangeUpperFreq, cfg.RangeLowerFreq)

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	cfg.CaptureBins = max(cfg.CaptureBins, 0)
	cfg.MaxHarmonics = max(cfg.MaxHarmonics, 0)

	return cfg
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
