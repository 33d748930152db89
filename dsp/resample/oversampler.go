package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/filter/biquad"
	"github.com/cwbudde/algo-opto/dsp/filter/design"
)

var (
	// ErrInvalidFactor indicates an unsupported oversampling factor.
	ErrInvalidFactor = errors.New("resample: oversampling factor must be 1, 2, 4 or 8")
	// ErrInvalidRate indicates an invalid base sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrScratchLimit indicates that a block could not be oversampled
	// because its scratch buffer could not be provided.
	ErrScratchLimit = errors.New("resample: scratch buffer unavailable")
)

const (
	// DefaultFactor is the oversampling factor used when none is chosen.
	DefaultFactor = 4
	// FilterSections is the number of biquads in each anti-imaging and
	// anti-aliasing cascade.
	FilterSections = 3
	// DefaultScratchLimit is the largest scratch buffer, in samples, that
	// Process will allocate.
	DefaultScratchLimit = 1 << 22

	defaultMaxBlockSize = 1024
)

// Shaper is a memoryless or stateful per-sample nonlinearity.
type Shaper interface {
	ProcessSample(x float64) float64
}

// ShaperFunc adapts a plain function to Shaper.
type ShaperFunc func(x float64) float64

// ProcessSample calls f(x).
func (f ShaperFunc) ProcessSample(x float64) float64 { return f(x) }

type config struct {
	logger       logrus.FieldLogger
	maxBlockSize int
	scratchLimit int
}

// Option configures an Oversampler.
type Option func(*config)

// WithLogger sets the logger used for scratch growth and fallback events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxBlockSize pre-sizes the scratch buffer for blocks up to n samples.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxBlockSize = n
		}
	}
}

// WithScratchLimit caps the scratch buffer at n oversampled samples.
func WithScratchLimit(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.scratchLimit = n
		}
	}
}

func defaultConfig() config {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return config{
		logger:       logger,
		maxBlockSize: defaultMaxBlockSize,
		scratchLimit: DefaultScratchLimit,
	}
}

// Oversampler runs a Shaper at factor times the base sample rate.
//
// Oversampler is not safe for concurrent use. Each audio lane needs its
// own instance because the filter cascades carry history.
type Oversampler struct {
	sampleRate float64
	factor     int

	interp *biquad.Cascade
	decim  *biquad.Cascade

	scratch      []float64
	scratchLimit int
	grows        int

	logger logrus.FieldLogger
}

// ValidFactor reports whether factor is a supported oversampling factor.
func ValidFactor(factor int) bool {
	switch factor {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// New creates an oversampler for the given base sample rate and factor.
func New(sampleRate float64, factor int, opts ...Option) (*Oversampler, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRate, sampleRate)
	}
	if !ValidFactor(factor) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	o := &Oversampler{
		sampleRate:   sampleRate,
		factor:       factor,
		interp:       biquad.NewCascade(FilterSections),
		decim:        biquad.NewCascade(FilterSections),
		scratchLimit: cfg.scratchLimit,
		logger:       cfg.logger,
	}
	o.designFilters()

	if factor > 1 {
		n := min(cfg.maxBlockSize*factor, cfg.scratchLimit)
		o.scratch = make([]float64, n)
	}

	return o, nil
}

func (o *Oversampler) designFilters() {
	c := design.Compute(design.LowPass, o.OversampledRate(), o.sampleRate/2, design.ButterworthQ)
	o.interp.SetCoefficients(c)
	o.decim.SetCoefficients(c)
}

// Process runs shaper over buf in place at the oversampled rate.
//
// If the scratch buffer cannot hold the block, buf is left untouched and an
// error wrapping ErrScratchLimit is returned.
func (o *Oversampler) Process(buf []float64, shaper Shaper) error {
	if len(buf) == 0 {
		return nil
	}

	if o.factor == 1 {
		for i, x := range buf {
			buf[i] = shaper.ProcessSample(x)
		}
		return nil
	}

	n := o.factor
	work, err := o.ensureScratch(len(buf) * n)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"function": "Oversampler.Process",
			"samples":  len(buf),
			"factor":   n,
			"error":    err,
		}).Error("Oversampling unavailable, passing block through")
		return err
	}

	for i, x := range buf {
		group := work[i*n : i*n+n]
		for j := range group {
			group[j] = x
		}
	}

	o.interp.ProcessBlock(work)
	for i, x := range work {
		work[i] = shaper.ProcessSample(x)
	}
	o.decim.ProcessBlock(work)

	for i := range buf {
		buf[i] = work[i*n+n-1]
	}

	return nil
}

func (o *Oversampler) ensureScratch(size int) (work []float64, err error) {
	if size <= cap(o.scratch) {
		return o.scratch[:size], nil
	}

	if size > o.scratchLimit {
		return nil, fmt.Errorf("%w: need %d samples, limit %d", ErrScratchLimit, size, o.scratchLimit)
	}

	defer func() {
		if r := recover(); r != nil {
			work = nil
			err = fmt.Errorf("%w: allocation of %d samples failed: %v", ErrScratchLimit, size, r)
		}
	}()

	o.scratch, _ = core.Grow(o.scratch, size)
	o.grows++

	o.logger.WithFields(logrus.Fields{
		"function": "Oversampler.Process",
		"samples":  size,
		"factor":   o.factor,
	}).Warn("Oversampling scratch buffer grown")

	return o.scratch[:size], nil
}

// Factor returns the oversampling factor.
func (o *Oversampler) Factor() int { return o.factor }

// SampleRate returns the base sample rate in Hz.
func (o *Oversampler) SampleRate() float64 { return o.sampleRate }

// OversampledRate returns factor * base sample rate.
func (o *Oversampler) OversampledRate() float64 {
	return o.sampleRate * float64(o.factor)
}

// ScratchSize returns the scratch capacity in oversampled samples.
func (o *Oversampler) ScratchSize() int { return cap(o.scratch) }

// Grows returns how many times the scratch buffer was reallocated.
func (o *Oversampler) Grows() int { return o.grows }

// Interpolator returns the anti-imaging cascade for inspection.
func (o *Oversampler) Interpolator() *biquad.Cascade { return o.interp }

// Decimator returns the anti-aliasing cascade for inspection.
func (o *Oversampler) Decimator() *biquad.Cascade { return o.decim }

// Reset clears filter history and restores the filter design. The scratch
// buffer is kept.
func (o *Oversampler) Reset() {
	o.interp.Clear()
	o.decim.Clear()
	o.designFilters()
}
