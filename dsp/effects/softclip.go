package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-opto/dsp/core"
)

const (
	defaultSoftClipThresholdDB = -1.0
	defaultSoftClipAmount      = 0.5

	minSoftClipThresholdDB = -24.0
	maxSoftClipAmount      = 10.0
)

// SoftClipOption mutates construction-time parameters.
type SoftClipOption func(*softClipConfig) error

type softClipConfig struct {
	thresholdDB float64
	amount      float64
}

// WithSoftClipThreshold sets the clip threshold in dBFS, in [-24, 0).
func WithSoftClipThreshold(dB float64) SoftClipOption {
	return func(cfg *softClipConfig) error {
		if dB < minSoftClipThresholdDB || dB >= 0 || math.IsNaN(dB) {
			return fmt.Errorf("soft clip threshold must be in [%g, 0): %f", minSoftClipThresholdDB, dB)
		}

		cfg.thresholdDB = dB

		return nil
	}
}

// WithSoftClipAmount sets the curve steepness in (0, 10].
func WithSoftClipAmount(amount float64) SoftClipOption {
	return func(cfg *softClipConfig) error {
		if !(amount > 0) || amount > maxSoftClipAmount {
			return fmt.Errorf("soft clip amount must be in (0, %g]: %f", maxSoftClipAmount, amount)
		}

		cfg.amount = amount

		return nil
	}
}

// SoftClipper is the final safety limiter. Samples at or below the
// threshold T pass unchanged; above it the excess approaches full scale
// exponentially:
//
//	norm    = (|x| - T) / (1 - T)
//	clipped = T + (1 - T)(1 - exp(-amount*norm))
//
// The output magnitude never exceeds 1.
type SoftClipper struct {
	thresholdDB float64
	threshold   float64
	amount      float64
}

// NewSoftClipper creates a clipper at -1 dBFS with amount 0.5.
func NewSoftClipper(opts ...SoftClipOption) (*SoftClipper, error) {
	cfg := softClipConfig{
		thresholdDB: defaultSoftClipThresholdDB,
		amount:      defaultSoftClipAmount,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &SoftClipper{
		thresholdDB: cfg.thresholdDB,
		threshold:   core.DBToLinear(cfg.thresholdDB),
		amount:      cfg.amount,
	}, nil
}

// ProcessSample clips one sample.
func (s *SoftClipper) ProcessSample(input float64) float64 {
	mag := math.Abs(input)
	if mag <= s.threshold {
		return input
	}

	norm := (mag - s.threshold) / (1 - s.threshold)
	clipped := s.threshold + (1-s.threshold)*(1-math.Exp(-s.amount*norm))

	return math.Copysign(min(clipped, 1), input)
}

// ProcessInPlace clips buf in place.
func (s *SoftClipper) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = s.ProcessSample(buf[i])
	}
}

// ThresholdDB returns the threshold in dBFS.
func (s *SoftClipper) ThresholdDB() float64 { return s.thresholdDB }

// Threshold returns the linear threshold.
func (s *SoftClipper) Threshold() float64 { return s.threshold }

// Amount returns the curve steepness.
func (s *SoftClipper) Amount() float64 { return s.amount }
