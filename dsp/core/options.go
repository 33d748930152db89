package core

import (
	"errors"
	"fmt"
)

// Host defaults used when no option overrides them.
const (
	DefaultSampleRate   = 48000.0
	DefaultMaxBlockSize = 1024
)

// ErrConfig marks an invalid ProcessorConfig.
var ErrConfig = errors.New("invalid processor config")

// ProcessorConfig carries the host settings every stage is built from.
type ProcessorConfig struct {
	SampleRate float64
	// MaxBlockSize is the largest block the host promises to deliver.
	// Scratch buffers are sized from it up front.
	MaxBlockSize int
}

// ProcessorOption adjusts a ProcessorConfig. Out-of-range values are
// ignored and leave the previous setting in place.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz with 1024-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate, MaxBlockSize: DefaultMaxBlockSize}
}

// WithSampleRate sets a positive, finite sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithMaxBlockSize sets a positive maximum block size.
func WithMaxBlockSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n > 0 {
			cfg.MaxBlockSize = n
		}
	}
}

// ApplyProcessorOptions starts from DefaultProcessorConfig and applies opts
// in order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports a non-positive or non-finite sample rate and a
// non-positive block size.
func (c ProcessorConfig) Validate() error {
	if !(c.SampleRate > 0) || !IsFinite(c.SampleRate) {
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrConfig, c.SampleRate)
	}

	if c.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: max block size must be > 0: %d", ErrConfig, c.MaxBlockSize)
	}

	return nil
}
