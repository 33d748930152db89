package opto

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/effects"
	"github.com/cwbudde/algo-opto/dsp/resample"
)

// Option configures a Processor at construction.
type Option func(*config) error

type config struct {
	core.ProcessorConfig

	oversampling int
	scratchLimit int
	logger       logrus.FieldLogger
	jfet         []effects.JFETOption
	clip         []effects.SoftClipOption
}

func defaultConfig(sampleRate float64) config {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return config{
		ProcessorConfig: core.ProcessorConfig{SampleRate: sampleRate, MaxBlockSize: core.DefaultMaxBlockSize},
		oversampling:    resample.DefaultFactor,
		scratchLimit:    resample.DefaultScratchLimit,
		logger:          logger,
	}
}

// WithMaxBlockSize sets the largest block the host is expected to deliver.
// Lane buffers and oversampling scratch are sized from it.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("opto max block size must be > 0: %d", n)
		}

		cfg.MaxBlockSize = n

		return nil
	}
}

// WithOversampling sets the saturation oversampling factor: 1, 2, 4 or 8.
// A factor of 1 runs the saturation stage at the base rate.
func WithOversampling(factor int) Option {
	return func(cfg *config) error {
		if !resample.ValidFactor(factor) {
			return fmt.Errorf("opto oversampling factor must be 1, 2, 4 or 8: %d", factor)
		}

		cfg.oversampling = factor

		return nil
	}
}

// WithScratchLimit caps each lane's oversampling scratch at n oversampled
// samples. Blocks that would need more skip the saturation stage.
func WithScratchLimit(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("opto scratch limit must be > 0: %d", n)
		}

		cfg.scratchLimit = n

		return nil
	}
}

// WithLogger sets the logger for lifecycle and buffer-growth events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("opto logger must not be nil")
		}

		cfg.logger = logger

		return nil
	}
}

// WithSaturation passes options to the J-FET stage.
func WithSaturation(opts ...effects.JFETOption) Option {
	return func(cfg *config) error {
		cfg.jfet = append(cfg.jfet, opts...)
		return nil
	}
}

// WithSoftClip passes options to the final soft-clip limiter.
func WithSoftClip(opts ...effects.SoftClipOption) Option {
	return func(cfg *config) error {
		cfg.clip = append(cfg.clip, opts...)
		return nil
	}
}
