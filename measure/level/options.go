package level

import "github.com/cwbudde/algo-opto/dsp/core"

// DefaultTimeMs is the RMS smoothing time constant.
const DefaultTimeMs = 50.0

// MeterConfig defines configuration for the level meter.
type MeterConfig struct {
	core.ProcessorConfig
	TimeMs float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns sensible defaults.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
		TimeMs:          DefaultTimeMs,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithTimeConstant sets the RMS smoothing time constant in milliseconds.
func WithTimeConstant(ms float64) MeterOption {
	return func(cfg *MeterConfig) {
		if ms > 0 {
			cfg.TimeMs = ms
		}
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
