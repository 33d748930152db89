package core

import (
	"errors"
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []ProcessorOption
		want ProcessorConfig
	}{
		{"defaults", nil, ProcessorConfig{SampleRate: 48000, MaxBlockSize: 1024}},
		{"overrides", []ProcessorOption{WithSampleRate(96000), WithMaxBlockSize(64)}, ProcessorConfig{SampleRate: 96000, MaxBlockSize: 64}},
		{"last wins", []ProcessorOption{WithSampleRate(44100), WithSampleRate(88200)}, ProcessorConfig{SampleRate: 88200, MaxBlockSize: 1024}},
		{
			"invalid ignored",
			[]ProcessorOption{WithSampleRate(0), WithSampleRate(math.NaN()), WithSampleRate(math.Inf(1)), WithMaxBlockSize(-1), nil},
			DefaultProcessorConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyProcessorOptions(tt.opts...); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProcessorConfig
		ok   bool
	}{
		{"default", DefaultProcessorConfig(), true},
		{"zero rate", ProcessorConfig{MaxBlockSize: 1}, false},
		{"NaN rate", ProcessorConfig{SampleRate: math.NaN(), MaxBlockSize: 1}, false},
		{"infinite rate", ProcessorConfig{SampleRate: math.Inf(1), MaxBlockSize: 1}, false},
		{"zero block", ProcessorConfig{SampleRate: 48000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok != (err == nil) {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}

			if err != nil && !errors.Is(err, ErrConfig) {
				t.Fatalf("Validate() = %v, want ErrConfig", err)
			}
		})
	}
}
