package effects

import (
	"fmt"
	"math"
)

const (
	defaultJFETThreshold = 0.5
	defaultJFETHardness  = 2.0
	defaultJFETMix       = 0.3

	minJFETThreshold = 0.01
	maxJFETThreshold = 1.0
	minJFETHardness  = 0.0
	maxJFETHardness  = 20.0
)

// JFETOption mutates construction-time parameters.
type JFETOption func(*jfetConfig) error

type jfetConfig struct {
	threshold float64
	hardness  float64
	mix       float64
}

func defaultJFETConfig() jfetConfig {
	return jfetConfig{
		threshold: defaultJFETThreshold,
		hardness:  defaultJFETHardness,
		mix:       defaultJFETMix,
	}
}

// WithSaturationThreshold sets the linear knee level in [0.01, 1].
func WithSaturationThreshold(threshold float64) JFETOption {
	return func(cfg *jfetConfig) error {
		if threshold < minJFETThreshold || threshold > maxJFETThreshold || math.IsNaN(threshold) {
			return fmt.Errorf("jfet threshold must be in [%g, %g]: %f", minJFETThreshold, maxJFETThreshold, threshold)
		}

		cfg.threshold = threshold

		return nil
	}
}

// WithSaturationHardness sets the curve hardness k in [0, 20]. Zero makes
// the stage linear.
func WithSaturationHardness(hardness float64) JFETOption {
	return func(cfg *jfetConfig) error {
		if hardness < minJFETHardness || hardness > maxJFETHardness || math.IsNaN(hardness) {
			return fmt.Errorf("jfet hardness must be in [%g, %g]: %f", minJFETHardness, maxJFETHardness, hardness)
		}

		cfg.hardness = hardness

		return nil
	}
}

// WithSaturationMix sets the dry/wet mix in [0, 1].
func WithSaturationMix(mix float64) JFETOption {
	return func(cfg *jfetConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("jfet mix must be in [0, 1]: %f", mix)
		}

		cfg.mix = mix

		return nil
	}
}

// JFET is a threshold-knee saturator. Below the threshold samples pass
// unchanged. Above it the excess is compressed by the rational curve
// norm/(1+k*norm), so the wet magnitude approaches threshold*(1+1/k) and
// never reaches it. The result is blended with the dry signal.
type JFET struct {
	threshold float64
	hardness  float64
	mix       float64
}

// NewJFET creates a saturation stage with defaults threshold 0.5,
// hardness 2 and mix 0.3.
func NewJFET(opts ...JFETOption) (*JFET, error) {
	cfg := defaultJFETConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &JFET{
		threshold: cfg.threshold,
		hardness:  cfg.hardness,
		mix:       cfg.mix,
	}, nil
}

// ProcessSample saturates one sample.
func (j *JFET) ProcessSample(input float64) float64 {
	wet := j.shape(input)
	return (1-j.mix)*input + j.mix*wet
}

func (j *JFET) shape(x float64) float64 {
	mag := math.Abs(x)
	if mag <= j.threshold {
		return x
	}

	norm := (mag - j.threshold) / j.threshold
	shaped := j.threshold + j.threshold*norm/(1+j.hardness*norm)

	return math.Copysign(shaped, x)
}

// ProcessInPlace saturates buf in place.
func (j *JFET) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = j.ProcessSample(buf[i])
	}
}

// Threshold returns the linear knee level.
func (j *JFET) Threshold() float64 { return j.threshold }

// Hardness returns the curve hardness.
func (j *JFET) Hardness() float64 { return j.hardness }

// Mix returns the dry/wet mix in [0,1].
func (j *JFET) Mix() float64 { return j.mix }
