// Package effects provides the nonlinear output stages of an opto-style
// limiting amplifier.
//
// Subpackages:
//   - github.com/cwbudde/algo-opto/dsp/effects/dynamics
//   - github.com/cwbudde/algo-opto/dsp/effects/spatial
//
// Effects in this package:
//   - JFET: threshold-knee saturation with a rational soft curve and dry/wet
//     mix. It implements resample.Shaper and is meant to run oversampled.
//   - SoftClipper: stateless exponential safety limiter just below 0 dBFS.
//
// Both are memoryless and allocation free.
package effects
