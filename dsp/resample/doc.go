// Package resample provides integer-factor oversampling around a nonlinear
// stage.
//
// An [Oversampler] holds each input sample for N output samples (zero-order
// hold), smooths the held signal with a 6th-order Butterworth-Q low-pass at
// the base-rate Nyquist, runs a [Shaper] at the oversampled rate, filters
// again with an independent identical cascade and keeps the last sample of
// every group of N.
//
// Supported factors are 1, 2, 4 and 8. Factor 1 runs the shaper at the base
// rate with no filtering.
//
// The scratch buffer is sized from the maximum block size up front. A larger
// block grows it once and logs a warning. If growing would exceed the scratch
// limit, or the allocation fails, the block passes through unshaped and
// Process returns an error wrapping [ErrScratchLimit].
//
// Common workflow:
//
//	ov, _ := resample.New(48000, 4, resample.WithMaxBlockSize(512))
//	_ = ov.Process(buf, shaper)
package resample
