// Package opto implements a stereo opto-style limiting amplifier.
//
// A Processor runs, per block:
//
//   - optional mid/side encode (M = L+R, S = L-R),
//   - two independent gain lanes, each with a filtered sidechain detector
//     and a soft-knee gain computer,
//   - J-FET saturation, oversampled per lane,
//   - mid/side decode and a soft-clip safety limiter,
//   - output RMS and gain-reduction metering.
//
// Controls arrive as a Params value per block and are treated as stable for
// that block. The host-facing port numbering is available through Port,
// Params.SetControl and Meters.Value.
//
// A Processor is single-threaded: Process, Reset and Shutdown must not be
// called concurrently.
package opto
