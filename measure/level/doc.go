// Package level provides the output level meter of the limiter: a smoothed
// stereo RMS reading and the gain-reduction display value, both in dB with
// a -90 dB floor.
//
// The RMS smoother is updated once per block with a coefficient scaled by
// the block length, so the ballistics do not depend on the host block size.
package level
