// Package dynamics provides the gain-control stages of an opto-style
// limiting amplifier.
//
// Included building blocks:
//   - Detector: attack/release envelope follower on the rectified detector
//     signal.
//   - RatioMode: the four coupled ratio/attack/release settings.
//   - GainComputer: soft-knee static curve with a ratio that ramps across
//     the knee.
//   - Lane: one independent detector/gain path (sidechain filter, detector,
//     gain computer and gain smoother) applied in place to a block.
//
// A stereo processor runs two lanes (M/Left and S/Right) with no linking.
package dynamics
