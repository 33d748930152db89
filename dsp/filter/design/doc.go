// Package design computes RBJ cookbook low-pass and high-pass biquad
// coefficients for dsp/filter/biquad.
//
// Inputs are sanitized rather than rejected: the cutoff is floored at
// [MinCutoffHz] and held below Nyquist, and Q is floored at [MinQ], so the
// returned section is always stable and finite.
package design
