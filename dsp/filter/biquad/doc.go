// Package biquad is the second-order IIR runtime behind the sidechain
// detector filters and the oversampling filters.
//
// A [Cascade] runs a fixed number of Direct Form II Transposed sections in
// series. Block processing dispatches to a CPU-selected kernel; per-sample
// processing is inline. Coefficients come from dsp/filter/design.
package biquad
