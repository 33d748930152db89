// Package sidechain provides the detector-path filter chain of a dynamics
// processor: a 6th-order low-pass bank followed by a 6th-order high-pass
// bank, each independently switchable.
//
// The chain only shapes what the envelope detector hears. It never touches
// the audio path. Every lane owns its own [Filter] so that history stays
// per lane while coefficients are identical for identical controls.
//
// Coefficients are cached per bank and recomputed only when frequency or Q
// move by more than [Tolerance]:
//
//	f := sidechain.New(48000)
//	f.Configure(sidechain.Settings{}, sidechain.Settings{Enabled: true, FreqHz: 120, Q: 0.707})
//	y := f.ProcessSample(math.Abs(x))
package sidechain
