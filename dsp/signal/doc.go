// Package signal provides deterministic, phase-continuous test sources for
// block-based processing.
package signal
