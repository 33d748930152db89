// Package registry holds the cascade kernels available to package biquad and
// picks the best one for the running CPU.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients mirror biquad.Coefficients; a0 is normalized to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// CascadeFn filters buf in place through every section of coeffs in order.
// state holds one DF-II-T delay line per section and is updated in place.
type CascadeFn func(coeffs []Coefficients, state [][2]float64, buf []float64)

// Kernel is one cascade implementation.
type Kernel struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Run      CascadeFn
}

// Table is a priority-ordered kernel list. The zero value is ready to use.
type Table struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Kernels is the process-wide table filled by the arch packages.
var Kernels Table

// Add inserts k after every kernel of equal or higher priority.
func (t *Table) Add(k Kernel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := len(t.kernels)
	for i, cur := range t.kernels {
		if cur.Priority < k.Priority {
			at = i
			break
		}
	}

	t.kernels = append(t.kernels, Kernel{})
	copy(t.kernels[at+1:], t.kernels[at:])
	t.kernels[at] = k
}

// Select returns the highest-priority kernel whose SIMD level is supported
// by features.
func (t *Table) Select(features cpu.Features) (Kernel, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.kernels {
		if cpu.Supports(features, k.Level) {
			return k, true
		}
	}

	return Kernel{}, false
}

// Names lists the registered kernels in priority order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.kernels))
	for i, k := range t.kernels {
		names[i] = k.Name
	}

	return names
}
