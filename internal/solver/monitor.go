package solver

import "math"

// DefaultPrecision is the convergence threshold used when none is configured.
// Two consecutive approximations closer than this are considered converged.
const DefaultPrecision = 1e-10

// ConvergenceMonitor tracks a sequence of approximations and decides when
// consecutive values are close enough to stop iterating.
//
// A monitor is scoped to a single solve run: it accumulates the iteration
// count and the previously observed value, and is discarded afterwards.
// It performs no I/O; reporting intermediate deltas is the caller's concern.
type ConvergenceMonitor struct {
	targetPrecision float64
	iterationCount  int

	// previous is nil until the first observation; there is nothing to
	// compare the first value against.
	previous *float64
}

// NewConvergenceMonitor creates a monitor with the given target precision.
// A non-positive precision falls back to DefaultPrecision.
func NewConvergenceMonitor(targetPrecision float64) *ConvergenceMonitor {
	if targetPrecision <= 0 {
		targetPrecision = DefaultPrecision
	}
	return &ConvergenceMonitor{
		targetPrecision: targetPrecision,
	}
}

// Update records the next approximation and reports whether the sequence has
// converged, i.e. whether it differs from the previous approximation by less
// than the target precision.
//
// The first call only records the value and always returns false.
func (m *ConvergenceMonitor) Update(value float64) bool {
	m.iterationCount++

	if m.previous == nil {
		m.previous = &value
		return false
	}

	delta := math.Abs(value - *m.previous)
	m.previous = &value

	return delta < m.targetPrecision
}

// Iterations returns how many approximations the monitor has observed.
func (m *ConvergenceMonitor) Iterations() int {
	return m.iterationCount
}
