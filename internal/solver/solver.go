// Package solver computes square roots with the Newton (Babylonian) method.
//
// The package is the computational core of the program and deliberately has
// no opinion about logging or timing: callers that want to observe the
// iteration in flight attach an Observer, and callers that want to time a
// solve wrap the call themselves. With no observer attached the solver is a
// pure numeric computation.
package solver

import (
	"errors"
	"iter"
)

// DefaultMaxIterations bounds a solve run when no limit is configured.
const DefaultMaxIterations = 1000

var (
	// ErrNegativeNumber is returned by New when asked for the real square
	// root of a negative number.
	ErrNegativeNumber = errors.New("cannot calculate the real square root of a negative number")

	// ErrNoResult is returned by Solve if the iteration produced no
	// approximation at all. This cannot happen through New, which
	// guarantees at least one iteration, but Solve checks defensively.
	ErrNoResult = errors.New("solver failed to produce any approximation")
)

// Observer receives progress notifications from a solve run.
//
// The solver calls Iteration once per Newton step and Exhausted when the
// iteration limit is reached before the convergence threshold is met. Both
// calls happen synchronously on the solving goroutine. Implementations must
// not retain the solver; all observer methods are optional no-ops as far as
// the result is concerned, and the solver behaves identically without one.
type Observer interface {
	// Iteration reports the n-th approximation (1-based).
	Iteration(n int, approximation float64)

	// Exhausted reports that maxIterations steps ran without convergence.
	// The solve still returns the last approximation.
	Exhausted(maxIterations int)
}

// Options configures a Solver. The zero value selects all defaults.
type Options struct {
	// MaxIterations bounds the Newton iteration. Values <= 0 select
	// DefaultMaxIterations.
	MaxIterations int

	// InitialGuess seeds the iteration. When nil, number/2 is used.
	InitialGuess *float64

	// Precision is the convergence threshold handed to the per-solve
	// ConvergenceMonitor. Values <= 0 select DefaultPrecision.
	Precision float64

	// Observer, when non-nil, is notified of every iterate and of
	// exhaustion. It never influences the computed result.
	Observer Observer
}

// Solver computes the square root of a fixed non-negative number.
//
// A Solver is immutable after construction. Each Solve call owns its own
// ConvergenceMonitor, so separate calls (including concurrent ones) share no
// state.
type Solver struct {
	number        float64
	maxIterations int
	initialGuess  float64
	precision     float64
	observer      Observer
}

// New creates a solver for the given number.
//
// It fails with ErrNegativeNumber when number is negative; no real square
// root exists. An InitialGuess of exactly 0 for a positive number is not
// rejected: the iteration then degenerates through division by zero into
// non-finite iterates, which propagate to the caller unguarded.
func New(number float64, opts Options) (*Solver, error) {
	if number < 0 {
		return nil, ErrNegativeNumber
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	initialGuess := number / 2
	if opts.InitialGuess != nil {
		initialGuess = *opts.InitialGuess
	}

	precision := opts.Precision
	if precision <= 0 {
		precision = DefaultPrecision
	}

	return &Solver{
		number:        number,
		maxIterations: maxIterations,
		initialGuess:  initialGuess,
		precision:     precision,
		observer:      opts.Observer,
	}, nil
}

// Number returns the value whose square root the solver computes.
func (s *Solver) Number() float64 {
	return s.number
}

// approximations returns the lazy sequence of Newton iterates for one solve
// run. The sequence is finite (at most maxIterations elements) and not
// restartable; the monitor accumulates state across its elements.
//
// Each step applies x1 = 0.5 * (x0 + number/x0) and feeds x1 to the monitor.
// When the monitor reports convergence the converged value is yielded and the
// sequence ends. When the loop runs out of iterations the sequence simply
// ends after the last iterate, with no distinguished failure element; the
// observer's Exhausted hook is the only signal.
func (s *Solver) approximations(monitor *ConvergenceMonitor) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		x := s.initialGuess

		for i := 0; i < s.maxIterations; i++ {
			next := 0.5 * (x + s.number/x)

			converged := monitor.Update(next)
			if s.observer != nil {
				s.observer.Iteration(monitor.Iterations(), next)
			}

			if !yield(next) {
				return
			}
			if converged {
				return
			}

			x = next
		}

		if s.observer != nil {
			s.observer.Exhausted(s.maxIterations)
		}
	}
}

// Solve runs the Newton iteration to completion and returns the final
// approximation.
//
// A fresh ConvergenceMonitor with the configured precision is created per
// call. The full approximation sequence is drained and only the last value
// is kept: on convergence that is the converged root, on iteration
// exhaustion it is the best approximation reached. The two cases are not
// distinguished in the return values; an attached Observer sees the
// difference through its Exhausted hook.
//
// Solve on number == 0 returns 0 immediately. The straightforward iteration
// would divide by the zero default guess, so zero is answered exactly
// instead of iterating.
func (s *Solver) Solve() (float64, error) {
	if s.number == 0 {
		return 0, nil
	}

	monitor := NewConvergenceMonitor(s.precision)

	produced := false
	var last float64
	for approximation := range s.approximations(monitor) {
		last = approximation
		produced = true
	}

	if !produced {
		return 0, ErrNoResult
	}

	return last, nil
}
