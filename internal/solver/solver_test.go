package solver

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver captures the solver's progress notifications for
// inspection by tests.
type recordingObserver struct {
	approximations []float64
	exhaustedWith  int
}

func (o *recordingObserver) Iteration(n int, approximation float64) {
	o.approximations = append(o.approximations, approximation)
}

func (o *recordingObserver) Exhausted(maxIterations int) {
	o.exhaustedWith = maxIterations
}

func TestNew_NegativeNumber(t *testing.T) {
	s, err := New(-1, Options{})

	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNegativeNumber)
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(16, Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxIterations, s.maxIterations)
	assert.Equal(t, DefaultPrecision, s.precision)
	assert.Equal(t, 8.0, s.initialGuess, "default guess is number/2")
}

func TestNew_ExplicitOptions(t *testing.T) {
	guess := 3.0
	s, err := New(16, Options{
		MaxIterations: 25,
		InitialGuess:  &guess,
		Precision:     1e-6,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, s.maxIterations)
	assert.Equal(t, 1e-6, s.precision)
	assert.Equal(t, 3.0, s.initialGuess)
}

func TestSolve_MatchesMathSqrt(t *testing.T) {
	tests := []struct {
		name   string
		number float64
	}{
		{name: "two", number: 2},
		{name: "perfect square", number: 16},
		{name: "one", number: 1},
		{name: "fraction", number: 0.25},
		{name: "large", number: 1e12},
		{name: "small", number: 1e-8},
		{name: "non-square", number: 12345.6789},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.number, Options{})
			require.NoError(t, err)

			got, err := s.Solve()
			require.NoError(t, err)

			assert.InDelta(t, math.Sqrt(tt.number), got, 1e-9)
			assert.InDelta(t, tt.number, got*got, 1e-9*math.Max(1, tt.number))
		})
	}
}

func TestSolve_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		number    float64
		want      float64
		tolerance float64
	}{
		{name: "sqrt of two", number: 2, want: 1.414213562373095, tolerance: 1e-10},
		{name: "sqrt of sixteen", number: 16, want: 4.0, tolerance: 1e-9},
		{name: "sqrt of one", number: 1, want: 1.0, tolerance: 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.number, Options{})
			require.NoError(t, err)

			got, err := s.Solve()
			require.NoError(t, err)

			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestSolve_ZeroReturnsZero(t *testing.T) {
	// Zero is answered exactly instead of iterating: the default guess for
	// zero would itself be zero and Newton's update would divide by it.
	s, err := New(0, Options{})
	require.NoError(t, err)

	got, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestSolve_ZeroGuessForPositiveNumberPropagates(t *testing.T) {
	// An explicit zero guess is not guarded: the first update divides by
	// zero and every iterate from there on is +Inf. The run exhausts its
	// iteration budget and returns the non-finite value without error.
	guess := 0.0
	s, err := New(9, Options{
		MaxIterations: 5,
		InitialGuess:  &guess,
	})
	require.NoError(t, err)

	got, err := s.Solve()
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1), "expected +Inf, got %v", got)
}

func TestSolve_ObserverSeesEveryIterate(t *testing.T) {
	observer := &recordingObserver{}
	s, err := New(2, Options{Observer: observer})
	require.NoError(t, err)

	got, err := s.Solve()
	require.NoError(t, err)

	require.NotEmpty(t, observer.approximations)
	assert.Equal(t, got, observer.approximations[len(observer.approximations)-1],
		"the result is the last observed approximation")
	assert.Zero(t, observer.exhaustedWith, "a converged run must not report exhaustion")
}

func TestSolve_ExhaustionIsSilent(t *testing.T) {
	// One iteration from a guess far off the root cannot reach the
	// precision threshold. The solver still returns the best approximation
	// with a nil error; only the observer learns that the budget ran out.
	observer := &recordingObserver{}
	s, err := New(1e6, Options{
		MaxIterations: 1,
		Observer:      observer,
	})
	require.NoError(t, err)

	got, err := s.Solve()
	require.NoError(t, err)

	assert.Equal(t, 250001.0, got, "single Newton step from guess 500000")
	assert.Equal(t, 1, observer.exhaustedWith)
	assert.Len(t, observer.approximations, 1)
}

func TestSolve_NoResult(t *testing.T) {
	// Unreachable through New, which floors maxIterations at 1; exercised
	// through a direct literal to pin the defensive check.
	s := &Solver{
		number:        4,
		maxIterations: 0,
		initialGuess:  2,
		precision:     DefaultPrecision,
	}

	_, err := s.Solve()
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestApproximations_MonotoneDecrease(t *testing.T) {
	guess := 8.0
	s, err := New(16, Options{InitialGuess: &guess})
	require.NoError(t, err)

	var sequence []float64
	for x := range s.approximations(NewConvergenceMonitor(s.precision)) {
		sequence = append(sequence, x)
	}

	require.NotEmpty(t, sequence)
	assert.LessOrEqual(t, len(sequence), s.maxIterations)

	// From a guess above the root, Newton iterates approach sqrt(16) from
	// above, each one strictly smaller than the last.
	for i := 1; i < len(sequence); i++ {
		assert.Less(t, sequence[i], sequence[i-1],
			"iterate %d (%v) not below iterate %d (%v)", i, sequence[i], i-1, sequence[i-1])
	}
	assert.InDelta(t, 4.0, sequence[len(sequence)-1], 1e-9)
}

func TestApproximations_MonitorCountsEachIterate(t *testing.T) {
	s, err := New(2, Options{})
	require.NoError(t, err)

	monitor := NewConvergenceMonitor(s.precision)

	var sequence []float64
	for x := range s.approximations(monitor) {
		sequence = append(sequence, x)
	}

	require.NotEmpty(t, sequence)
	assert.Equal(t, len(sequence), monitor.Iterations(),
		"every yielded iterate passes through the monitor exactly once")
}

func TestSolve_ConcurrentCallsAreIndependent(t *testing.T) {
	s, err := New(2, Options{})
	require.NoError(t, err)

	const callers = 16

	var wg sync.WaitGroup
	results := make([]float64, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Solve()
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.InDelta(t, math.Sqrt2, results[i], 1e-10)
	}
}
