package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/kula-app/newton-sqrt/internal/config"
	"github.com/kula-app/newton-sqrt/internal/logging"
	"github.com/kula-app/newton-sqrt/internal/solver"
	"github.com/kula-app/newton-sqrt/internal/timing"
)

// The run function is like the main function, except that it takes in the
// command line arguments and standard streams as arguments, and returns an
// error.
//
// If the run function finishes without an error, it means the application
// completed. If the run function returns an error, it means the application
// failed to complete.
//
// The logic of the run function stays isolated so it can be tested without
// touching the real process streams.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Parse command-line flags. The target number itself is the positional
	// argument; when it is absent the user is prompted for it.
	defaults := config.DefaultConfig()
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	maxIterations := flags.Int("max-iterations", defaults.MaxIterations, "Maximum number of Newton iterations per solve")
	precision := flags.Float64("precision", defaults.Precision, "Convergence threshold for consecutive approximations")
	places := flags.Int("places", defaults.DecimalPlaces, "Fractional digits to print the result with")
	initialGuess := flags.Float64("initial-guess", 0, "Override the initial approximation (default: number/2)")
	verbose := flags.Bool("verbose", false, "Log every intermediate approximation")
	if err := flags.Parse(args[1:]); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	// Record which optional flags were actually set, since their zero
	// values are not usable as "unset" sentinels (a 0 initial guess is a
	// meaningful, if ill-advised, choice).
	setFlags := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	// Derive a context that is canceled on OS interrupt/termination, so an
	// interrupt while waiting at the interactive prompt aborts the run.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create a logger writing human-readable output to stderr, keeping
	// stdout reserved for the computed result.
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(logging.NewTerminalHandler(stderr, level))

	// Load the run configuration
	cfg := config.DefaultConfig()
	cfg.MaxIterations = *maxIterations
	cfg.Precision = *precision
	cfg.DecimalPlaces = *places
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Determine the target number: positional argument if given, otherwise
	// prompt for one line on stdin. The input is parsed as an integer.
	number, err := targetNumber(flags.Args(), stdin, stdout)
	if err != nil {
		return err
	}

	logger.Info("solver configuration loaded",
		"number", number,
		"max_iterations", cfg.MaxIterations,
		"precision", cfg.Precision,
		"decimal_places", cfg.DecimalPlaces)

	if err := ctx.Err(); err != nil {
		return err
	}

	// Construct the solver with an observer that surfaces iteration
	// progress and the exhaustion warning through the logger. The solver
	// itself stays free of any logging dependency.
	opts := solver.Options{
		MaxIterations: cfg.MaxIterations,
		Precision:     cfg.Precision,
		Observer:      &iterationLogger{logger: logger},
	}
	if setFlags["initial-guess"] {
		opts.InitialGuess = initialGuess
	}

	newtonSolver, err := solver.New(float64(number), opts)
	if err != nil {
		return err
	}

	// Run the solve wrapped in elapsed-time instrumentation.
	result, err := timing.Timed(logger, "solve", newtonSolver.Solve)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	// Print the result with fixed decimal precision, plus the standard
	// library result as a cross-check.
	fmt.Fprintf(stdout, "sqrt(%d) = %.*f\n", number, cfg.DecimalPlaces, result)
	fmt.Fprintf(stdout, "math.Sqrt(%d) = %.*f\n", number, cfg.DecimalPlaces, math.Sqrt(newtonSolver.Number()))

	return nil
}

// targetNumber resolves the number to take the square root of: the first
// positional argument when present, otherwise one prompted line from stdin.
func targetNumber(args []string, stdin io.Reader, stdout io.Writer) (int64, error) {
	if len(args) > 0 {
		number, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", args[0], err)
		}
		return number, nil
	}

	fmt.Fprint(stdout, "Enter the number to find the square root of: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		return 0, fmt.Errorf("no input provided")
	}

	line := strings.TrimSpace(scanner.Text())
	number, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", line, err)
	}
	return number, nil
}

// iterationLogger adapts the solver's observer hooks onto structured logging.
type iterationLogger struct {
	logger *slog.Logger
}

// Iteration logs one intermediate approximation at debug level.
func (l *iterationLogger) Iteration(n int, approximation float64) {
	l.logger.Debug("iteration",
		"n", n,
		"approximation", approximation)
}

// Exhausted logs that the iteration budget ran out before the convergence
// threshold was met. The solve still returns the last approximation.
func (l *iterationLogger) Exhausted(maxIterations int) {
	l.logger.Warn("maximum iterations reached without achieving target precision",
		"max_iterations", maxIterations)
}
