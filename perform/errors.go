/*
errors.go - Centralized error types for the scoring engine

PURPOSE:
  All scoring/ranking error types in one place. The ledger-side taxonomy
  lives in rewards/errors.go; the two sets are disjoint because the two
  components fail for different reasons (caller bugs here, expected
  user-facing conditions there).

ERROR CATEGORIES:
  1. Input contract violations - malformed metric sets
  2. Precondition violations - empty ranking population, bad period kind

USAGE:
  if errors.Is(err, perform.ErrInvalidMetricSet) {
      // caller bug: reject and surface
  }

SEE ALSO:
  - rewards/errors.go: Ledger-side error taxonomy
*/
package perform

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMetricSet is returned when a metric set violates the input
	// contract (value outside [0,100]). This indicates a caller bug, not a
	// user error.
	ErrInvalidMetricSet = errors.New("invalid metric set")

	// ErrEmptyPopulation is returned when ranking is asked to order zero
	// employees. Ranking requires at least one member.
	ErrEmptyPopulation = errors.New("empty population")

	// ErrInvalidPeriod is returned for a period kind other than weekly or
	// monthly.
	ErrInvalidPeriod = errors.New("invalid period kind")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidMetricSetError identifies which metric violated the contract.
type InvalidMetricSetError struct {
	Metric Metric
	Value  int
}

func (e *InvalidMetricSetError) Error() string {
	return fmt.Sprintf("invalid metric set: %s=%d outside [0,100]", e.Metric, e.Value)
}

func (e *InvalidMetricSetError) Unwrap() error {
	return ErrInvalidMetricSet
}

// IsCallerBug returns true if the error indicates misuse of the engine
// rather than an expected user-facing condition.
func IsCallerBug(err error) bool {
	return errors.Is(err, ErrInvalidMetricSet) ||
		errors.Is(err, ErrEmptyPopulation) ||
		errors.Is(err, ErrInvalidPeriod)
}
