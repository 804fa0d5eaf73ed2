/*
errors.go - Centralized error types for the rewards ledger

PURPOSE:
  All ledger error types in one place. Insufficient balance and invalid
  amount are expected, display-friendly conditions; not-found errors
  indicate a caller bug or a stale id.

USAGE:
  if errors.Is(err, rewards.ErrInsufficientBalance) {
      // expected user-facing condition, no state was changed
  }

  var short *rewards.InsufficientBalanceError
  if errors.As(err, &short) {
      fmt.Println(short.Shortfall)
  }

SEE ALSO:
  - ledger.go: Uses these errors
  - perform/errors.go: Scoring-side taxonomy
*/
package rewards

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when an earn amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a redemption exceeds the
	// available balance. Expected and frequent; the ledger performs no
	// state change when returning it.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountNotFound is returned when the employee has no account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotificationNotFound is returned when the notification id does
	// not exist for that employee.
	ErrNotificationNotFound = errors.New("notification not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	EmployeeID string
	Available  int
	Requested  int
	Shortfall  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %d, requested %d, shortfall %d",
		e.Available, e.Requested, e.Shortfall)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// InvalidAmountError reports a non-positive earn amount.
type InvalidAmountError struct {
	Amount int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %d (must be positive)", e.Amount)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true for expected, user-facing conditions.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidAmount)
}

// IsNotFound returns true if the error indicates a missing account or
// notification.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}
