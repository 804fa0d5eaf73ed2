/*
Package rewards provides the points ledger: balances, transaction history,
redemptions, and notifications.

PURPOSE:
  Employees earn points (top-rank awards, bonuses) and redeem them against
  a reward catalog. Every balance change is an immutable transaction in an
  append-only per-employee log; every earn/redeem also appends a
  notification. The ledger is the only component allowed to mutate this
  state.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: Transactions and notifications are never edited or
     deleted. The notification read flag (false -> true) is the single
     mutable field.
  2. NON-NEGATIVE BALANCE: Redemption is all-or-nothing. An insufficient
     balance performs no mutation at all - no partial debit, no
     transaction, no notification.
  3. BALANCE = SUM(TRANSACTIONS): Holds after every operation for every
     account the ledger has operated on.

CONCURRENCY:
  Single-writer per employee: a per-account mutex serializes mutations so
  two concurrent redemptions cannot both pass the balance check.
  Different employees proceed fully in parallel.

SEE ALSO:
  - ledger.go: Earn/Redeem/MarkNotificationRead operations
  - catalog.go: Reward catalog entries
  - awards.go: Explicit top-N award issuance over ranked entries
*/
package rewards

import "time"

// =============================================================================
// TRANSACTION - Immutable ledger entry
// =============================================================================

// TransactionKind distinguishes the two balance-changing operations.
type TransactionKind string

const (
	KindEarned   TransactionKind = "earned"
	KindRedeemed TransactionKind = "redeemed"
)

// Transaction records one signed balance change. Immutable once created;
// the per-employee transaction list is the ledger's audit trail.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	Amount      int             `json:"amount"` // positive for earned, negative for redeemed
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// =============================================================================
// NOTIFICATION - Append-only message with a read flag
// =============================================================================

// Notification is created once and appended; Read (false -> true) is the
// only field that ever changes afterwards.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// =============================================================================
// ACCOUNT - Per-employee ledger state
// =============================================================================

// Account is the ledger state owned by one employee record. It is only
// ever mutated through the Ledger's operations.
type Account struct {
	EmployeeID    string         `json:"employeeId"`
	Balance       int            `json:"balance"`
	Transactions  []Transaction  `json:"transactions"`
	Notifications []Notification `json:"notifications"`
}

// TransactionSum returns the running sum of all transaction amounts. For
// any account the ledger has operated on, this equals Balance.
func (a Account) TransactionSum() int {
	sum := 0
	for _, tx := range a.Transactions {
		sum += tx.Amount
	}
	return sum
}

// UnreadCount returns how many notifications are still unread.
func (a Account) UnreadCount() int {
	n := 0
	for _, nt := range a.Notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}

// clone returns a deep copy so callers can never reach the ledger's
// internal slices.
func (a Account) clone() Account {
	out := a
	out.Transactions = append([]Transaction(nil), a.Transactions...)
	out.Notifications = append([]Notification(nil), a.Notifications...)
	return out
}
