/*
ledger.go - The points ledger and its two mutating operations

PURPOSE:
  Owns all per-employee reward state and exposes the only paths that may
  mutate it: Earn, Redeem, and MarkNotificationRead. Everything else is
  read-only snapshots.

THE CRITICAL SECTION:
  Redeem's check-then-mutate is the system's one required critical
  section. It runs under the per-account mutex, so concurrent
  redemptions against the same balance are serialized and can never both
  pass the balance check. Accounts of different employees use different
  mutexes and proceed in parallel.

NO I/O:
  The ledger is purely in-memory and never blocks on anything external.
  Durability, if the host wants it, is a snapshot concern (see
  store/sqlite): persist Accounts(), rehydrate with Restore().

SEE ALSO:
  - types.go: Account/Transaction/Notification invariants
  - awards.go: Top-N issuance layered on top of Earn
*/
package rewards

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger manages reward accounts. Safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*accountState

	now   func() time.Time
	newID func() string
}

// accountState pairs an account with the mutex that serializes its
// mutations.
type accountState struct {
	mu  sync.Mutex
	acc Account
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the transaction timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides the transaction/notification id source (tests).
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		accounts: make(map[string]*accountState),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates an empty account for the employee if one does not already
// exist. Idempotent.
func (l *Ledger) Open(employeeID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[employeeID]; !ok {
		l.accounts[employeeID] = &accountState{acc: Account{EmployeeID: employeeID}}
	}
}

// Restore rehydrates an account from host storage, replacing any existing
// state for that employee. The host's data is authoritative; from this
// point on the ledger maintains the balance invariant for every mutation
// it performs.
func (l *Ledger) Restore(acc Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[acc.EmployeeID] = &accountState{acc: acc.clone()}
}

// lookup returns the account state or ErrAccountNotFound.
func (l *Ledger) lookup(employeeID string) (*accountState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	st, ok := l.accounts[employeeID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return st, nil
}

// =============================================================================
// MUTATING OPERATIONS
// =============================================================================

// Earn appends a positive transaction, increases the balance, and appends
// a notification describing the award. Fails with ErrInvalidAmount if the
// amount is not positive.
func (l *Ledger) Earn(employeeID string, amount int, description string) (Transaction, error) {
	message := earnMessage(amount, description)
	return l.earn(employeeID, amount, description, message)
}

// earn is the shared award path; callers supply the notification message.
func (l *Ledger) earn(employeeID string, amount int, description, message string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, &InvalidAmountError{Amount: amount}
	}
	st, err := l.lookup(employeeID)
	if err != nil {
		return Transaction{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	tx := Transaction{
		ID:          l.newID(),
		Kind:        KindEarned,
		Amount:      amount,
		Description: description,
		Date:        l.now(),
	}
	st.acc.Balance += amount
	st.acc.Transactions = append(st.acc.Transactions, tx)
	st.acc.Notifications = append(st.acc.Notifications, Notification{
		ID:        l.newID(),
		Message:   message,
		CreatedAt: l.now(),
	})
	return tx, nil
}

// Redeem exchanges points for a catalog reward.
//
// The balance check and the debit form a single atomic unit under the
// account mutex. On insufficient balance it returns
// InsufficientBalanceError and performs no mutation at all: no partial
// debit, no transaction, no notification.
func (l *Ledger) Redeem(employeeID string, reward RewardItem) (Transaction, error) {
	st, err := l.lookup(employeeID)
	if err != nil {
		return Transaction{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.acc.Balance < reward.PointsCost {
		return Transaction{}, &InsufficientBalanceError{
			EmployeeID: employeeID,
			Available:  st.acc.Balance,
			Requested:  reward.PointsCost,
			Shortfall:  reward.PointsCost - st.acc.Balance,
		}
	}

	tx := Transaction{
		ID:          l.newID(),
		Kind:        KindRedeemed,
		Amount:      -reward.PointsCost,
		Description: reward.Name,
		Date:        l.now(),
	}
	st.acc.Balance -= reward.PointsCost
	st.acc.Transactions = append(st.acc.Transactions, tx)
	st.acc.Notifications = append(st.acc.Notifications, Notification{
		ID:        l.newID(),
		Message:   redeemMessage(reward),
		CreatedAt: l.now(),
	})
	return tx, nil
}

// MarkNotificationRead flips exactly one notification's read flag.
// Already-read is a no-op, not an error; an unknown id fails with
// ErrNotificationNotFound.
func (l *Ledger) MarkNotificationRead(employeeID, notificationID string) error {
	st, err := l.lookup(employeeID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	for i := range st.acc.Notifications {
		if st.acc.Notifications[i].ID == notificationID {
			st.acc.Notifications[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

// =============================================================================
// READ-ONLY SNAPSHOTS
// =============================================================================

// Account returns a deep copy of the employee's ledger state.
func (l *Ledger) Account(employeeID string) (Account, error) {
	st, err := l.lookup(employeeID)
	if err != nil {
		return Account{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.acc.clone(), nil
}

// Balance returns the current point balance.
func (l *Ledger) Balance(employeeID string) (int, error) {
	acc, err := l.Account(employeeID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Transactions returns the employee's transaction history, oldest first.
func (l *Ledger) Transactions(employeeID string) ([]Transaction, error) {
	acc, err := l.Account(employeeID)
	if err != nil {
		return nil, err
	}
	return acc.Transactions, nil
}

// Notifications returns the employee's notifications, oldest first.
func (l *Ledger) Notifications(employeeID string) ([]Notification, error) {
	acc, err := l.Account(employeeID)
	if err != nil {
		return nil, err
	}
	return acc.Notifications, nil
}

// Accounts returns a snapshot of every account, sorted by employee id.
// Used by host persistence to save state on shutdown.
func (l *Ledger) Accounts() []Account {
	l.mu.RLock()
	states := make([]*accountState, 0, len(l.accounts))
	for _, st := range l.accounts {
		states = append(states, st)
	}
	l.mu.RUnlock()

	out := make([]Account, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		out = append(out, st.acc.clone())
		st.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}
