package rewards_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/perform-engine/rewards"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestLedger() *rewards.Ledger {
	return rewards.NewLedger(
		rewards.WithClock(func() time.Time {
			return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func openAccount(l *rewards.Ledger, id string, balance int) {
	l.Open(id)
	if balance > 0 {
		if _, err := l.Earn(id, balance, "opening grant"); err != nil {
			panic(err)
		}
	}
}

func reward(name string, cost int) rewards.RewardItem {
	return rewards.RewardItem{ID: 99, Name: name, PointsCost: cost}
}

func requireInvariant(t *testing.T, l *rewards.Ledger, id string) {
	t.Helper()
	acc, err := l.Account(id)
	require.NoError(t, err)
	require.Equal(t, acc.TransactionSum(), acc.Balance,
		"balance must equal the sum of all transaction amounts")
}

// =============================================================================
// EARN
// =============================================================================

func TestEarn_AppendsTransactionAndNotification(t *testing.T) {
	l := newTestLedger()
	l.Open("emp-1")

	tx, err := l.Earn("emp-1", 100, "bonus")
	require.NoError(t, err)

	assert.Equal(t, rewards.KindEarned, tx.Kind)
	assert.Equal(t, 100, tx.Amount)
	assert.NotEmpty(t, tx.ID)

	acc, err := l.Account("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 100, acc.Balance)
	assert.Len(t, acc.Transactions, 1)
	assert.Len(t, acc.Notifications, 1)
	assert.False(t, acc.Notifications[0].Read)
	requireInvariant(t, l, "emp-1")
}

func TestEarn_RejectsNonPositiveAmounts(t *testing.T) {
	l := newTestLedger()
	l.Open("emp-1")

	for _, amount := range []int{0, -1, -500} {
		_, err := l.Earn("emp-1", amount, "bad")
		assert.ErrorIs(t, err, rewards.ErrInvalidAmount, "amount %d", amount)
	}

	// Nothing was recorded.
	acc, err := l.Account("emp-1")
	require.NoError(t, err)
	assert.Zero(t, acc.Balance)
	assert.Empty(t, acc.Transactions)
	assert.Empty(t, acc.Notifications)
}

func TestEarn_UnknownEmployee(t *testing.T) {
	l := newTestLedger()
	_, err := l.Earn("ghost", 100, "bonus")
	assert.ErrorIs(t, err, rewards.ErrAccountNotFound)
}

// =============================================================================
// REDEEM
// =============================================================================

func TestRedeem_ExactBalanceToZeroThenInsufficient(t *testing.T) {
	// GIVEN: Balance 300 and a reward costing exactly 300
	// WHEN: Redeeming twice
	// THEN: First succeeds (balance 0, one -300 tx); second fails with
	//       InsufficientBalance and changes nothing

	l := newTestLedger()
	openAccount(l, "emp-1", 300)

	tx, err := l.Redeem("emp-1", reward("Spotify Premium (3mo)", 300))
	require.NoError(t, err)
	assert.Equal(t, -300, tx.Amount)
	assert.Equal(t, rewards.KindRedeemed, tx.Kind)

	balance, err := l.Balance("emp-1")
	require.NoError(t, err)
	assert.Zero(t, balance)
	requireInvariant(t, l, "emp-1")

	before, err := l.Account("emp-1")
	require.NoError(t, err)

	_, err = l.Redeem("emp-1", reward("Spotify Premium (3mo)", 300))
	assert.ErrorIs(t, err, rewards.ErrInsufficientBalance)

	var short *rewards.InsufficientBalanceError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 0, short.Available)
	assert.Equal(t, 300, short.Requested)
	assert.Equal(t, 300, short.Shortfall)

	// All-or-nothing: no partial debit, no transaction, no notification.
	after, err := l.Account("emp-1")
	require.NoError(t, err)
	assert.Equal(t, before.Balance, after.Balance)
	assert.Len(t, after.Transactions, len(before.Transactions))
	assert.Len(t, after.Notifications, len(before.Notifications))
}

func TestEarnThenRedeem_Arithmetic(t *testing.T) {
	// earn(100) then redeem(50) leaves balance = prev + 100 - 50 and adds
	// exactly two transactions.

	l := newTestLedger()
	openAccount(l, "emp-1", 200)

	before, err := l.Account("emp-1")
	require.NoError(t, err)

	_, err = l.Earn("emp-1", 100, "bonus")
	require.NoError(t, err)
	_, err = l.Redeem("emp-1", reward("Coffee Shop Voucher", 50))
	require.NoError(t, err)

	after, err := l.Account("emp-1")
	require.NoError(t, err)
	assert.Equal(t, before.Balance+100-50, after.Balance)
	assert.Len(t, after.Transactions, len(before.Transactions)+2)
	requireInvariant(t, l, "emp-1")
}

func TestRedeem_AppendsRedemptionNotification(t *testing.T) {
	l := newTestLedger()
	openAccount(l, "emp-1", 500)

	_, err := l.Redeem("emp-1", reward("Lunch Voucher", 150))
	require.NoError(t, err)

	nts, err := l.Notifications("emp-1")
	require.NoError(t, err)
	require.NotEmpty(t, nts)
	assert.Contains(t, nts[len(nts)-1].Message, "Lunch Voucher")
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestMarkNotificationRead_Idempotent(t *testing.T) {
	l := newTestLedger()
	openAccount(l, "emp-1", 100)

	nts, err := l.Notifications("emp-1")
	require.NoError(t, err)
	require.Len(t, nts, 1)
	id := nts[0].ID

	require.NoError(t, l.MarkNotificationRead("emp-1", id))
	require.NoError(t, l.MarkNotificationRead("emp-1", id), "second call must not error")

	nts, err = l.Notifications("emp-1")
	require.NoError(t, err)
	read := 0
	for _, nt := range nts {
		if nt.Read {
			read++
		}
	}
	assert.Equal(t, 1, read, "exactly one notification marked read")
}

func TestMarkNotificationRead_UnknownID(t *testing.T) {
	l := newTestLedger()
	l.Open("emp-1")

	err := l.MarkNotificationRead("emp-1", "nope")
	assert.ErrorIs(t, err, rewards.ErrNotificationNotFound)

	err = l.MarkNotificationRead("ghost", "nope")
	assert.ErrorIs(t, err, rewards.ErrAccountNotFound)
}

// =============================================================================
// INVARIANT - randomized operation sequence
// =============================================================================

func TestBalanceInvariant_RandomizedSequence(t *testing.T) {
	l := newTestLedger()
	l.Open("emp-1")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			_, _ = l.Earn("emp-1", rng.Intn(200)+1, fmt.Sprintf("earn %d", i))
		case 1:
			// May fail with insufficient balance; either way the
			// invariant must hold.
			_, _ = l.Redeem("emp-1", reward("random", rng.Intn(300)+1))
		case 2:
			_, _ = l.Earn("emp-1", rng.Intn(3)-1, "maybe invalid") // often <= 0
		}
		requireInvariant(t, l, "emp-1")

		balance, err := l.Balance("emp-1")
		require.NoError(t, err)
		require.GreaterOrEqual(t, balance, 0, "balance must never go negative")
	}
}

// =============================================================================
// CONCURRENCY - the check-then-mutate critical section
// =============================================================================

func TestRedeem_ConcurrentAgainstSameBalance(t *testing.T) {
	// GIVEN: Balance 300 and ten concurrent 300-point redemptions
	// WHEN: All run at once
	// THEN: Exactly one passes the balance check

	l := rewards.NewLedger()
	openAccount(l, "emp-1", 300)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Redeem("emp-1", reward("contested", 300)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "only one concurrent redemption may pass")

	balance, err := l.Balance("emp-1")
	require.NoError(t, err)
	assert.Zero(t, balance)
	requireInvariant(t, l, "emp-1")
}

func TestLedger_DifferentEmployeesProceedInParallel(t *testing.T) {
	l := rewards.NewLedger()
	const workers = 8
	for i := 0; i < workers; i++ {
		openAccount(l, fmt.Sprintf("emp-%d", i), 0)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = l.Earn(id, 10, "parallel")
			}
		}(fmt.Sprintf("emp-%d", i))
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		id := fmt.Sprintf("emp-%d", i)
		balance, err := l.Balance(id)
		require.NoError(t, err)
		assert.Equal(t, 1000, balance)
		requireInvariant(t, l, id)
	}
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

func TestAccount_ReturnsDeepCopy(t *testing.T) {
	l := newTestLedger()
	openAccount(l, "emp-1", 100)

	acc, err := l.Account("emp-1")
	require.NoError(t, err)
	acc.Transactions[0].Amount = 9999
	acc.Balance = -5

	fresh, err := l.Account("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 100, fresh.Balance)
	assert.Equal(t, 100, fresh.Transactions[0].Amount)
}

func TestRestore_ReplacesAccountState(t *testing.T) {
	l := newTestLedger()
	l.Restore(rewards.Account{
		EmployeeID: "emp-1",
		Balance:    650,
		Transactions: []rewards.Transaction{
			{ID: "t1", Kind: rewards.KindEarned, Amount: 800, Description: "grant"},
			{ID: "t2", Kind: rewards.KindRedeemed, Amount: -150, Description: "voucher"},
		},
	})

	balance, err := l.Balance("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 650, balance)

	// Subsequent mutations keep balance moving in lockstep with the log.
	_, err = l.Earn("emp-1", 50, "top-up")
	require.NoError(t, err)
	balance, err = l.Balance("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 700, balance)
}
