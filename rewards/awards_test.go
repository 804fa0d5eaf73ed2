package rewards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
)

func rankedEntries(ids ...string) []perform.RankedEntry {
	entries := make([]perform.RankedEntry, len(ids))
	for i, id := range ids {
		entries[i] = perform.RankedEntry{
			ScoredEmployee: perform.ScoredEmployee{ID: id, Name: id, Score: 100 - i},
			Rank:           i + 1,
		}
	}
	return entries
}

func TestIssueTopAwards_DefaultAmounts(t *testing.T) {
	// GIVEN: Four ranked employees
	// WHEN: Issuing default awards (500/300/150)
	// THEN: Only the top three earn, with rank-specific descriptions

	l := newTestLedger()
	for _, id := range []string{"a", "b", "c", "d"} {
		l.Open(id)
	}

	results, err := l.IssueTopAwards(rankedEntries("a", "b", "c", "d"), nil, perform.PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 500, results[0].Amount)
	assert.Equal(t, 300, results[1].Amount)
	assert.Equal(t, 150, results[2].Amount)
	assert.Equal(t, "Weekly Top Performer", results[0].Transaction.Description)
	assert.Equal(t, "Weekly Top 3", results[1].Transaction.Description)

	for i, id := range []string{"a", "b", "c"} {
		balance, err := l.Balance(id)
		require.NoError(t, err)
		assert.Equal(t, rewards.DefaultAwardAmounts[i], balance)
		requireInvariant(t, l, id)
	}

	// Fourth place earned nothing.
	balance, err := l.Balance("d")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestIssueTopAwards_MonthlyDescriptions(t *testing.T) {
	l := newTestLedger()
	l.Open("a")

	results, err := l.IssueTopAwards(rankedEntries("a"), []int{500}, perform.PeriodMonthly)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Monthly Top Performer", results[0].Transaction.Description)

	nts, err := l.Notifications("a")
	require.NoError(t, err)
	require.Len(t, nts, 1)
	assert.Contains(t, nts[0].Message, "#1 this month")
	assert.Contains(t, nts[0].Message, "500 points added")
}

func TestIssueTopAwards_SmallPopulation(t *testing.T) {
	// A population smaller than the amounts list awards fewer employees.
	l := newTestLedger()
	l.Open("only")

	results, err := l.IssueTopAwards(rankedEntries("only"), nil, perform.PeriodWeekly)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestIssueTopAwards_UnknownWinnerFailsFast(t *testing.T) {
	l := newTestLedger()
	l.Open("a") // "b" has no account

	results, err := l.IssueTopAwards(rankedEntries("a", "b", "c"), nil, perform.PeriodWeekly)
	assert.ErrorIs(t, err, rewards.ErrAccountNotFound)
	assert.Len(t, results, 1, "awards issued before the failure are reported")
}

func TestCatalog_Find(t *testing.T) {
	catalog := rewards.DefaultCatalog()

	item, ok := catalog.Find(4)
	require.True(t, ok)
	assert.Equal(t, "Lunch Voucher", item.Name)
	assert.Equal(t, 150, item.PointsCost)

	_, ok = catalog.Find(999)
	assert.False(t, ok)
}
