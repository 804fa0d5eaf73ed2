/*
awards.go - Explicit top-N award issuance

PURPOSE:
  Awards fixed point amounts to the top-ranked employees of a period.
  This is deliberately a separate operation layered on the output of
  perform.Rank: ranking itself is read-only and never touches ledger
  state. A host decides when a period closes and calls IssueTopAwards
  exactly once for it.

NOTIFICATION MESSAGES:
  Award notifications name the rank and period ("You ranked #1 this
  week!") instead of the generic earn message.
*/
package rewards

import (
	"fmt"

	"github.com/warp/perform-engine/perform"
)

// DefaultAwardAmounts are the stock top-3 award sizes, best rank first.
var DefaultAwardAmounts = []int{500, 300, 150}

// AwardResult records one issued award.
type AwardResult struct {
	EmployeeID  string      `json:"employeeId"`
	Name        string      `json:"name"`
	Rank        int         `json:"rank"`
	Amount      int         `json:"amount"`
	Transaction Transaction `json:"transaction"`
}

// IssueTopAwards earns the top len(amounts) entries their award amounts.
// Entries must come pre-ranked (rank 1 first, as Rank returns them); a
// population smaller than the amounts list simply awards fewer employees.
// Fails fast on the first ledger error, returning the awards issued so
// far.
func (l *Ledger) IssueTopAwards(entries []perform.RankedEntry, amounts []int, period perform.PeriodKind) ([]AwardResult, error) {
	if len(amounts) == 0 {
		amounts = DefaultAwardAmounts
	}

	n := len(amounts)
	if len(entries) < n {
		n = len(entries)
	}

	results := make([]AwardResult, 0, n)
	for i := 0; i < n; i++ {
		entry := entries[i]
		amount := amounts[i]

		tx, err := l.earn(entry.ID, amount,
			awardDescription(entry.Rank, period),
			awardMessage(entry.Rank, amount, period))
		if err != nil {
			return results, fmt.Errorf("award rank %d to %s: %w", entry.Rank, entry.ID, err)
		}
		results = append(results, AwardResult{
			EmployeeID:  entry.ID,
			Name:        entry.Name,
			Rank:        entry.Rank,
			Amount:      amount,
			Transaction: tx,
		})
	}
	return results, nil
}

func periodNoun(period perform.PeriodKind) string {
	if period == perform.PeriodMonthly {
		return "month"
	}
	return "week"
}

func awardDescription(rank int, period perform.PeriodKind) string {
	label := "Weekly"
	if period == perform.PeriodMonthly {
		label = "Monthly"
	}
	if rank == 1 {
		return label + " Top Performer"
	}
	return label + " Top 3"
}

func awardMessage(rank, amount int, period perform.PeriodKind) string {
	medals := map[int]string{1: "🏆", 2: "🥈", 3: "🥉"}
	medal, ok := medals[rank]
	if !ok {
		medal = "⭐"
	}
	return fmt.Sprintf("%s You ranked #%d this %s! %d points added.", medal, rank, periodNoun(period), amount)
}
