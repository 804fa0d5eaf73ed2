/*
ranking.go - Leaderboard ordering and period trends

PURPOSE:
  Orders a population by freshly computed score, assigns 1-based ranks,
  and annotates each entry with its period-over-period trend from the
  selected score-history sequence.

TIE-BREAK CONTRACT:
  Equal scores rank in input order: the first-listed of two equal scores
  ranks higher. This is an explicit, tested contract - it decides who
  wins a reward tier on equal scores - not an incidental property of the
  sort routine. sort.SliceStable carries it.

READ-ONLY:
  Ranking never mutates ledger state. Top-N award issuance is a separate
  explicit operation (rewards.Ledger.IssueTopAwards) layered on the
  output of Rank.

SEE ALSO:
  - scoring.go: Score recomputation (mandatory on every call)
  - rewards/awards.go: Award issuance over ranked entries
*/
package perform

import "sort"

// Rank orders the population by score, descending, and annotates ranks
// and trends.
//
// Scores are recomputed from metrics and the supplied weights on every
// call - nothing is cached across calls, so a weight change is reflected
// immediately. An empty population fails with ErrEmptyPopulation. Members
// with fewer than two history points of the requested kind report a flat
// trend rather than failing.
func Rank(population []Subject, w WeightConfig, period PeriodKind) ([]RankedEntry, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}
	if period != PeriodWeekly && period != PeriodMonthly {
		return nil, ErrInvalidPeriod
	}

	entries := make([]RankedEntry, 0, len(population))
	for _, s := range population {
		score, err := Score(s.Metrics, w)
		if err != nil {
			return nil, err
		}
		delta, dir := historyTrend(s, period)
		entries = append(entries, RankedEntry{
			ScoredEmployee: ScoredEmployee{ID: s.ID, Name: s.Name, Score: score},
			Trend:          dir,
			TrendDelta:     delta,
		})
	}

	// Stable: preserves input order on equal scores (the tie-break contract).
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// historyTrend computes last minus second-to-last of the selected history
// sequence and classifies its sign. Short histories are flat.
func historyTrend(s Subject, period PeriodKind) (int, TrendDirection) {
	history := s.WeeklyScores
	if period == PeriodMonthly {
		history = s.MonthlyScores
	}
	if len(history) < 2 {
		return 0, TrendFlat
	}

	delta := history[len(history)-1] - history[len(history)-2]
	switch {
	case delta > 0:
		return delta, TrendUp
	case delta < 0:
		return delta, TrendDown
	default:
		return 0, TrendFlat
	}
}
