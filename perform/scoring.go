/*
scoring.go - Weighted score computation and weight validation

PURPOSE:
  Turns a MetricSet and a WeightConfig into one integer score in [0,100].
  This is the single opinionated number the rest of the system (ranking,
  feedback, leaderboard display) is built on.

FORMULA:
  score = round(sum(metric_i * weight_i)) over the five fixed metrics.

ROUNDING:
  Round-half-away-from-zero via decimal.Round. The choice is user-visible:
  boundary scores sit right on display tier cutoffs (60/75/90) and on the
  feedback trend cutoffs (78/88), so it must be consistent and exact.
  decimal arithmetic keeps 0.25+0.25+0.20+0.20+0.10 summing to exactly 1
  where float64 would drift.

WEIGHT SEMANTICS:
  - The formula never normalizes. Whatever weights are supplied are used.
  - A missing weight key means weight zero, not an error.
  - WeightSum/Report surface an unbalanced sum; scoring still runs.

SEE ALSO:
  - types.go: MetricSet, WeightConfig
  - weights.go: Process-wide configuration holder
*/
package perform

import (
	"github.com/shopspring/decimal"
)

// weightTolerance is the accepted deviation of the weight sum from 1.0
// before the validator flags the configuration (plus/minus 1%).
var weightTolerance = decimal.NewFromFloat(0.01)

// Score computes the weighted performance score for a metric set.
//
// The metric set must be valid (all five values in [0,100]); violation
// fails with ErrInvalidMetricSet. Weights missing a key contribute zero.
// Pure: no side effects, no caching - callers must re-invoke after any
// weight or metric change.
func Score(m MetricSet, w WeightConfig) (int, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	total := decimal.Zero
	for _, metric := range MetricOrder {
		weight := decimal.NewFromFloat(w[metric])
		value := decimal.NewFromInt(int64(m.Value(metric)))
		total = total.Add(value.Mul(weight))
	}

	// Round(0) is half-away-from-zero: 92.5 -> 93.
	return int(total.Round(0).IntPart()), nil
}

// WeightSum returns the exact sum of the supplied weights. Used by the
// configuration validator, never by the scoring formula.
func WeightSum(w WeightConfig) decimal.Decimal {
	sum := decimal.Zero
	for _, metric := range MetricOrder {
		if v, ok := w[metric]; ok {
			sum = sum.Add(decimal.NewFromFloat(v))
		}
	}
	return sum
}

// =============================================================================
// WEIGHT VALIDATION - report, never refuse
// =============================================================================

// WeightStatus classifies a weight sum relative to 1.0.
type WeightStatus string

const (
	WeightBalanced WeightStatus = "balanced"
	WeightOver     WeightStatus = "over 100%"
	WeightUnder    WeightStatus = "under 100%"
)

// WeightReport describes how a weight configuration relates to the soft
// sum-to-one invariant. It is informational: the engine computes scores
// with whatever weights are supplied and never refuses to run.
type WeightReport struct {
	Sum       decimal.Decimal
	Status    WeightStatus
	Deviation decimal.Decimal // Sum - 1, signed
}

// Report computes the weight sum and flags deviation beyond the 1%
// tolerance.
func Report(w WeightConfig) WeightReport {
	sum := WeightSum(w)
	dev := sum.Sub(decimal.NewFromInt(1))

	status := WeightBalanced
	if dev.Abs().GreaterThan(weightTolerance) {
		if dev.IsPositive() {
			status = WeightOver
		} else {
			status = WeightUnder
		}
	}
	return WeightReport{Sum: sum, Status: status, Deviation: dev}
}
