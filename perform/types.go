/*
Package perform provides the core performance scoring engine.

PURPOSE:
  This package contains the pure computation layer of the performance
  system: weighted scoring, weight configuration, feedback generation,
  and population ranking. Everything here is side-effect free - ledger
  state lives in the rewards package and is never touched from here.

KEY CONCEPTS IN THIS FILE (types.go):
  - MetricSet: The five raw performance dimensions per employee
  - WeightConfig: Metric-to-weight mapping consumed by the scorer
  - Subject: Scoring input (identity + metrics + score history)
  - ScoredEmployee/RankedEntry: Derived, transient output values

DESIGN PRINCIPLES:
  1. Purity: Score, feedback, and rank are deterministic functions
  2. Precision: decimal.Decimal for all weight math (no float drift)
  3. No caching: Derived values are recomputed on every call so that
     weight or metric changes are reflected immediately
  4. Report, don't refuse: An unbalanced weight set is surfaced by the
     validator but the scorer still runs with whatever it was given

USAGE:
  score, err := perform.Score(emp.Metrics, perform.DefaultWeights())
  entries, err := perform.Rank(population, weights, perform.PeriodWeekly)
  fb := perform.GenerateFeedback(emp.Name, emp.Metrics, score)

SEE ALSO:
  - scoring.go: Weighted score computation and weight validation
  - feedback.go: Natural-language insight generation
  - ranking.go: Leaderboard ordering and period trends
  - weights.go: Process-wide weight configuration holder
*/
package perform

// =============================================================================
// METRICS
// =============================================================================

// Metric identifies one of the five fixed performance dimensions.
type Metric string

const (
	MetricTaskCompletion Metric = "taskCompletion"
	MetricProductivity   Metric = "productivity"
	MetricDeadlinesMet   Metric = "deadlinesMet"
	MetricQualityScore   Metric = "qualityScore"
	MetricAttendance     Metric = "attendance"
)

// MetricOrder is the canonical declaration order. Feedback phrase ordering
// and score composition both follow this order.
var MetricOrder = [...]Metric{
	MetricTaskCompletion,
	MetricProductivity,
	MetricDeadlinesMet,
	MetricQualityScore,
	MetricAttendance,
}

// MetricSet holds the five raw performance dimensions, each in [0,100].
// Immutable once recorded for a scoring pass; a new pass supplies a new set.
type MetricSet struct {
	TaskCompletion int `json:"taskCompletion"`
	Productivity   int `json:"productivity"`
	DeadlinesMet   int `json:"deadlinesMet"`
	QualityScore   int `json:"qualityScore"`
	Attendance     int `json:"attendance"`
}

// Value returns the raw value for a metric key.
func (m MetricSet) Value(metric Metric) int {
	switch metric {
	case MetricTaskCompletion:
		return m.TaskCompletion
	case MetricProductivity:
		return m.Productivity
	case MetricDeadlinesMet:
		return m.DeadlinesMet
	case MetricQualityScore:
		return m.QualityScore
	case MetricAttendance:
		return m.Attendance
	}
	return 0
}

// Validate checks that every metric sits in [0,100]. The engine never
// clamps: an out-of-range value is reported to the caller as a contract
// violation, not coerced.
func (m MetricSet) Validate() error {
	for _, metric := range MetricOrder {
		v := m.Value(metric)
		if v < 0 || v > 100 {
			return &InvalidMetricSetError{Metric: metric, Value: v}
		}
	}
	return nil
}

// =============================================================================
// WEIGHT CONFIGURATION
// =============================================================================

// WeightConfig maps metric names to non-negative weights. A missing key is
// treated as weight zero by the scorer (not an error). The weights should
// sum to 1.0; deviation is reported by Report, never enforced.
type WeightConfig map[Metric]float64

// DefaultWeights returns the stock configuration.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		MetricTaskCompletion: 0.25,
		MetricProductivity:   0.25,
		MetricDeadlinesMet:   0.20,
		MetricQualityScore:   0.20,
		MetricAttendance:     0.10,
	}
}

// Clone returns an independent copy. WeightConfig values are handed across
// goroutines by the WeightStore, so callers always get their own map.
func (w WeightConfig) Clone() WeightConfig {
	out := make(WeightConfig, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// =============================================================================
// SCORED / RANKED VALUES - derived, transient, never stored
// =============================================================================

// Subject is the ranking input: an employee identity carrying its metrics
// and score-history sequences (ordered oldest to newest).
type Subject struct {
	ID            string
	Name          string
	Metrics       MetricSet
	WeeklyScores  []int
	MonthlyScores []int
}

// ScoredEmployee pairs an identity with one derived score in [0,100].
// It is recomputed whenever weights or metrics change, never cached here.
type ScoredEmployee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PeriodKind selects which score-history sequence feeds the ranking trend.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

// TrendDirection classifies a period-over-period score delta for display.
// This is distinct from the feedback trend, which derives from the current
// score alone.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// RankedEntry is one leaderboard row: scored employee, 1-based rank, and
// the period trend delta.
type RankedEntry struct {
	ScoredEmployee
	Rank       int            `json:"rank"`
	Trend      TrendDirection `json:"trend"`
	TrendDelta int            `json:"trendDelta"`
}

// =============================================================================
// SCORE TIERS - display classification
// =============================================================================

// Tier buckets a score for presentation (ring/bar coloring in the UI).
type Tier string

const (
	TierExcellent Tier = "excellent" // score >= 90
	TierGood      Tier = "good"      // score >= 75
	TierFair      Tier = "fair"      // score >= 60
	TierPoor      Tier = "poor"
)

// TierFor returns the display tier for a score.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierGood
	case score >= 60:
		return TierFair
	default:
		return TierPoor
	}
}
