/*
feedback.go - Deterministic natural-language insight generation

PURPOSE:
  Turns (employee name, metrics, score) into a structured Feedback value:
  a trend classification, ordered strength/improvement phrase lists, and
  a composed summary sentence. Regenerated on every request, never stored.

DETERMINISM:
  No randomness, no templates beyond fixed phrases. The same inputs
  always yield byte-identical output, which makes the generator trivially
  testable and cacheable by the caller if it chooses.

THRESHOLDS:
  Strength and improvement thresholds are fixed per metric and do not
  vary with the weight configuration. A metric in the band between its
  improvement and strength thresholds appears in neither list; no
  threshold combination puts a metric in both.

TWO TRENDS:
  The feedback trend here derives from the current score alone
  (upward/stable/needs-attention). The ranking trend derives from score
  history deltas (up/down/flat). They are distinct signals and are kept
  as distinct types.

SEE ALSO:
  - ranking.go: The history-based trend
*/
package perform

import (
	"fmt"
	"strings"
)

// FeedbackTrend is the coarse classification derived from the current
// score alone.
type FeedbackTrend string

const (
	TrendUpward         FeedbackTrend = "upward"
	TrendStable         FeedbackTrend = "stable"
	TrendNeedsAttention FeedbackTrend = "needs-attention"
)

// Feedback is a derived, non-persisted insight for one employee.
// Strengths and Improvements are ordered by metric declaration order and
// may both be empty.
type Feedback struct {
	Summary      string        `json:"summary"`
	Trend        FeedbackTrend `json:"trend"`
	Strengths    []string      `json:"strengths"`
	Improvements []string      `json:"improvements"`
}

// Per-metric strength thresholds (meets-or-exceeds) and the phrase each
// qualifying metric contributes.
var strengthRules = []struct {
	metric    Metric
	threshold int
	phrase    string
}{
	{MetricTaskCompletion, 90, "exceptional task completion rate"},
	{MetricProductivity, 88, "outstanding productivity levels"},
	{MetricDeadlinesMet, 90, "consistent deadline adherence"},
	{MetricQualityScore, 90, "high-quality deliverables"},
	{MetricAttendance, 95, "exemplary attendance record"},
}

// Per-metric improvement thresholds (strictly below). Attendance has no
// improvement threshold.
var improvementRules = []struct {
	metric    Metric
	threshold int
	phrase    string
}{
	{MetricTaskCompletion, 85, "focus on completing assigned tasks more consistently"},
	{MetricProductivity, 82, "explore productivity optimization strategies"},
	{MetricDeadlinesMet, 85, "work on deadline management techniques"},
	{MetricQualityScore, 82, "invest time in quality review processes"},
}

const encouragementPhrase = "Keep up the excellent work!"

// GenerateFeedback builds the insight for one employee. Pure and
// deterministic; never fails for a valid MetricSet.
func GenerateFeedback(name string, m MetricSet, score int) Feedback {
	var strengths []string
	for _, r := range strengthRules {
		if m.Value(r.metric) >= r.threshold {
			strengths = append(strengths, r.phrase)
		}
	}

	var improvements []string
	for _, r := range improvementRules {
		if m.Value(r.metric) < r.threshold {
			improvements = append(improvements, r.phrase)
		}
	}

	trend := classifyFeedbackTrend(score)

	return Feedback{
		Summary:      composeSummary(name, trend, score, strengths, improvements),
		Trend:        trend,
		Strengths:    strengths,
		Improvements: improvements,
	}
}

func classifyFeedbackTrend(score int) FeedbackTrend {
	switch {
	case score >= 88:
		return TrendUpward
	case score >= 78:
		return TrendStable
	default:
		return TrendNeedsAttention
	}
}

func trendPhrase(t FeedbackTrend) string {
	switch t {
	case TrendUpward:
		return "showing strong upward momentum"
	case TrendStable:
		return "maintaining consistent performance"
	default:
		return "presenting an opportunity for growth"
	}
}

// composeSummary builds the one-paragraph summary: trend phrase, up to
// two strengths joined with "and", and the first improvement - or an
// encouragement phrase when there is nothing to improve.
func composeSummary(name string, trend FeedbackTrend, score int, strengths, improvements []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s with an overall score of %d/100.", name, trendPhrase(trend), score)

	if len(strengths) > 0 {
		top := strengths
		if len(top) > 2 {
			top = top[:2]
		}
		fmt.Fprintf(&b, " Key strengths include %s.", strings.Join(top, " and "))
	}

	if len(improvements) > 0 {
		fmt.Fprintf(&b, " Recommended focus areas: %s.", improvements[0])
	} else {
		b.WriteString(" " + encouragementPhrase)
	}
	return b.String()
}
