/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
	"github.com/warp/perform-engine/roster"
)

// =============================================================================
// EMPLOYEE / LEADERBOARD
// =============================================================================

// EmployeeDTO is a roster record annotated with its freshly computed
// score and display tier.
type EmployeeDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Role          string            `json:"role"`
	Dept          string            `json:"dept"`
	Avatar        string            `json:"avatar"`
	Metrics       perform.MetricSet `json:"metrics"`
	Score         int               `json:"score"`
	Tier          perform.Tier      `json:"tier"`
	Balance       int               `json:"balance"`
	WeeklyScores  []int             `json:"weeklyScores"`
	MonthlyScores []int             `json:"monthlyScores"`
}

func newEmployeeDTO(e roster.Employee, score, balance int) EmployeeDTO {
	return EmployeeDTO{
		ID:            e.ID,
		Name:          e.Name,
		Role:          e.Role,
		Dept:          e.Dept,
		Avatar:        e.Avatar,
		Metrics:       e.Metrics,
		Score:         score,
		Tier:          perform.TierFor(score),
		Balance:       balance,
		WeeklyScores:  e.WeeklyScores,
		MonthlyScores: e.MonthlyScores,
	}
}

// LeaderboardDTO is the ranked population for one period.
type LeaderboardDTO struct {
	Period  perform.PeriodKind    `json:"period"`
	Entries []perform.RankedEntry `json:"entries"`
}

// =============================================================================
// FEEDBACK
// =============================================================================

// FeedbackDTO wraps the generated insight with the score it derives from.
type FeedbackDTO struct {
	EmployeeID string           `json:"employeeId"`
	Score      int              `json:"score"`
	Feedback   perform.Feedback `json:"feedback"`
}

// =============================================================================
// LEDGER
// =============================================================================

// TransactionDTO mirrors rewards.Transaction with a formatted date.
type TransactionDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func newTransactionDTO(tx rewards.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
	}
}

// NotificationDTO mirrors rewards.Notification.
type NotificationDTO struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func newNotificationDTO(nt rewards.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        nt.ID,
		Message:   nt.Message,
		Read:      nt.Read,
		CreatedAt: nt.CreatedAt.Format(time.RFC3339),
	}
}

// RedeemRequest asks to exchange points for one catalog entry.
type RedeemRequest struct {
	RewardID int `json:"rewardId"`
}

// =============================================================================
// ADMIN
// =============================================================================

// WeightsDTO reports the current configuration and its sum status.
type WeightsDTO struct {
	Weights   map[string]float64 `json:"weights"`
	Sum       string             `json:"sum"`
	Status    string             `json:"status"`
	Deviation string             `json:"deviation"`
}

// UpdateWeightsRequest replaces the weight configuration.
type UpdateWeightsRequest struct {
	Weights map[string]float64 `json:"weights"`
}

// IssueAwardsRequest closes a period and awards the top ranks.
type IssueAwardsRequest struct {
	Period string `json:"period"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
