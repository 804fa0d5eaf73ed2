/*
handlers.go - HTTP API handlers for the performance engine

PURPOSE:
  Exposes the scoring, ranking, feedback, and rewards engine via REST.
  Handles HTTP request/response and JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Employees:
    GET  /api/employees                        Scored roster
    GET  /api/employees/{id}                   One scored employee
    GET  /api/employees/{id}/feedback          Regenerated insight
    GET  /api/employees/{id}/transactions      Ledger audit trail
    GET  /api/employees/{id}/notifications     Notification list
    POST /api/employees/{id}/notifications/{nid}/read
    POST /api/employees/{id}/redeem            Redeem a catalog reward
    PUT  /api/employees/{id}/metrics           Replace a metric set

  Leaderboard:
    GET  /api/leaderboard?period=weekly|monthly

  Rewards:
    GET  /api/rewards                          Catalog

  Admin:
    GET  /api/admin/weights                    Current config + sum report
    PUT  /api/admin/weights                    Atomic weight swap
    POST /api/admin/awards                     Explicit top-3 issuance

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, insufficient balance
  - 404: Unknown employee / notification / reward
  - 500: Internal errors
  Insufficient balance is an expected, display-friendly condition and is
  tagged with a machine-readable code so the frontend can phrase it.

SECURITY NOTE:
  No authentication middleware. Login/session handling belongs to the
  host, not this engine.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
	"github.com/warp/perform-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster  *roster.Store
	Ledger  *rewards.Ledger
	Weights *perform.WeightStore
	Catalog rewards.Catalog
	Awards  []int

	metrics *Metrics
}

// NewHandler wires a handler. Nil catalog/awards fall back to the stock
// values; nil metrics registers on the default Prometheus registry.
func NewHandler(store *roster.Store, ledger *rewards.Ledger, weights *perform.WeightStore, m *Metrics) *Handler {
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Handler{
		Roster:  store,
		Ledger:  ledger,
		Weights: weights,
		Catalog: rewards.DefaultCatalog(),
		Awards:  rewards.DefaultAwardAmounts,
		metrics: m,
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns the scored roster in roster order.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	weights := h.Weights.Current()
	employees := h.Roster.List()

	out := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		score, err := perform.Score(e.Metrics, weights)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		balance, _ := h.Ledger.Balance(e.ID)
		out = append(out, newEmployeeDTO(e, score, balance))
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// GetEmployee returns one scored employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := h.Roster.Get(chi.URLParam(r, "id"))
	if !ok {
		h.writeNotFound(w, r, "employee")
		return
	}
	score, err := perform.Score(e.Metrics, h.Weights.Current())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	balance, _ := h.Ledger.Balance(e.ID)
	h.writeJSON(w, r, http.StatusOK, newEmployeeDTO(e, score, balance))
}

// UpdateMetrics replaces an employee's metric set. The new values are
// validated, never clamped; scores everywhere reflect the change on the
// next computation.
func (h *Handler) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var m perform.MetricSet
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	if err := m.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	if !h.Roster.UpdateMetrics(id, m) {
		h.writeNotFound(w, r, "employee")
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// GetFeedback regenerates the employee's insight from current metrics
// and weights. Nothing is stored.
func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	e, ok := h.Roster.Get(chi.URLParam(r, "id"))
	if !ok {
		h.writeNotFound(w, r, "employee")
		return
	}
	score, err := perform.Score(e.Metrics, h.Weights.Current())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, FeedbackDTO{
		EmployeeID: e.ID,
		Score:      score,
		Feedback:   perform.GenerateFeedback(e.Name, e.Metrics, score),
	})
}

// =============================================================================
// LEADERBOARD
// =============================================================================

// GetLeaderboard ranks the whole roster for the requested period.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := perform.PeriodKind(r.URL.Query().Get("period"))
	if period == "" {
		period = perform.PeriodWeekly
	}

	entries, err := perform.Rank(h.Roster.Subjects(), h.Weights.Current(), period)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, LeaderboardDTO{Period: period, Entries: entries})
}

// =============================================================================
// LEDGER
// =============================================================================

// GetTransactions returns the employee's audit trail, oldest first.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Ledger.Transactions(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, newTransactionDTO(tx))
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// GetNotifications returns the employee's notifications, oldest first.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	nts, err := h.Ledger.Notifications(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]NotificationDTO, 0, len(nts))
	for _, nt := range nts {
		out = append(out, newNotificationDTO(nt))
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// MarkNotificationRead flips one notification's read flag. Idempotent.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.Ledger.MarkNotificationRead(chi.URLParam(r, "id"), chi.URLParam(r, "nid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "read"})
}

// Redeem exchanges points for a catalog reward.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	reward, ok := h.Catalog.Find(req.RewardID)
	if !ok {
		h.writeNotFound(w, r, "reward")
		return
	}

	tx, err := h.Ledger.Redeem(id, reward)
	if err != nil {
		if errors.Is(err, rewards.ErrInsufficientBalance) {
			h.metrics.insufficientBalance.Inc()
		}
		h.writeError(w, r, err)
		return
	}
	h.metrics.redemptionsTotal.Inc()
	h.writeJSON(w, r, http.StatusOK, newTransactionDTO(tx))
}

// ListRewards returns the catalog in its supplied order.
func (h *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.Catalog)
}

// =============================================================================
// ADMIN
// =============================================================================

// GetWeights reports the current configuration and its sum status.
func (h *Handler) GetWeights(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, weightsDTO(h.Weights.Current()))
}

// UpdateWeights swaps the configuration atomically. Negative weights are
// rejected; an unbalanced sum is accepted and reported, never refused.
func (h *Handler) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req UpdateWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	if len(req.Weights) == 0 {
		h.writeBadRequest(w, r, "weights must not be empty")
		return
	}

	next := make(perform.WeightConfig, len(req.Weights))
	for k, v := range req.Weights {
		if v < 0 {
			h.writeBadRequest(w, r, fmt.Sprintf("weight %q must be non-negative", k))
			return
		}
		next[perform.Metric(k)] = v
	}

	h.Weights.Swap(next)
	h.metrics.weightSwapsTotal.Inc()
	h.writeJSON(w, r, http.StatusOK, weightsDTO(next))
}

// IssueAwards closes a period: ranks the roster and issues the top-N
// award amounts. This is the only path from ranking into the ledger, and
// it is explicit - GET /api/leaderboard never mutates anything.
func (h *Handler) IssueAwards(w http.ResponseWriter, r *http.Request) {
	var req IssueAwardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	period := perform.PeriodKind(req.Period)
	if period == "" {
		period = perform.PeriodWeekly
	}

	entries, err := perform.Rank(h.Roster.Subjects(), h.Weights.Current(), period)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results, err := h.Ledger.IssueTopAwards(entries, h.Awards, period)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.awardsTotal.Add(float64(len(results)))
	h.writeJSON(w, r, http.StatusOK, results)
}

func weightsDTO(w perform.WeightConfig) WeightsDTO {
	report := perform.Report(w)
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[string(k)] = v
	}
	return WeightsDTO{
		Weights:   out,
		Sum:       report.Sum.String(),
		Status:    string(report.Status),
		Deviation: report.Deviation.String(),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	h.countRequest(r, status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing sensible left to do.
		return
	}
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: msg})
}

func (h *Handler) writeNotFound(w http.ResponseWriter, r *http.Request, what string) {
	h.writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: what + " not found", Code: "not_found"})
}

// writeError maps domain errors to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rewards.ErrInsufficientBalance):
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "insufficient_balance"})
	case rewards.IsClientError(err):
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_input"})
	case rewards.IsNotFound(err):
		h.writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case perform.IsCallerBug(err):
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_input"})
	default:
		h.writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *Handler) countRequest(r *http.Request, status int) {
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			route = pattern
		}
	}
	h.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(status/100*100)).Inc()
}
