package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/perform-engine/api"
	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
	"github.com/warp/perform-engine/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := roster.NewStore()
	ledger := rewards.NewLedger()
	roster.Seed(store, ledger)

	handler := api.NewHandler(store, ledger,
		perform.NewWeightStore(nil),
		api.NewMetrics(prometheus.NewRegistry()))

	srv := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func sendJSON(t *testing.T, srv *httptest.Server, method, path string, body, out any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, srv.URL+path, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// =============================================================================
// LEADERBOARD
// =============================================================================

func TestGetLeaderboard_WeeklyRanks(t *testing.T) {
	srv := newTestServer(t)

	var lb api.LeaderboardDTO
	resp := getJSON(t, srv, "/api/leaderboard?period=weekly", &lb)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, lb.Entries, 6)
	assert.Equal(t, perform.PeriodWeekly, lb.Period)
	assert.Equal(t, "Sophia Chen", lb.Entries[0].Name)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, 93, lb.Entries[0].Score)
	assert.Equal(t, perform.TrendUp, lb.Entries[0].Trend)

	// Ranks are dense and 1-based.
	for i, e := range lb.Entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestGetLeaderboard_IsReadOnly(t *testing.T) {
	// Ranking must never touch ledger state.
	srv := newTestServer(t)

	var before, after []api.TransactionDTO
	getJSON(t, srv, "/api/employees/emp-1/transactions", &before)
	getJSON(t, srv, "/api/leaderboard?period=monthly", nil)
	getJSON(t, srv, "/api/employees/emp-1/transactions", &after)

	assert.Equal(t, len(before), len(after))
}

// =============================================================================
// EMPLOYEES / FEEDBACK
// =============================================================================

func TestGetEmployee_ScoredAndTiered(t *testing.T) {
	srv := newTestServer(t)

	var dto api.EmployeeDTO
	resp := getJSON(t, srv, "/api/employees/emp-1", &dto)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 93, dto.Score)
	assert.Equal(t, perform.TierExcellent, dto.Tier)
	assert.Equal(t, 1250, dto.Balance)

	resp = getJSON(t, srv, "/api/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFeedback_RegeneratedPerRequest(t *testing.T) {
	srv := newTestServer(t)

	var first, second api.FeedbackDTO
	getJSON(t, srv, "/api/employees/emp-1/feedback", &first)
	getJSON(t, srv, "/api/employees/emp-1/feedback", &second)

	assert.Equal(t, first, second, "feedback must be deterministic")
	assert.Equal(t, perform.TrendUpward, first.Feedback.Trend)
	assert.NotEmpty(t, first.Feedback.Summary)
}

func TestUpdateMetrics_RejectsOutOfRange(t *testing.T) {
	srv := newTestServer(t)

	bad := perform.MetricSet{TaskCompletion: 150}
	resp := sendJSON(t, srv, http.MethodPut, "/api/employees/emp-1/metrics", bad, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The stored metrics are untouched.
	var dto api.EmployeeDTO
	getJSON(t, srv, "/api/employees/emp-1", &dto)
	assert.Equal(t, 94, dto.Metrics.TaskCompletion)
}

func TestUpdateMetrics_ReflectedInNextScore(t *testing.T) {
	srv := newTestServer(t)

	perfect := perform.MetricSet{TaskCompletion: 100, Productivity: 100, DeadlinesMet: 100, QualityScore: 100, Attendance: 100}
	resp := sendJSON(t, srv, http.MethodPut, "/api/employees/emp-6/metrics", perfect, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dto api.EmployeeDTO
	getJSON(t, srv, "/api/employees/emp-6", &dto)
	assert.Equal(t, 100, dto.Score)
}

// =============================================================================
// REDEMPTION
// =============================================================================

func TestRedeem_SuccessAndInsufficient(t *testing.T) {
	srv := newTestServer(t)

	// emp-1 holds 1250 points; the Lunch Voucher costs 150.
	var tx api.TransactionDTO
	resp := sendJSON(t, srv, http.MethodPost, "/api/employees/emp-1/redeem",
		api.RedeemRequest{RewardID: 4}, &tx)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, -150, tx.Amount)

	var dto api.EmployeeDTO
	getJSON(t, srv, "/api/employees/emp-1", &dto)
	assert.Equal(t, 1100, dto.Balance)

	// emp-6 holds 90 points; the Coffee Shop Voucher costs 100.
	var errResp api.ErrorResponse
	resp = sendJSON(t, srv, http.MethodPost, "/api/employees/emp-6/redeem",
		api.RedeemRequest{RewardID: 7}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "insufficient_balance", errResp.Code)

	getJSON(t, srv, "/api/employees/emp-6", &dto)
	assert.Equal(t, 90, dto.Balance, "failed redemption must not change the balance")
}

func TestRedeem_UnknownReward(t *testing.T) {
	srv := newTestServer(t)

	resp := sendJSON(t, srv, http.MethodPost, "/api/employees/emp-1/redeem",
		api.RedeemRequest{RewardID: 999}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRewards_CatalogOrder(t *testing.T) {
	srv := newTestServer(t)

	var catalog []rewards.RewardItem
	getJSON(t, srv, "/api/rewards", &catalog)
	require.Len(t, catalog, 8)
	assert.Equal(t, "Amazon Gift Card", catalog[0].Name)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestMarkNotificationRead_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	var nts []api.NotificationDTO
	getJSON(t, srv, "/api/employees/emp-1/notifications", &nts)
	require.NotEmpty(t, nts)
	require.False(t, nts[0].Read)
	id := nts[0].ID

	path := fmt.Sprintf("/api/employees/emp-1/notifications/%s/read", id)
	resp := sendJSON(t, srv, http.MethodPost, path, struct{}{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Idempotent: a second call succeeds too.
	resp = sendJSON(t, srv, http.MethodPost, path, struct{}{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getJSON(t, srv, "/api/employees/emp-1/notifications", &nts)
	assert.True(t, nts[0].Read)

	resp = sendJSON(t, srv, http.MethodPost, "/api/employees/emp-1/notifications/nope/read", struct{}{}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// ADMIN - weights and awards
// =============================================================================

func TestWeights_GetReportsBalanced(t *testing.T) {
	srv := newTestServer(t)

	var dto api.WeightsDTO
	getJSON(t, srv, "/api/admin/weights", &dto)
	assert.Equal(t, "balanced", dto.Status)
	assert.Equal(t, "1", dto.Sum)
}

func TestWeights_UpdateReportsOverAndAffectsScores(t *testing.T) {
	srv := newTestServer(t)

	var dto api.WeightsDTO
	resp := sendJSON(t, srv, http.MethodPut, "/api/admin/weights", api.UpdateWeightsRequest{
		Weights: map[string]float64{"attendance": 1.5},
	}, &dto)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "over 100%", dto.Status)
	assert.Equal(t, "1.5", dto.Sum)

	// The swap is visible to the next scoring call: emp-1 attendance 98.
	var emp api.EmployeeDTO
	getJSON(t, srv, "/api/employees/emp-1", &emp)
	assert.Equal(t, 147, emp.Score)
}

func TestWeights_RejectsNegative(t *testing.T) {
	srv := newTestServer(t)

	resp := sendJSON(t, srv, http.MethodPut, "/api/admin/weights", api.UpdateWeightsRequest{
		Weights: map[string]float64{"attendance": -1},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIssueAwards_TopThreeEarn(t *testing.T) {
	srv := newTestServer(t)

	var results []rewards.AwardResult
	resp := sendJSON(t, srv, http.MethodPost, "/api/admin/awards",
		api.IssueAwardsRequest{Period: "weekly"}, &results)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, results, 3)

	assert.Equal(t, "Sophia Chen", results[0].Name)
	assert.Equal(t, 500, results[0].Amount)

	var dto api.EmployeeDTO
	getJSON(t, srv, "/api/employees/emp-1", &dto)
	assert.Equal(t, 1250+500, dto.Balance)

	// The winner got the ranked notification.
	var nts []api.NotificationDTO
	getJSON(t, srv, "/api/employees/emp-1/notifications", &nts)
	last := nts[len(nts)-1]
	assert.Contains(t, last.Message, "#1 this week")
}
