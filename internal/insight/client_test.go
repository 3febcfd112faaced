package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

func sampleTxs() []finance.Transaction {
	return []finance.Transaction{
		{
			ID:          "t1",
			Amount:      120,
			Category:    "Food",
			Date:        finance.NewDate(2025, time.March, 8),
			Description: "Weekly groceries",
			Type:        finance.TypeExpense,
		},
	}
}

// completionServer answers every chat-completion request with the given
// status. On 200 it returns content as the single choice.
func completionServer(t *testing.T, status int, content string, gotBody *map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotBody != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotBody))
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + mustQuote(content) + `}}]}`))
	}))
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func newTestClient(baseURL string) *Client {
	return New(Options{APIKey: "test-key", BaseURL: baseURL + "/v1", Model: "test-model"})
}

func TestSpendingInsights_PassesTextThrough(t *testing.T) {
	const raw = "Spending Patterns:\n1. Rent dominates your expenses.\n\nRecommendations:\n- Track groceries."

	var body map[string]any

	ts := completionServer(t, http.StatusOK, raw, &body)
	defer ts.Close()

	c := newTestClient(ts.URL)

	got, err := c.SpendingInsights(context.Background(), sampleTxs(), "month")
	require.NoError(t, err)

	// The completion text comes back verbatim, unsegmented.
	assert.Equal(t, raw, got)

	assert.Equal(t, "test-model", body["model"])

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Contains(t, msgs[1].(map[string]any)["content"], "Weekly groceries")
}

func TestSpendingInsights_Unauthorized(t *testing.T) {
	ts := completionServer(t, http.StatusUnauthorized, "", nil)
	defer ts.Close()

	c := newTestClient(ts.URL)

	_, err := c.SpendingInsights(context.Background(), sampleTxs(), "month")
	require.Error(t, err)

	var insightErr *Error
	require.ErrorAs(t, err, &insightErr)
	assert.Equal(t, KindUnauthorized, insightErr.Kind)
	assert.Contains(t, insightErr.Error(), "authentication failed")
}

func TestClassify_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
	}{
		{"Forbidden", http.StatusForbidden, KindForbidden},
		{"RateLimited", http.StatusTooManyRequests, KindRateLimited},
		{"ServerError", http.StatusInternalServerError, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := completionServer(t, tt.status, "", nil)
			defer ts.Close()

			c := newTestClient(ts.URL)

			_, err := c.FinanceSuggestions(context.Background(), sampleTxs(), nil)
			require.Error(t, err)

			var insightErr *Error
			require.ErrorAs(t, err, &insightErr)
			assert.Equal(t, tt.want, insightErr.Kind)
		})
	}
}

func TestSpendingInsights_Unreachable(t *testing.T) {
	ts := completionServer(t, http.StatusOK, "", nil)
	url := ts.URL
	ts.Close()

	c := newTestClient(url)

	_, err := c.SpendingInsights(context.Background(), sampleTxs(), "month")
	require.Error(t, err)

	var insightErr *Error
	require.ErrorAs(t, err, &insightErr)
	assert.Equal(t, KindUnreachable, insightErr.Kind)
}

func TestCategorize_FallsBackToOther(t *testing.T) {
	ts := completionServer(t, http.StatusUnauthorized, "", nil)
	defer ts.Close()

	c := newTestClient(ts.URL)

	got := c.Categorize(context.Background(), "mystery purchase", 10)
	assert.Equal(t, DefaultCategory, got)
}

func TestCategorize_TrimsResponse(t *testing.T) {
	ts := completionServer(t, http.StatusOK, "  Food\n", nil)
	defer ts.Close()

	c := newTestClient(ts.URL)

	got := c.Categorize(context.Background(), "restaurant dinner", 35)
	assert.Equal(t, "Food", got)
}

func TestOfflineMode(t *testing.T) {
	// No server at all: offline mode must never touch the network.
	c := New(Options{Offline: true})

	t.Run("Insights", func(t *testing.T) {
		got, err := c.SpendingInsights(context.Background(), sampleTxs(), "month")
		require.NoError(t, err)
		assert.NotEmpty(t, got)
	})

	t.Run("Suggestions", func(t *testing.T) {
		got, err := c.FinanceSuggestions(context.Background(), sampleTxs(), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, got)
	})

	t.Run("CategorizeKeywords", func(t *testing.T) {
		tests := []struct {
			description string
			want        string
		}{
			{"Grocery run", "Food"},
			{"Uber to airport", "Transportation"},
			{"March rent", "Housing"},
			{"Netflix subscription", "Entertainment"},
			{"Pharmacy refill", "Healthcare"},
			{"Salary deposit", "Income"},
			{"Something else entirely", "Other"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.want, c.Categorize(context.Background(), tt.description, 10), tt.description)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		assert.True(t, c.Offline())
		c.SetOffline(false)
		assert.False(t, c.Offline())
		c.SetOffline(true)
	})
}
