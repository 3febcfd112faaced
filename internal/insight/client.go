// Package insight calls a hosted chat-completion endpoint to categorize
// transactions and produce free-text spending analysis. The completion
// text is passed through unmodified; segmenting it for display is the
// view layer's problem.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

// DefaultBaseURL is an OpenRouter-compatible chat-completions endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is the completion model used unless configured otherwise.
const DefaultModel = "anthropic/claude-3-haiku"

// DefaultCategory is what Categorize falls back to on any failure, since
// its result feeds a required form field.
const DefaultCategory = "Other"

const (
	categorizeSystemPrompt = "You are a financial categorization assistant. Your job is to categorize financial transactions. Respond with the most appropriate category name only."
	suggestionsSystemPrompt = "You are a financial advisor AI focused on helping users manage their personal finances. Provide specific, actionable advice based on transaction and budget data."
	insightsSystemPrompt    = "You are a financial analysis AI that provides insights on spending patterns. Focus on trends, anomalies, and actionable insights."
)

// Client talks to the remote completion endpoint. When offline mode is
// enabled it returns locally computed placeholders and never touches the
// network.
type Client struct {
	api   *openai.Client
	model string

	mu      sync.RWMutex
	offline bool
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Offline bool
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		offline: opts.Offline,
	}
}

// SetOffline toggles offline mode at runtime.
func (c *Client) SetOffline(v bool) {
	c.mu.Lock()
	c.offline = v
	c.mu.Unlock()
}

// Offline reports whether the client is in offline mode.
func (c *Client) Offline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.offline
}

// Categorize suggests a category name for a transaction being entered.
// It never fails: any error falls back to DefaultCategory.
func (c *Client) Categorize(ctx context.Context, description string, amount float64) string {
	if c.Offline() {
		return keywordCategory(description)
	}

	prompt := fmt.Sprintf(
		"Please categorize this transaction: Description: %s, Amount: %.2f. Respond with one of these categories: Income, Housing, Food, Transportation, Entertainment, Healthcare, Education, Shopping, Utilities, Travel, Other.",
		description, amount,
	)

	text, err := c.complete(ctx, categorizeSystemPrompt, prompt, 0.3, 20)
	if err != nil {
		slog.Warn("categorization failed, using default", "error", err)
		return DefaultCategory
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultCategory
	}

	return text
}

// SpendingInsights analyzes the given transactions and returns the raw
// completion text. The error, when non-nil, is always an *Error carrying
// a displayable message.
func (c *Client) SpendingInsights(ctx context.Context, txs []finance.Transaction, timeframe string) (string, error) {
	if c.Offline() {
		return mockSpendingInsights, nil
	}

	prompt := fmt.Sprintf(
		"Here are my %s transactions: %s. Please analyze and provide detailed insights about my spending patterns, unusual expenses, potential savings, and trends.",
		timeframe, mustJSON(txs),
	)

	return c.complete(ctx, insightsSystemPrompt, prompt, 0.7, 1500)
}

// FinanceSuggestions asks for 3-5 concrete suggestions based on the
// transaction history and current budgets.
func (c *Client) FinanceSuggestions(ctx context.Context, txs []finance.Transaction, budgets []finance.Budget) (string, error) {
	if c.Offline() {
		return mockFinanceSuggestions, nil
	}

	prompt := fmt.Sprintf(
		"Here are my recent transactions: %s. And my current budget: %s. Please analyze my spending patterns and provide 3-5 specific suggestions to improve my financial health.",
		mustJSON(txs), mustJSON(budgets),
	)

	return c.complete(ctx, suggestionsSystemPrompt, prompt, 0.7, 1000)
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindUnknown}
	}

	return resp.Choices[0].Message.Content, nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Domain types marshal without error; this guards future fields.
		return "[]"
	}

	return string(data)
}
