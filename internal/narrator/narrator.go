package narrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carson-networks/creditwise/internal/scoring"
)

const systemPrompt = "You are a financial assistant. Summarize credit reports clearly and concisely."

// Summary is the plain-language explanation of a credit report.
type Summary struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths,omitempty"`
	Weaknesses   []string `json:"weaknesses,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Narrator asks an OpenAI compatible chat endpoint to explain a report.
type Narrator struct {
	client chatClient
	model  string
}

// New returns nil when apiKey is empty; a nil Narrator produces no summaries.
func New(apiKey, baseURL, model string) *Narrator {
	if apiKey == "" {
		return nil
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Narrator{client: openai.NewClientWithConfig(cfg), model: model}
}

// Enabled reports whether summaries will be requested.
func (n *Narrator) Enabled() bool {
	return n != nil && n.client != nil
}

// Summarize explains report in at most 150 words.
func (n *Narrator) Summarize(ctx context.Context, report *scoring.Report) (*Summary, error) {
	if !n.Enabled() {
		return nil, errors.New("narrator disabled")
	}

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(report)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return parseReply(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders the analyst prompt for report.
func BuildPrompt(report *scoring.Report) string {
	fv := report.Features
	ins := report.Insights

	var b strings.Builder
	fmt.Fprintf(&b, "You are a financial analyst. Based on the following credit report data, provide a summary within 150 words. Include:\n")
	fmt.Fprintf(&b, "1. Key financial insights from the data.\n")
	fmt.Fprintf(&b, "2. A clear reason why the credit score of %d is considered %s.\n", report.CreditScore, strings.ToLower(ins.MarketStatus))
	fmt.Fprintf(&b, "3. Any risks or strengths worth highlighting.\n\n")
	fmt.Fprintf(&b, "Reply with a JSON object with the keys summary, strengths, weaknesses and improvements.\n\n")

	fmt.Fprintf(&b, "Credit Report Data:\n")
	fmt.Fprintf(&b, "- Credit Score: %d (%s)\n", report.CreditScore, ins.MarketStatus)
	fmt.Fprintf(&b, "- Monthly Income (avg): %.2f\n", fv.AvgMonthlyIncome)
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n", fv.SavingsRate*100)
	fmt.Fprintf(&b, "- Transparency Index: %.0f%%\n", ins.TransparencyIndex)
	fmt.Fprintf(&b, "- Risky Spending: %.2f\n", fv.RiskyAmt)
	fmt.Fprintf(&b, "- Spending Categories: %s\n", categoryCounts(ins.Breakdown))
	fmt.Fprintf(&b, "- Risk Status: %s\n", ins.RiskStatus)
	fmt.Fprintf(&b, "- Primary Impact Factor: %s\n", ins.PrimaryDriver)
	fmt.Fprintf(&b, "- Stability Bonus: %t\n", ins.StabilityApplied)
	fmt.Fprintf(&b, "- Probability of Default: %.2f%%\n", report.Risk.ProbDefault*100)
	fmt.Fprintf(&b, "- Classification Confidence: %.2f%%\n", ins.MeanConfidence*100)
	fmt.Fprintf(&b, "- Cash Usage Alert: %s\n\n", ins.CashUsageAlert)

	fmt.Fprintf(&b, "Respond in plain English. Be concise, friendly, and stay within 150 words.")
	return b.String()
}

func categoryCounts(breakdown map[scoring.Category]scoring.CategoryBreakdown) string {
	parts := make([]string, 0, len(breakdown))
	for category, entry := range breakdown {
		if entry.Count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", category, entry.Count))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// parseReply accepts either the requested JSON object or free text.
func parseReply(content string) *Summary {
	content = strings.TrimSpace(content)
	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(content, "```json"), "```"), "```")

	var s Summary
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &s); err == nil && s.Summary != "" {
		return &s
	}
	return &Summary{Summary: content}
}
