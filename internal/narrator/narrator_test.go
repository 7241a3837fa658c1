package narrator

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/creditwise/internal/scoring"
)

type mockChatClient struct {
	mock.Mock
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func testReport() *scoring.Report {
	return scoring.NewPipeline(nil, nil).Score([]scoring.Transaction{
		{Description: "ATM", Date: "2024-01-02"},
	})
}

func TestNew_DisabledWithoutKey(t *testing.T) {
	n := New("", "", "gpt-4o-mini")
	assert.Nil(t, n)
	assert.False(t, n.Enabled())

	_, err := n.Summarize(context.Background(), testReport())
	assert.Error(t, err)
}

func TestNew_Enabled(t *testing.T) {
	n := New("sk-test", "http://localhost:1234/v1", "gpt-4o-mini")
	assert.True(t, n.Enabled())
}

func TestSummarize_JSONReply(t *testing.T) {
	client := new(mockChatClient)
	n := &Narrator{client: client, model: "gpt-4o-mini"}

	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == "gpt-4o-mini" && len(req.Messages) == 2 &&
			req.Messages[0].Role == openai.ChatMessageRoleSystem
	})).Return(reply("```json\n{\"summary\": \"Thin file.\", \"strengths\": [\"no risky spend\"], \"improvements\": [\"add income\"]}\n```"), nil)

	s, err := n.Summarize(context.Background(), testReport())

	require.NoError(t, err)
	assert.Equal(t, "Thin file.", s.Summary)
	assert.Equal(t, []string{"no risky spend"}, s.Strengths)
	assert.Equal(t, []string{"add income"}, s.Improvements)
	client.AssertExpectations(t)
}

func TestSummarize_PlainTextReply(t *testing.T) {
	client := new(mockChatClient)
	n := &Narrator{client: client, model: "m"}
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).Return(reply("  Your score is low.  "), nil)

	s, err := n.Summarize(context.Background(), testReport())

	require.NoError(t, err)
	assert.Equal(t, "Your score is low.", s.Summary)
	assert.Empty(t, s.Strengths)
}

func TestSummarize_Errors(t *testing.T) {
	client := new(mockChatClient)
	n := &Narrator{client: client, model: "m"}
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, errors.New("rate limited")).Once()
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, nil).Once()

	_, err := n.Summarize(context.Background(), testReport())
	assert.ErrorContains(t, err, "rate limited")

	_, err = n.Summarize(context.Background(), testReport())
	assert.ErrorContains(t, err, "no choices")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	assert.Contains(t, prompt, "Credit Score: 300 (High Risk)")
	assert.Contains(t, prompt, "Spending Categories: Essential=1")
	assert.Contains(t, prompt, "Probability of Default: 50.00%")
	assert.Contains(t, prompt, "within 150 words")
}
