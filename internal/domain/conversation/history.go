package conversation

import (
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
)

// TokenEstimator approximates how many model tokens a piece of text
// will consume. Exact tokenization is provider specific, so callers
// only rely on the estimate being stable and monotone in text length.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// ApproxTokenEstimator estimates roughly four characters per token,
// which tracks OpenAI-family tokenizers closely enough for budgeting.
type ApproxTokenEstimator struct{}

func (ApproxTokenEstimator) EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// TruncateByTokens drops the oldest messages until the estimated token
// total fits within maxTokens, always preferring the newest suffix of
// the history. The first message walked backwards that overflows the
// budget is excluded along with everything older than it, so the kept
// messages are a contiguous chronological tail. A maxTokens <= 0
// disables truncation.
func TruncateByTokens(messages []openai.ChatCompletionMessage, maxTokens int, estimator TokenEstimator) []openai.ChatCompletionMessage {
	if maxTokens <= 0 || len(messages) == 0 {
		return messages
	}
	if estimator == nil {
		estimator = ApproxTokenEstimator{}
	}

	total := 0
	kept := make([]openai.ChatCompletionMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		cost := estimator.EstimateTokens(messages[i].Content)
		if total+cost > maxTokens {
			break
		}
		total += cost
		kept = append(kept, messages[i])
	}

	return functional.Reverse(kept)
}
