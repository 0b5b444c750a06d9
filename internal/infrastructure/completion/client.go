package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/agent"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/metrics"
)

// APIError is a non-2xx reply from the completion provider. It keeps
// the HTTP status so the orchestrator can classify the failure.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("completion provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion provider returned %d", e.StatusCode)
}

func (e *APIError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

var _ agent.CompletionEngine = (*Client)(nil)

func NewClient(restyClient *resty.Client, cfg *config.Config) *Client {
	return &Client{
		client:  restyClient,
		baseURL: normalizeBaseURL(cfg.OpenAIBaseURL),
		apiKey:  cfg.OpenAIAPIKey,
	}
}

func (c *Client) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp)
	}
	metrics.RecordTokens(request.Model, respBody.Usage.PromptTokens, respBody.Usage.CompletionTokens)
	return &respBody, nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *Client) endpoint(path string) string {
	if c.baseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

// errorFromResponse converts a provider error reply into an APIError,
// extracting the structured error body when one is present.
func (c *Client) errorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	// resty has already drained the raw body; read the buffered copy.
	body := resp.Bytes()
	if len(body) == 0 {
		return apiErr
	}

	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		apiErr.Type = parsed.Error.Type
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

func normalizeBaseURL(base string) string {
	trimmed := strings.TrimSpace(base)
	return strings.TrimRight(trimmed, "/")
}
