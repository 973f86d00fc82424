package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/nutricoach/backend/config"
)

// ErrUpstreamModel reports a generative-model service failure or non-2xx
// response. Handlers map it to a gateway error; the raw upstream body never
// reaches a client.
var ErrUpstreamModel = errors.New("upstream model failure")

// Message represents a message in a chat completion request.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// completionRequest is the request body for the chat completions API.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// LLMService talks to the chat completions API.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService from configuration.
func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIAPIURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// Complete sends a single-turn completion request and returns the raw
// reply text. No retries; callers retry if they want to.
func (s *LLMService) Complete(ctx context.Context, messages []Message) (string, error) {
	return s.complete(ctx, s.model, messages, 4000)
}

// CompleteVision is Complete against the vision-capable model, used for
// image-based calorie estimation.
func (s *LLMService) CompleteVision(ctx context.Context, messages []Message) (string, error) {
	return s.complete(ctx, "gpt-4o-mini", messages, 300)
}

func (s *LLMService) complete(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	reqBody := completionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: 0.6,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamModel, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrUpstreamModel, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrUpstreamModel, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrUpstreamModel, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstreamModel)
	}

	return result.Choices[0].Message.Content, nil
}
