package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prvet-dev/prvet/internal/review"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-sonnet-4-5"
	anthropicMaxTok  = 8192
)

// AnthropicAgent calls the Anthropic Messages API directly. Unlike
// the CLI backends it needs ANTHROPIC_API_KEY in the environment.
type AnthropicAgent struct {
	BaseURL string
	Model   string
	HTTP    *http.Client

	apiKey func() string
}

// NewAnthropicAgent creates an API-backed agent. The key is read
// lazily so registration at init time doesn't pin the environment.
func NewAnthropicAgent() *AnthropicAgent {
	return &AnthropicAgent{
		BaseURL: anthropicBaseURL,
		Model:   anthropicModel,
		HTTP:    &http.Client{},
		apiKey:  func() string { return os.Getenv("ANTHROPIC_API_KEY") },
	}
}

func (a *AnthropicAgent) Name() string { return "anthropic-api" }

func (a *AnthropicAgent) available() bool { return a.apiKey() != "" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *AnthropicAgent) complete(ctx context.Context, promptText string, timeout time.Duration) (string, error) {
	key := a.apiKey()
	if key == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(anthropicRequest{
		Model:     a.Model,
		MaxTokens: anthropicMaxTok,
		Messages: []anthropicMessage{
			{Role: "user", Content: promptText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", key)
	req.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("call anthropic: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("anthropic: %s: %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("anthropic: unexpected status %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func (a *AnthropicAgent) ReviewCode(ctx context.Context, req ReviewRequest) ([]review.Candidate, error) {
	return reviewCodeWith(ctx, a, req)
}

func (a *AnthropicAgent) AnalyzeReview(ctx context.Context, req FixRequest) (Analysis, error) {
	return analyzeReviewWith(ctx, a, req)
}

func (a *AnthropicAgent) GenerateCodeFix(ctx context.Context, req FixRequest) (string, error) {
	return generateCodeFixWith(ctx, a, req)
}

func (a *AnthropicAgent) GenerateReply(ctx context.Context, reviewComment, changesMade string) (string, error) {
	return generateReplyWith(ctx, a, reviewComment, changesMade)
}

func init() {
	Register(NewAnthropicAgent())
}
