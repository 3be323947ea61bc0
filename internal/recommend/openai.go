package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/metrics"
)

const (
	maxCompletionTokens = 150
	temperature         = 0.7
	maxErrorBody        = 4 << 10
)

const systemPrompt = `You are an SEO expert giving actionable recommendations.
Always include a concrete example that uses the keyphrase.
Answer in the form: Here is a better [element]: [concrete example]
Keep meta description examples under 155 characters.
Do not wrap the example in quotation marks.
Be specific and immediately actionable.`

type OpenAIOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIClient calls the chat completions endpoint of an OpenAI-compatible API.
type OpenAIClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	return &OpenAIClient{
		endpoint: strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		apiKey:   opts.APIKey,
		model:    opts.Model,
		client:   &http.Client{Timeout: opts.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func userPrompt(checkTitle, keyphrase, context string) string {
	return fmt.Sprintf(
		"Give a specific example that fixes this SEO issue: %q for the keyphrase %q.\n"+
			"Current content: %s\n"+
			"Start with \"Here is a better [element]:\" followed by the example, without quotation marks.",
		checkTitle, keyphrase, context)
}

func (c *OpenAIClient) Recommend(ctx context.Context, checkTitle, keyphrase, context string) (string, error) {
	start := time.Now()

	text, err := c.complete(ctx, checkTitle, keyphrase, context)
	if err != nil {
		metrics.ObserveRecommendation(metrics.RecommendationError)
		log.Logger.Warn("recommendation request failed",
			zap.String("check", checkTitle),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	metrics.ObserveRecommendation(metrics.RecommendationOK)
	log.Logger.Debug("recommendation generated",
		zap.String("check", checkTitle),
		zap.Duration("duration", time.Since(start)),
	)
	return text, nil
}

func (c *OpenAIClient) complete(ctx context.Context, checkTitle, keyphrase, context string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(checkTitle, keyphrase, context)},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("chat completions returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
