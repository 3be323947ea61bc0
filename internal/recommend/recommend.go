// Package recommend produces the advice attached to failed checks. The
// external provider is an OpenAI-compatible chat endpoint; a static advisor
// covers deployments without credentials.
package recommend

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"seoanalyzer/internal/config"
	"seoanalyzer/internal/log"
)

// Recommender phrases advice for a failed check given the state the check saw.
type Recommender interface {
	Recommend(ctx context.Context, checkTitle, keyphrase, context string) (string, error)
}

var (
	ErrEmptyCompletion = errors.New("completion contained no text")
	ErrCircuitOpen     = errors.New("recommendation circuit breaker is open")
)

const (
	breakerFailureThreshold = 5
	breakerSuccessThreshold = 1
)

// New builds the recommender chain described by cfg. Without GPT enabled or
// without a usable key the static advisor is returned.
func New(cfg *config.Config) Recommender {
	logger := log.WithComponent("recommend")

	if !cfg.UseGPTRecommendations {
		logger.Info("GPT recommendations disabled, using static advice")
		return NewStaticAdvisor()
	}
	if !cfg.HasOpenAIKey() {
		logger.Warn("OpenAI API key missing or invalid, using static advice",
			zap.Bool("key_set", cfg.OpenAIAPIKey != ""),
		)
		return NewStaticAdvisor()
	}

	client := NewOpenAIClient(OpenAIOptions{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.RecommendationTimeout,
	})
	breaker := NewCircuitBreaker(breakerFailureThreshold, cfg.RecommendationTimeout, breakerSuccessThreshold)

	logger.Info("GPT recommendations enabled",
		zap.String("model", cfg.OpenAIModel),
		zap.String("base_url", cfg.OpenAIBaseURL),
	)
	return NewCached(WithBreaker(client, breaker), cfg.RecommendationCacheTTL)
}
