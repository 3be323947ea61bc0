// Package service runs one page analysis end to end.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"seoanalyzer/internal/checks"
	"seoanalyzer/internal/fetch"
	"seoanalyzer/internal/log"
	"seoanalyzer/internal/metrics"
	"seoanalyzer/internal/model"
	"seoanalyzer/internal/scoring"
	"seoanalyzer/internal/util"
)

type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (*fetch.Result, error)
}

type DocumentExtractor interface {
	Extract(rawHTML, pageURL string) (*model.Document, error)
}

// Analyzer wires fetching, extraction, the check pipeline and scoring. It
// holds no per-page state and is safe for concurrent use.
type Analyzer struct {
	fetcher   PageFetcher
	extractor DocumentExtractor
	pipeline  *checks.Pipeline
	now       func() time.Time
}

func NewAnalyzer(f PageFetcher, e DocumentExtractor, r checks.Recommender) *Analyzer {
	return &Analyzer{
		fetcher:   f,
		extractor: e,
		pipeline:  checks.NewPipeline(r, checks.WithObserver(metrics.CheckObserver{})),
		now:       time.Now,
	}
}

// Analyze fetches targetURL and evaluates every check against keyphrase.
// Errors are *model.AnalysisError values.
func (a *Analyzer) Analyze(ctx context.Context, targetURL, keyphrase string) (*model.Report, error) {
	start := a.now()

	report, err := a.analyze(ctx, targetURL, keyphrase)
	if err != nil {
		metrics.ObserveAnalysis(model.ErrorCode(err), 0, time.Since(start))
		log.Logger.Warn("analysis failed",
			zap.String("url", targetURL),
			zap.String("keyphrase", keyphrase),
			zap.String("code", model.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	duration := time.Since(start)
	metrics.ObserveAnalysis("ok", report.Score, duration)
	log.Logger.Info("analysis completed",
		zap.String("url", report.URL),
		zap.String("keyphrase", report.Keyphrase),
		zap.Int("score", report.Score),
		zap.Int("passed", report.PassedChecks),
		zap.Int("failed", report.FailedChecks),
		zap.Duration("duration", duration),
	)
	return report, nil
}

func (a *Analyzer) analyze(ctx context.Context, targetURL, keyphrase string) (*model.Report, error) {
	pageURL, keyphrase, err := validate(targetURL, keyphrase)
	if err != nil {
		return nil, err
	}

	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	// links resolve against where the page actually lives after redirects
	base := page.FinalURL
	if base == "" {
		base = pageURL
	}
	doc, err := a.extractor.Extract(page.HTML, base)
	if err != nil {
		return nil, err
	}

	result := a.pipeline.Run(ctx, doc, keyphrase, pageURL)
	score := scoring.Score(result.Checks)

	return &model.Report{
		URL:            pageURL,
		Keyphrase:      keyphrase,
		AnalysisResult: result,
		Score:          score,
		Rating:         scoring.Rating(score),
		AnalyzedAt:     a.now().UTC(),
	}, nil
}

func validate(targetURL, keyphrase string) (string, string, error) {
	pageURL := util.NormalizeURL(targetURL)
	if pageURL == "" {
		return "", "", model.NewValidationError("url is required")
	}
	keyphrase = strings.TrimSpace(keyphrase)
	if keyphrase == "" {
		return "", "", model.NewValidationError("keyphrase is required")
	}
	if !util.IsValidURL(pageURL) {
		return "", "", model.NewValidationError("invalid url format")
	}
	return pageURL, keyphrase, nil
}
