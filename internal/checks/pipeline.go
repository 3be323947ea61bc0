package checks

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/model"
)

const (
	// FallbackRecommendation replaces advice the recommender could not produce.
	FallbackRecommendation = "Unable to generate recommendation at this time. Please try again later."

	evaluationFailedDescription = "This check could not be completed because the page data was unexpected."
)

// Recommender phrases advice for a failed check.
type Recommender interface {
	Recommend(ctx context.Context, checkTitle, keyphrase, context string) (string, error)
}

// Observer is notified of every evaluated check.
type Observer interface {
	ObserveCheck(title string, passed bool)
}

// Pipeline evaluates the registered checks in order. It keeps no state
// between runs, so one Pipeline can serve concurrent analyses.
type Pipeline struct {
	checks      []Descriptor
	recommender Recommender
	observer    Observer
}

type Option func(*Pipeline)

// WithObserver reports every check outcome to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// NewPipeline runs the canonical checks. A nil recommender makes every
// externally advised check fall back to FallbackRecommendation.
func NewPipeline(r Recommender, opts ...Option) *Pipeline {
	return newPipeline(registry, r, opts...)
}

func newPipeline(checks []Descriptor, r Recommender, opts ...Option) *Pipeline {
	p := &Pipeline{checks: checks, recommender: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// tally is threaded through the fold over the check list.
type tally struct {
	checks []model.CheckResult
	passed int
	failed int
}

func (t tally) add(r model.CheckResult) tally {
	t.checks = append(t.checks, r)
	if r.Passed {
		t.passed++
	} else {
		t.failed++
	}
	return t
}

// Run evaluates every check against doc. It never fails: a check that panics
// is recorded as failed and the remaining checks still run.
func (p *Pipeline) Run(ctx context.Context, doc *model.Document, keyphrase, sourceURL string) model.AnalysisResult {
	in := NewInput(doc, keyphrase, sourceURL)

	acc := tally{checks: make([]model.CheckResult, 0, len(p.checks))}
	for _, d := range p.checks {
		acc = acc.add(p.runCheck(ctx, d, in))
	}

	return model.AnalysisResult{
		Checks:       acc.checks,
		PassedChecks: acc.passed,
		FailedChecks: acc.failed,
	}
}

func (p *Pipeline) runCheck(ctx context.Context, d Descriptor, in *Input) model.CheckResult {
	outcome := evaluate(d, in)

	result := model.CheckResult{
		Title:    d.Title,
		Passed:   outcome.Passed,
		Priority: PriorityOf(d.ID),
	}
	result.Description = describe(d, outcome)

	if !outcome.Passed {
		result.Recommendation = p.advise(ctx, d, in, outcome)
	}

	if p.observer != nil {
		p.observer.ObserveCheck(d.Title, result.Passed)
	}
	return result
}

// evaluate runs the predicate, converting a panic into a failed outcome.
func evaluate(d Descriptor, in *Input) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Error("check evaluation failed",
				zap.String("check", d.Title),
				zap.Any("error", r),
			)
			out = Outcome{Passed: false, Description: evaluationFailedDescription}
		}
	}()
	if d.Evaluate == nil {
		panic(fmt.Sprintf("check %q has no evaluator", d.Title))
	}
	return d.Evaluate(in)
}

func describe(d Descriptor, o Outcome) string {
	if o.Description != "" {
		return o.Description
	}
	if o.Passed && d.Success != "" {
		return d.Success
	}
	if !o.Passed && d.Failure != "" {
		return d.Failure
	}
	if o.Passed {
		return d.Title + " check passed."
	}
	return d.Title + " check failed."
}

func (p *Pipeline) advise(ctx context.Context, d Descriptor, in *Input, o Outcome) string {
	switch d.Advice {
	case SelfDescribing:
		return ""
	case LocalAdvice:
		return o.Advice
	}

	if p.recommender == nil {
		return FallbackRecommendation
	}
	text, err := p.recommender.Recommend(ctx, d.Title, in.Keyphrase, o.Context)
	if err != nil {
		log.Logger.Warn("recommendation failed, using fallback",
			zap.String("check", d.Title),
			zap.Error(err),
		)
		return FallbackRecommendation
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackRecommendation
	}
	return text
}
