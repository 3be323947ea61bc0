package model

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// CheckResult is the outcome of one SEO rule.
type CheckResult struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Passed         bool     `json:"passed"`
	Priority       Priority `json:"priority"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// AnalysisResult holds every check in canonical order.
// PassedChecks + FailedChecks always equals len(Checks).
type AnalysisResult struct {
	Checks       []CheckResult `json:"checks"`
	PassedChecks int           `json:"passedChecks"`
	FailedChecks int           `json:"failedChecks"`
}

// Report is what the analyze endpoint and CLI hand back to callers.
type Report struct {
	URL       string `json:"url"`
	Keyphrase string `json:"keyphrase"`
	AnalysisResult
	Score      int       `json:"score"`
	Rating     string    `json:"rating"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

type AnalyzeRequest struct {
	URL       string `json:"url"`
	Keyphrase string `json:"keyphrase"`
}
