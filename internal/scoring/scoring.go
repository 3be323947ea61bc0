// Package scoring turns check results into a 0-100 score and a rating band.
package scoring

import (
	"math"

	"seoanalyzer/internal/model"
)

var weights = map[model.Priority]int{
	model.PriorityHigh:   3,
	model.PriorityMedium: 2,
	model.PriorityLow:    1,
}

const defaultWeight = 2

func weight(p model.Priority) int {
	if w, ok := weights[p]; ok {
		return w
	}
	return defaultWeight
}

// Score is the weighted share of passed checks, rounded to the nearest
// integer. An empty list scores 0.
func Score(checks []model.CheckResult) int {
	var earned, total int
	for _, c := range checks {
		w := weight(c.Priority)
		total += w
		if c.Passed {
			earned += w
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(total)))
}

type band struct {
	min   int
	label string
}

var bands = []band{
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Fair"},
	{50, "Needs Work"},
}

func Rating(score int) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return "Poor"
}
