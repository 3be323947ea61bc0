// Package report renders an analysis report for the command line.
package report

import (
	"fmt"
	"strings"

	"seoanalyzer/internal/model"
)

// Renderer converts a report into an output format.
type Renderer interface {
	Render(r *model.Report) ([]byte, error)
	Extension() string
}

// ForFormat returns the renderer registered for name (text, json or pdf).
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown report format %q (want text, json or pdf)", name)
}

// failedFirst orders failed checks before passed ones, keeping canonical
// order inside each group.
func failedFirst(checks []model.CheckResult) (failed, passed []model.CheckResult) {
	for _, c := range checks {
		if c.Passed {
			passed = append(passed, c)
		} else {
			failed = append(failed, c)
		}
	}
	return failed, passed
}
