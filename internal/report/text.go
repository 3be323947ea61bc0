package report

import (
	"fmt"
	"strings"
	"time"

	"seoanalyzer/internal/model"
)

type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(rep *model.Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "SEO report for %s\n", rep.URL)
	fmt.Fprintf(&b, "Keyphrase: %s\n", rep.Keyphrase)
	if !rep.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "Analyzed:  %s\n", rep.AnalyzedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Score:     %d/100 (%s)\n", rep.Score, rep.Rating)
	fmt.Fprintf(&b, "Checks:    %d passed, %d failed\n", rep.PassedChecks, rep.FailedChecks)

	failed, passed := failedFirst(rep.Checks)
	if len(failed) > 0 {
		b.WriteString("\nNeeds attention\n")
		for _, c := range failed {
			fmt.Fprintf(&b, "  [FAIL] %s (%s)\n", c.Title, c.Priority)
			writeIndented(&b, c.Description, "         ")
			if c.Recommendation != "" {
				writeIndented(&b, "Recommendation: "+c.Recommendation, "         ")
			}
		}
	}
	if len(passed) > 0 {
		b.WriteString("\nPassed\n")
		for _, c := range passed {
			fmt.Fprintf(&b, "  [PASS] %s\n", c.Title)
		}
	}

	return []byte(b.String()), nil
}

func (r *TextRenderer) Extension() string {
	return ".txt"
}

func writeIndented(b *strings.Builder, text, indent string) {
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
