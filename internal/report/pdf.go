package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"seoanalyzer/internal/model"
)

// the core fonts only cover cp1252
var pdfReplacer = strings.NewReplacer("→", "->", "“", `"`, "”", `"`, "’", "'")

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(rep *model.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SEO report: "+rep.URL, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfReplacer.Replace(s)) }

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "SEO Report", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, text("URL: "+rep.URL), "", "L", false)
	pdf.MultiCell(0, 5, text("Keyphrase: "+rep.Keyphrase), "", "L", false)
	if !rep.AnalyzedAt.IsZero() {
		pdf.MultiCell(0, 5, "Analyzed: "+rep.AnalyzedAt.Format(time.RFC3339), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, fmt.Sprintf("Score: %d/100 (%s)", rep.Score, rep.Rating), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("%d checks passed, %d failed", rep.PassedChecks, rep.FailedChecks), "", "L", false)

	failed, passed := failedFirst(rep.Checks)
	if len(failed) > 0 {
		renderSection(pdf, "Needs attention")
		for _, c := range failed {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(180, 30, 30)
			pdf.MultiCell(0, 6, text(fmt.Sprintf("%s (%s priority)", c.Title, c.Priority)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, text(c.Description), "", "L", false)
			if c.Recommendation != "" {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.SetFillColor(245, 245, 245)
				pdf.MultiCell(0, 5, text("Recommendation: "+c.Recommendation), "", "L", true)
			}
			pdf.Ln(2)
		}
	}

	if len(passed) > 0 {
		renderSection(pdf, "Passed")
		pdf.SetFont("Helvetica", "", 10)
		for _, c := range passed {
			pdf.MultiCell(0, 5, text("- "+c.Title), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderSection(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, title, "", "L", false)
	pdf.Ln(1)
}
