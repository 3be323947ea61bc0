package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"

	"seoanalyzer/internal/config"
	"seoanalyzer/internal/model"
	"seoanalyzer/internal/report"
	"seoanalyzer/internal/service"
)

const maxConcurrentAnalyses = 4

var (
	flagKeyphrase string
	flagFormat    string
	flagOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url> [url...]",
	Short: "Analyze one or more pages and print or save the report",
	Long: `Analyze fetches each URL, runs every SEO check for the keyphrase and
renders the report as text, JSON or PDF.

With a single URL --output names the output file. With several URLs it names a
directory that receives one file per page. PDF reports are always written to
files.

Examples:
  seoanalyzer analyze https://example.com/blue-widgets --keyphrase "blue widgets"
  seoanalyzer analyze example.com/a example.com/b -k widgets --format json --output ./reports
  seoanalyzer analyze https://example.com -k "acme tools" --format pdf --output acme.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&flagKeyphrase, "keyphrase", "k", "", "Focus keyphrase (required)")
	analyzeCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json or pdf")
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, or directory when analyzing several URLs")
	_ = analyzeCmd.MarkFlagRequired("keyphrase")
}

type analysis struct {
	url    string
	report *model.Report
	err    error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	renderer, err := report.ForFormat(flagFormat)
	if err != nil {
		return err
	}

	analyzer := newAnalyzer(config.AppConfig)
	results := analyzeAll(cmd.Context(), analyzer, args, flagKeyphrase)

	var failed int
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %s\n", res.url, describeError(res.err))
			continue
		}
		if err := emit(cmd.OutOrStdout(), renderer, res, len(args) > 1); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d pages could not be analyzed", failed, len(results))
	}
	return nil
}

func analyzeAll(ctx context.Context, a *service.Analyzer, urls []string, keyphrase string) []analysis {
	if ctx == nil {
		ctx = context.Background()
	}
	mapper := iter.Mapper[string, analysis]{MaxGoroutines: maxConcurrentAnalyses}
	return mapper.Map(urls, func(u *string) analysis {
		rep, err := a.Analyze(ctx, *u, keyphrase)
		return analysis{url: *u, report: rep, err: err}
	})
}

func describeError(err error) string {
	var ae *model.AnalysisError
	if errors.As(err, &ae) {
		if ae.Cause != nil {
			return fmt.Sprintf("%s (%v)", ae.Message, ae.Cause)
		}
		return ae.Message
	}
	return err.Error()
}

func emit(stdout io.Writer, renderer report.Renderer, res analysis, many bool) error {
	data, err := renderer.Render(res.report)
	if err != nil {
		return fmt.Errorf("rendering report for %s: %w", res.url, err)
	}

	path := outputPath(res.report.URL, renderer.Extension(), many)
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Written: %s\n", path)
	return nil
}

// outputPath is empty when the report goes to stdout.
func outputPath(pageURL, ext string, many bool) string {
	toFile := ext == ".pdf"
	switch {
	case flagOutput != "" && !many:
		return flagOutput
	case flagOutput != "":
		return filepath.Join(flagOutput, fileSlug(pageURL)+ext)
	case toFile:
		return fileSlug(pageURL) + ext
	}
	return ""
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// fileSlug turns a page URL into a file name such as example-com-blue-widgets.
func fileSlug(pageURL string) string {
	name := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		name = u.Host + u.Path
	}
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "report"
	}
	return slug
}
