package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seoanalyzer/internal/extract"
	"seoanalyzer/internal/fetch"
	"seoanalyzer/internal/model"
)

const ogDescription = "Discover durable, hand-finished blue widgets for every room in your home, shipped quickly and backed by a two-year warranty."

// widgetPage passes every check except Internal Links.
var widgetPage = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>Shop Blue Widgets Online</title>
  <meta name="description" content="Buy durable blue widgets online.">
  <meta property="og:title" content="Blue Widgets Shop">
  <meta property="og:description" content="%s">
  <meta property="og:image" content="https://cdn.example.org/og.webp">
  <meta property="og:image:width" content="1200">
  <meta property="og:image:height" content="630">
  <script type="application/ld+json">{"@context":"https://schema.org","@type":"Product","name":"Blue Widget"}</script>
  <script>var a=1;</script>
</head>
<body>
  <h1>Blue Widgets for Every Home</h1>
  <p>Our blue widgets are built to last and look great in any room.</p>
  <img src="/img/blue-widgets.webp" alt="Blue widgets on a shelf">
  <h2>Why Choose Blue Widgets</h2>
  <p>%s</p>
  <h2>Caring for Your Widgets</h2>
  <p>Read the <a href="https://example.org/guide">care guide</a> for details.</p>
</body>
</html>`, ogDescription, strings.TrimSpace(strings.Repeat("lorem ", 300)))

type stubRecommender struct {
	calls []string
}

func (s *stubRecommender) Recommend(_ context.Context, title, _, _ string) (string, error) {
	s.calls = append(s.calls, title)
	return "Link to related pages on this site.", nil
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/blue-widgets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(widgetPage))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAnalyzer(r *stubRecommender) *Analyzer {
	return NewAnalyzer(fetch.New(5*time.Second, "test-agent"), extract.New(), r)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	srv := newPageServer(t)
	rec := &stubRecommender{}
	a := newTestAnalyzer(rec)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	pageURL := srv.URL + "/blue-widgets"
	report, err := a.Analyze(context.Background(), pageURL, "  blue widgets ")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if report.URL != pageURL || report.Keyphrase != "blue widgets" {
		t.Errorf("report identity = %q / %q", report.URL, report.Keyphrase)
	}
	if !report.AnalyzedAt.Equal(fixed) {
		t.Errorf("AnalyzedAt = %v", report.AnalyzedAt)
	}
	if len(report.Checks) != 17 {
		t.Fatalf("got %d checks, want 17", len(report.Checks))
	}
	if report.FailedChecks != 1 || report.PassedChecks != 16 {
		for _, c := range report.Checks {
			if !c.Passed {
				t.Logf("failed: %s: %s", c.Title, c.Description)
			}
		}
		t.Fatalf("passed/failed = %d/%d, want 16/1", report.PassedChecks, report.FailedChecks)
	}

	for _, c := range report.Checks {
		if c.Title == "Internal Links" {
			if c.Passed {
				t.Error("Internal Links should fail")
			}
			if c.Recommendation != "Link to related pages on this site." {
				t.Errorf("Recommendation = %q", c.Recommendation)
			}
		}
	}
	if len(rec.calls) != 1 || rec.calls[0] != "Internal Links" {
		t.Errorf("recommender calls = %v", rec.calls)
	}

	// 34 of 36 weight points
	if report.Score != 94 || report.Rating != "Excellent" {
		t.Errorf("score = %d (%s), want 94 (Excellent)", report.Score, report.Rating)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	a := newTestAnalyzer(&stubRecommender{})

	tests := []struct {
		name      string
		url       string
		keyphrase string
		message   string
	}{
		{"missing url", "  ", "blue widgets", "url is required"},
		{"missing keyphrase", "https://example.com", " ", "keyphrase is required"},
		{"invalid url", "https://exa mple.com", "blue widgets", "invalid url format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(context.Background(), tt.url, tt.keyphrase)
			ae, ok := model.AsAnalysisError(err)
			if !ok {
				t.Fatalf("err = %v, want AnalysisError", err)
			}
			if ae.Code != model.ErrCodeValidation || ae.Message != tt.message {
				t.Errorf("err = %+v", ae)
			}
		})
	}
}

func TestAnalyzeFetchError(t *testing.T) {
	srv := newPageServer(t)
	a := newTestAnalyzer(&stubRecommender{})

	_, err := a.Analyze(context.Background(), srv.URL+"/broken", "blue widgets")
	ae, ok := model.AsAnalysisError(err)
	if !ok || ae.Code != model.ErrCodeFetch || ae.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want fetch error with 404", err)
	}
}

type fakeFetcher struct {
	result *fetch.Result
	urls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, u string) (*fetch.Result, error) {
	f.urls = append(f.urls, u)
	return f.result, nil
}

type failingExtractor struct{}

func (failingExtractor) Extract(_, pageURL string) (*model.Document, error) {
	return nil, model.NewParseError(pageURL, errors.New("bad markup"))
}

func TestAnalyzeParseError(t *testing.T) {
	f := &fakeFetcher{result: &fetch.Result{HTML: "<html>"}}
	a := NewAnalyzer(f, failingExtractor{}, nil)

	_, err := a.Analyze(context.Background(), "example.com/page", "blue widgets")
	if code := model.ErrorCode(err); code != model.ErrCodeParse {
		t.Fatalf("ErrorCode = %s, want %s", code, model.ErrCodeParse)
	}
	if len(f.urls) != 1 || f.urls[0] != "https://example.com/page" {
		t.Errorf("fetched %v, want the normalized https URL", f.urls)
	}
}

func TestAnalyzeUsesFinalURLForLinks(t *testing.T) {
	page := `<html><body><a href="https://www.example.com/about">About</a></body></html>`
	f := &fakeFetcher{result: &fetch.Result{HTML: page, FinalURL: "https://www.example.com/new"}}
	a := NewAnalyzer(f, extract.New(), nil)

	report, err := a.Analyze(context.Background(), "https://example.com/old", "widgets")
	if err != nil {
		t.Fatal(err)
	}
	if report.URL != "https://example.com/old" {
		t.Errorf("URL = %q, want the requested URL", report.URL)
	}
	for _, c := range report.Checks {
		if c.Title == "Internal Links" && !c.Passed {
			t.Error("link on the redirect target host should count as internal")
		}
		if !c.Passed && c.Recommendation == "" && c.Title == "Keyphrase in Title" {
			t.Error("nil recommender must still yield the fallback recommendation")
		}
	}
}
