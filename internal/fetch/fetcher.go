// Package fetch retrieves the raw HTML of the page under analysis.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/model"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "SEOAnalyzer/1.0"

	// pages larger than this are truncated rather than rejected
	maxBodyBytes = 10 << 20
)

// Result is the decoded page body plus response metadata.
type Result struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	HTML        string
}

// Fetcher issues a single GET per page.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads targetURL and decodes the body to UTF-8 using the declared
// or sniffed charset. Any transport failure or non-2xx status is a fetch error.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, model.NewFetchError(targetURL, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Logger.Error("failed to fetch URL",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, model.NewFetchError(targetURL, fmt.Errorf("request timed out: %w", err))
		}
		return nil, model.NewFetchError(targetURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Logger.Warn("unexpected status code",
			zap.String("url", targetURL),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, model.NewHTTPStatusError(targetURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := readDecoded(io.LimitReader(resp.Body, maxBodyBytes), contentType)
	if err != nil {
		log.Logger.Warn("failed to read response body",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		return nil, model.NewFetchError(targetURL, fmt.Errorf("reading response body: %w", err))
	}

	log.Logger.Info("successfully fetched page",
		zap.String("url", targetURL),
		zap.Int("content_length", len(body)),
		zap.Int("status_code", resp.StatusCode),
	)

	return &Result{
		URL:         targetURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        body,
	}, nil
}

// readDecoded converts the body to UTF-8. Unknown charsets fall back to the
// raw bytes so a bad declaration never fails the analysis.
func readDecoded(r io.Reader, contentType string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	decoded, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw), nil
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return string(raw), nil
	}
	return string(text), nil
}
