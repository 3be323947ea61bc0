package extract

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"seoanalyzer/internal/model"
)

const (
	// below this length code is treated as minified, there is too little to judge
	minifiedFloor = 50

	maxNewlineRatio    = 0.01
	maxWhitespaceRatio = 0.15
	minAvgLineLength   = 500
)

// bundler output such as app.3f9a2c1d.js or main-5d41402a.css
var hashedBundle = regexp.MustCompile(`[.-][0-9a-f]{8,}\.(js|css)$`)

// IsMinified guesses whether code was compacted for delivery. It looks at the
// share of newlines and whitespace and at the average non-blank line length.
// It is a heuristic; odd inputs such as a long one-line comment can be
// misclassified.
func IsMinified(code string) bool {
	length := len(code)
	if length < minifiedFloor {
		return true
	}

	newlines := strings.Count(code, "\n")
	whitespace := 0
	for _, r := range code {
		if unicode.IsSpace(r) {
			whitespace++
		}
	}

	nonBlank := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	avgLineLength := 0.0
	if nonBlank > 0 {
		avgLineLength = float64(length) / float64(nonBlank)
	}

	newlineRatio := float64(newlines) / float64(length)
	whitespaceRatio := float64(whitespace) / float64(length)

	return (newlineRatio < maxNewlineRatio && whitespaceRatio < maxWhitespaceRatio) ||
		avgLineLength > minAvgLineLength
}

// isMinifiedURL classifies an external resource by file name only, since
// the pipeline never downloads linked resources.
func isMinifiedURL(u *url.URL) bool {
	name := strings.ToLower(path.Base(u.Path))
	return strings.Contains(name, ".min.") || hashedBundle.MatchString(name)
}

func extractResources(doc *goquery.Document, base *url.URL) model.Resources {
	var res model.Resources

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			if u, ok := resolveResource(base, src); ok {
				res.Scripts = append(res.Scripts, model.Resource{URL: u.String(), IsMinified: isMinifiedURL(u)})
			}
			return
		}
		if !isJavaScript(s.AttrOr("type", "")) {
			return
		}
		if code := strings.TrimSpace(s.Text()); code != "" {
			res.Scripts = append(res.Scripts, model.Resource{
				URL:           model.InlineScriptURL,
				InlineContent: code,
				IsMinified:    IsMinified(code),
			})
		}
	})

	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if !isStylesheetLink(s.AttrOr("rel", "")) {
			return
		}
		if u, ok := resolveResource(base, s.AttrOr("href", "")); ok {
			res.Stylesheets = append(res.Stylesheets, model.Resource{URL: u.String(), IsMinified: isMinifiedURL(u)})
		}
	})

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if code := strings.TrimSpace(s.Text()); code != "" {
			res.Stylesheets = append(res.Stylesheets, model.Resource{
				URL:           model.InlineStyleURL,
				InlineContent: code,
				IsMinified:    IsMinified(code),
			})
		}
	})

	return res
}

func resolveResource(base *url.URL, ref string) (*url.URL, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, false
	}
	return base.ResolveReference(parsed), true
}

// isJavaScript filters out data blocks such as JSON-LD or templates.
func isJavaScript(scriptType string) bool {
	t := strings.ToLower(strings.TrimSpace(scriptType))
	return t == "" || t == "module" || strings.Contains(t, "javascript") || strings.Contains(t, "ecmascript")
}

func isStylesheetLink(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" {
			return true
		}
	}
	return false
}
