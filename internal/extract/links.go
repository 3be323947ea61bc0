package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractLinks splits anchors into internal and outbound absolute URLs.
// Hrefs that do not resolve to an http(s) URL with a host are dropped.
func extractLinks(doc *goquery.Document, base *url.URL) (internal, outbound []string) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved, ok := resolveHTTP(base, href)
		if !ok {
			return
		}
		if isInternalLink(resolved, base) {
			internal = append(internal, resolved.String())
		} else {
			outbound = append(outbound, resolved.String())
		}
	})
	return internal, outbound
}

func resolveHTTP(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(parsed)
	scheme := strings.ToLower(resolved.Scheme)
	if (scheme != "http" && scheme != "https") || resolved.Hostname() == "" {
		return nil, false
	}
	return resolved, true
}

func isInternalLink(link, base *url.URL) bool {
	return strings.EqualFold(link.Hostname(), base.Hostname())
}
