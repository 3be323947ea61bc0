package checks

import (
	"fmt"
	"strings"
)

const (
	articleMinParagraphs = 5
	articleMinChars      = 1500
)

var (
	productSignals      = []string{"product", "price", "buy"}
	faqSignals          = []string{"frequently asked", "faq"}
	organizationSignals = []string{"about us", "contact us", "our team"}
)

type schemaSuggestion struct {
	types  string
	reason string
}

// schemaAdvice recommends schema.org types from signals on the page itself.
// It never calls out to the recommender.
func schemaAdvice(in *Input) string {
	doc := in.Doc
	title := strings.ToLower(doc.Title)
	body := strings.ToLower(doc.BodyText)

	var suggestions []schemaSuggestion
	organization := false

	if in.IsHomepage() {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "Organization and WebSite",
			reason: "this is the homepage; describe the business, its logo and its search box",
		})
		organization = true
	}

	if containsAny(title, productSignals) || containsAny(body, productSignals) {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "Product",
			reason: "the page mentions products or prices; add name, image, offers and price",
		})
	}

	if looksLikeArticle(doc.Paragraphs) {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "Article",
			reason: "the page has long-form content; add headline, author and datePublished",
		})
	}

	if hasFAQSignals(doc.Subheadings, body) {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "FAQPage",
			reason: "the page contains questions and answers that can appear as rich results",
		})
	}

	if !organization && containsAny(body, organizationSignals) {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "Organization",
			reason: "the page describes the company or its team",
		})
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, schemaSuggestion{
			types:  "WebPage",
			reason: "describe the page name, description and primary topic",
		})
	}

	var sb strings.Builder
	sb.WriteString("Add JSON-LD structured data to help search engines understand this page:")
	for i, s := range suggestions {
		fmt.Fprintf(&sb, "\n%d. %s schema: %s.", i+1, s.types, s.reason)
	}
	return sb.String()
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func looksLikeArticle(paragraphs []string) bool {
	if len(paragraphs) >= articleMinParagraphs {
		return true
	}
	chars := 0
	for _, p := range paragraphs {
		chars += len(p)
	}
	return chars >= articleMinChars
}

func hasFAQSignals(headings []string, body string) bool {
	if containsAny(body, faqSignals) {
		return true
	}
	questions := 0
	for _, h := range headings {
		if strings.HasSuffix(strings.TrimSpace(h), "?") {
			questions++
		}
	}
	return questions >= 2
}
