// Package extract turns raw page HTML into the normalized model.Document
// consumed by the check pipeline.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/model"
)

// HTMLExtractor builds documents with goquery selectors. It holds no state
// and is safe for concurrent use.
type HTMLExtractor struct{}

func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses rawHTML fetched from pageURL. Parsing is tolerant; only
// an unreadable document or an unusable page URL is an error.
func (e *HTMLExtractor) Extract(rawHTML, pageURL string) (*model.Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, model.NewParseError(pageURL, fmt.Errorf("invalid page URL %q", pageURL))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		log.Logger.Error("failed to parse HTML", zap.String("url", pageURL), zap.Error(err))
		return nil, model.NewParseError(pageURL, err)
	}

	d := &model.Document{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: metaContent(doc, "description"),
		BodyText:        visibleText(doc.Find("body")),
		Paragraphs:      extractParagraphs(doc),
		Images:          extractImages(doc),
		OpenGraph:       extractOpenGraph(doc),
		Resources:       extractResources(doc, base),
		Schema:          detectSchema(doc),
	}

	d.Headings = extractHeadings(doc)
	d.Subheadings = make([]string, 0, len(d.Headings))
	for _, h := range d.Headings {
		d.Subheadings = append(d.Subheadings, h.Text)
	}

	d.InternalLinks, d.OutboundLinks = extractLinks(doc, base)

	log.Logger.Debug("extracted document",
		zap.String("url", pageURL),
		zap.Int("paragraphs", len(d.Paragraphs)),
		zap.Int("headings", len(d.Headings)),
		zap.Int("images", len(d.Images)),
		zap.Int("internal_links", len(d.InternalLinks)),
		zap.Int("outbound_links", len(d.OutboundLinks)),
	)

	return d, nil
}

// metaContent returns the content attribute of the first meta tag whose
// name or property equals key.
func metaContent(doc *goquery.Document, key string) string {
	sel := doc.Find(fmt.Sprintf(`meta[name=%q], meta[property=%q]`, key, key)).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func extractOpenGraph(doc *goquery.Document) model.OpenGraph {
	return model.OpenGraph{
		Title:       metaContent(doc, "og:title"),
		Description: metaContent(doc, "og:description"),
		Image:       metaContent(doc, "og:image"),
		ImageWidth:  metaContent(doc, "og:image:width"),
		ImageHeight: metaContent(doc, "og:image:height"),
	}
}

// extractParagraphs selects every <p> in the page, not only those inside
// article or main containers.
func extractParagraphs(doc *goquery.Document) []string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

// extractHeadings keeps document order, which the hierarchy check relies on.
func extractHeadings(doc *goquery.Document) []model.Heading {
	var headings []model.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		headings = append(headings, model.Heading{
			Level: int(name[1] - '0'),
			Text:  text,
		})
	})
	return headings
}

// extractImages records every <img>, including those without alt text.
func extractImages(doc *goquery.Document) []model.Image {
	var images []model.Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images = append(images, model.Image{
			Src: strings.TrimSpace(s.AttrOr("src", "")),
			Alt: strings.TrimSpace(s.AttrOr("alt", "")),
		})
	})
	return images
}
