package checks

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"seoanalyzer/internal/model"
)

const (
	minContentWords = 300
	minDensity      = 0.5
	maxDensity      = 2.5

	ogTitleMin       = 10
	ogTitleMax       = 70
	ogDescriptionMin = 100
	ogDescriptionMax = 200
	ogImageMinWidth  = 1200
	ogImageMinHeight = 630

	minMinifiedPercent = 40.0

	// caps the image list handed to the recommender
	maxContextImages = 20
)

var nextGenExtensions = []string{".webp", ".avif", ".svg"}

func evalTitle(in *Input) Outcome {
	return Outcome{
		Passed:  containsFold(in.Doc.Title, in.Keyphrase),
		Context: in.Doc.Title,
	}
}

func evalMetaDescription(in *Input) Outcome {
	return Outcome{
		Passed:  containsFold(in.Doc.MetaDescription, in.Keyphrase),
		Context: in.Doc.MetaDescription,
	}
}

func evalURL(in *Input) Outcome {
	if in.IsHomepage() {
		return Outcome{
			Passed:      true,
			Description: "This is the homepage. Root URLs do not need to contain the focus keyphrase.",
			Context:     in.SourceURL,
		}
	}

	candidates := []string{strings.ToLower(in.SourceURL)}
	if decoded, err := url.PathUnescape(in.SourceURL); err == nil {
		candidates = append(candidates, strings.ToLower(decoded))
	}

	for _, form := range slugForms(in.Keyphrase) {
		for _, c := range candidates {
			if strings.Contains(c, form) {
				return Outcome{Passed: true, Context: in.SourceURL}
			}
		}
	}
	return Outcome{Passed: false, Context: in.SourceURL}
}

func evalContentLength(in *Input) Outcome {
	words := in.WordCount()
	if words >= minContentWords {
		return Outcome{
			Passed:      true,
			Description: fmt.Sprintf("The page contains %d words, above the recommended minimum of %d.", words, minContentWords),
			Context:     fmt.Sprintf("Current word count: %d", words),
		}
	}
	return Outcome{
		Passed: false,
		Description: fmt.Sprintf(
			"The page contains %d words. Add at least %d more to reach the recommended minimum of %d, covering the topic in more depth.",
			words, minContentWords-words, minContentWords),
		Context: fmt.Sprintf("Current word count: %d", words),
	}
}

// Density returns the keyphrase density of the body text in percent.
func Density(in *Input) float64 {
	total := in.WordCount()
	if total == 0 {
		return 0
	}
	occurrences := countOccurrences(in.Doc.BodyText, in.Keyphrase)
	phraseWords := wordCount(in.Keyphrase)
	return float64(occurrences*phraseWords) / float64(total) * 100
}

func evalDensity(in *Input) Outcome {
	density := Density(in)
	occurrences := countOccurrences(in.Doc.BodyText, in.Keyphrase)
	context := fmt.Sprintf("Current density: %.1f%% (%d occurrences in %d words)", density, occurrences, in.WordCount())

	switch {
	case density < minDensity:
		return Outcome{
			Description: fmt.Sprintf(
				"Keyphrase density is %.1f%%, below the recommended %.1f%%-%.1f%%. Use the focus keyphrase more often in the body text.",
				density, minDensity, maxDensity),
			Context: context,
		}
	case density > maxDensity:
		return Outcome{
			Description: fmt.Sprintf(
				"Keyphrase density is %.1f%%, above the recommended %.1f%%-%.1f%%. Reduce repetitions and use synonyms to avoid keyword stuffing.",
				density, minDensity, maxDensity),
			Context: context,
		}
	}
	return Outcome{
		Passed:      true,
		Description: fmt.Sprintf("Keyphrase density is %.1f%%, within the recommended %.1f%%-%.1f%%.", density, minDensity, maxDensity),
		Context:     context,
	}
}

func evalIntroduction(in *Input) Outcome {
	intro, ok := in.Doc.Introduction()
	if !ok {
		return Outcome{
			Description: "No introduction paragraph was found on the page. Add an opening paragraph that mentions the focus keyphrase.",
			Context:     "No introduction paragraph found",
		}
	}
	return Outcome{
		Passed:  containsFold(intro, in.Keyphrase),
		Context: intro,
	}
}

func evalH1(in *Input) Outcome {
	h1s := in.Doc.HeadingsAt(1)
	context := strings.Join(h1s, "\n")

	switch len(h1s) {
	case 0:
		return Outcome{
			Description: "The page has no H1 heading. Add exactly one H1 that contains the focus keyphrase.",
			Context:     "No H1 heading found",
		}
	case 1:
	default:
		return Outcome{
			Description: fmt.Sprintf("The page has %d H1 headings. Use exactly one H1 and make sure it contains the focus keyphrase.", len(h1s)),
			Context:     context,
		}
	}

	if containsFold(h1s[0], in.Keyphrase) {
		return Outcome{Passed: true, Context: context}
	}
	if containsAllWords(h1s[0], significantWords(in.Keyphrase)) {
		return Outcome{
			Passed:      true,
			Description: "The H1 heading contains all the important words of the focus keyphrase.",
			Context:     context,
		}
	}
	return Outcome{Context: context}
}

func evalH2(in *Input) Outcome {
	h2s := in.Doc.HeadingsAt(2)
	if len(h2s) == 0 {
		return Outcome{
			Description: "The page has no H2 headings. Add H2 subheadings and use the focus keyphrase in at least one of them.",
			Context:     "No H2 headings found",
		}
	}
	context := strings.Join(h2s, "\n")

	for _, h := range h2s {
		if containsFold(h, in.Keyphrase) {
			return Outcome{Passed: true, Context: context}
		}
	}

	words := significantWords(in.Keyphrase)
	for _, h := range h2s {
		if containsAllWords(h, words) {
			return Outcome{
				Passed:      true,
				Description: "An H2 heading contains all the important words of the focus keyphrase.",
				Context:     context,
			}
		}
	}
	if containsAllWords(context, words) {
		return Outcome{
			Passed:      true,
			Description: "The important words of the focus keyphrase are spread across the H2 headings.",
			Context:     context,
		}
	}
	return Outcome{Context: context}
}

// headingSkips lists every place where the outline goes deeper by more than
// one level, e.g. "H1 → H3".
func headingSkips(levels []int) []string {
	var skips []string
	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1]+1 {
			skips = append(skips, fmt.Sprintf("H%d → H%d", levels[i-1], levels[i]))
		}
	}
	return skips
}

func evalHeadingHierarchy(in *Input) Outcome {
	levels := make([]int, 0, len(in.Doc.Headings))
	outline := make([]string, 0, len(in.Doc.Headings))
	for _, h := range in.Doc.Headings {
		levels = append(levels, h.Level)
		outline = append(outline, fmt.Sprintf("H%d: %s", h.Level, h.Text))
	}
	context := strings.Join(outline, "\n")

	var issues []string
	switch h1 := len(in.Doc.HeadingsAt(1)); {
	case h1 == 0:
		issues = append(issues, "the page has no H1 heading")
	case h1 > 1:
		issues = append(issues, fmt.Sprintf("the page has %d H1 headings instead of one", h1))
	}
	if len(in.Doc.HeadingsAt(2)) == 0 {
		issues = append(issues, "the page has no H2 subheadings")
	}
	if skips := headingSkips(levels); len(skips) > 0 {
		issues = append(issues, "heading levels are skipped ("+strings.Join(skips, ", ")+")")
	}

	if len(issues) == 0 {
		return Outcome{Passed: true, Context: context}
	}
	return Outcome{
		Description: "Heading structure problems: " + strings.Join(issues, "; ") +
			". Use one H1 for the page title, H2 for main sections and go down one level at a time.",
		Context: context,
	}
}

func evalImageAlt(in *Input) Outcome {
	images := in.Doc.Images
	for _, img := range images {
		if containsFold(img.Alt, in.Keyphrase) {
			return Outcome{Passed: true, Context: imageContext(images)}
		}
	}
	if len(images) == 0 {
		return Outcome{
			Description: "The page has no images. Add at least one relevant image with alt text containing the focus keyphrase.",
			Context:     "No images found",
		}
	}
	return Outcome{Context: imageContext(images)}
}

func imageContext(images []model.Image) string {
	if len(images) > maxContextImages {
		images = images[:maxContextImages]
	}
	data, err := json.Marshal(images)
	if err != nil {
		return ""
	}
	return string(data)
}

func evalInternalLinks(in *Input) Outcome {
	n := len(in.Doc.InternalLinks)
	return Outcome{
		Passed:      n > 0,
		Description: linkSuccess(n, "internal"),
		Context:     fmt.Sprintf("Found %d internal links", n),
	}
}

func evalOutboundLinks(in *Input) Outcome {
	n := len(in.Doc.OutboundLinks)
	return Outcome{
		Passed:      n > 0,
		Description: linkSuccess(n, "outbound"),
		Context:     fmt.Sprintf("Found %d outbound links", n),
	}
}

// linkSuccess is empty for zero links so the descriptor's failure text is used.
func linkSuccess(n int, kind string) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("The page contains %d %s links.", n, kind)
}

func isNextGenImage(src string) bool {
	lower := strings.ToLower(strings.TrimSpace(src))
	if strings.HasPrefix(lower, "data:") {
		return strings.HasPrefix(lower, "data:image/webp") ||
			strings.HasPrefix(lower, "data:image/avif") ||
			strings.HasPrefix(lower, "data:image/svg")
	}
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range nextGenExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func evalNextGenImages(in *Input) Outcome {
	images := in.Doc.Images
	if len(images) == 0 {
		return Outcome{Passed: true, Description: "No images found, so there is nothing to convert to next-gen formats."}
	}

	var legacy []string
	for _, img := range images {
		if !isNextGenImage(img.Src) {
			legacy = append(legacy, img.Src)
		}
	}
	if len(legacy) == 0 {
		return Outcome{Passed: true, Description: fmt.Sprintf("All %d images use next-gen formats (WebP, AVIF or SVG).", len(images))}
	}

	examples := legacy
	if len(examples) > 3 {
		examples = examples[:3]
	}
	return Outcome{
		Description: fmt.Sprintf(
			"%d of %d images use older formats (for example %s). Convert them to WebP or AVIF for smaller, faster-loading images.",
			len(legacy), len(images), strings.Join(examples, ", ")),
		Context: strings.Join(legacy, "\n"),
	}
}

func evalOGImage(in *Input) Outcome {
	og := in.Doc.OpenGraph
	if og.Image == "" {
		return Outcome{Context: "No og:image found"}
	}

	width, werr := strconv.Atoi(strings.TrimSpace(og.ImageWidth))
	height, herr := strconv.Atoi(strings.TrimSpace(og.ImageHeight))
	var desc string
	switch {
	case werr != nil || herr != nil:
		desc = fmt.Sprintf(
			"The page has an Open Graph image. Its size is not declared; add og:image:width and og:image:height (%dx%d recommended).",
			ogImageMinWidth, ogImageMinHeight)
	case width >= ogImageMinWidth && height >= ogImageMinHeight:
		desc = fmt.Sprintf("The page has an Open Graph image with the recommended size (%dx%d).", width, height)
	default:
		desc = fmt.Sprintf(
			"The page has an Open Graph image, but its size (%dx%d) is below the recommended %dx%d.",
			width, height, ogImageMinWidth, ogImageMinHeight)
	}
	return Outcome{Passed: true, Description: desc, Context: og.Image}
}

func evalOGTitleDescription(in *Input) Outcome {
	og := in.Doc.OpenGraph
	titleLen := len([]rune(og.Title))
	descLen := len([]rune(og.Description))
	context := fmt.Sprintf("og:title (%d chars): %s\nog:description (%d chars): %s", titleLen, og.Title, descLen, og.Description)

	var issues []string
	switch {
	case og.Title == "":
		issues = append(issues, "og:title is missing")
	case titleLen < ogTitleMin || titleLen > ogTitleMax:
		issues = append(issues, fmt.Sprintf("og:title is %d characters (recommended %d-%d)", titleLen, ogTitleMin, ogTitleMax))
	}
	switch {
	case og.Description == "":
		issues = append(issues, "og:description is missing")
	case descLen < ogDescriptionMin || descLen > ogDescriptionMax:
		issues = append(issues, fmt.Sprintf("og:description is %d characters (recommended %d-%d)", descLen, ogDescriptionMin, ogDescriptionMax))
	}

	if len(issues) == 0 {
		return Outcome{Passed: true, Context: context}
	}
	return Outcome{
		Description: "Open Graph tags need attention: " + strings.Join(issues, "; ") + ".",
		Context:     context,
	}
}

func evalCodeMinification(in *Input) Outcome {
	resources := in.Doc.Resources.All()
	total := len(resources)
	if total == 0 {
		return Outcome{Passed: true, Description: "No JavaScript or CSS resources were found on the page."}
	}

	minified := 0
	var unminified []string
	for _, r := range resources {
		if r.IsMinified {
			minified++
		} else {
			unminified = append(unminified, r.URL)
		}
	}
	percent := float64(minified) / float64(total) * 100

	if percent >= minMinifiedPercent {
		return Outcome{
			Passed:      true,
			Description: fmt.Sprintf("%d of %d JavaScript and CSS resources (%.0f%%) appear to be minified.", minified, total, percent),
		}
	}
	return Outcome{
		Description: fmt.Sprintf(
			"Only %d of %d JavaScript and CSS resources (%.0f%%) appear to be minified. Minify scripts and stylesheets to reduce page weight.",
			minified, total, percent),
		Context: strings.Join(unminified, "\n"),
	}
}

func evalSchemaMarkup(in *Input) Outcome {
	schema := in.Doc.Schema
	if schema.Detected {
		desc := "Structured data was found on the page."
		if len(schema.Types) > 0 {
			desc = "Structured data was found on the page: " + strings.Join(schema.Types, ", ") + "."
		}
		return Outcome{Passed: true, Description: desc}
	}
	return Outcome{
		Context: "No structured data found",
		Advice:  schemaAdvice(in),
	}
}
