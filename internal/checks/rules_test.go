package checks

import (
	"math"
	"strings"
	"testing"

	"seoanalyzer/internal/model"
)

const (
	testKeyphrase = "blue widgets"
	testURL       = "https://example.com/blue-widgets"
)

// passingDoc returns a document that satisfies every check for testKeyphrase.
func passingDoc() *model.Document {
	h1 := "Blue Widgets for Every Home"
	h2a := "Why Blue Widgets Last"
	h2b := "Caring for Your Widgets"
	intro := "Our blue widgets are built to last."
	filler := strings.TrimSpace(strings.Repeat("lorem ", 300))

	return &model.Document{
		Title:           "Shop Blue Widgets Online",
		MetaDescription: "Find the best blue widgets, shipped fast.",
		BodyText:        strings.Join([]string{h1, h2a, intro, filler, h2b}, " "),
		Paragraphs:      []string{intro, filler},
		Headings: []model.Heading{
			{Level: 1, Text: h1},
			{Level: 2, Text: h2a},
			{Level: 2, Text: h2b},
		},
		Subheadings:   []string{h1, h2a, h2b},
		Images:        []model.Image{{Src: "/img/blue.webp", Alt: "A row of blue widgets"}},
		InternalLinks: []string{"https://example.com/about"},
		OutboundLinks: []string{"https://other.org/reference"},
		OpenGraph: model.OpenGraph{
			Title:       "Blue Widgets Shop",
			Description: "Discover durable, hand-finished blue widgets for every room in your home, shipped quickly and backed by a two-year warranty.",
			Image:       "https://example.com/og.webp",
			ImageWidth:  "1200",
			ImageHeight: "630",
		},
		Resources: model.Resources{
			Scripts: []model.Resource{{URL: model.InlineScriptURL, InlineContent: "a()", IsMinified: true}},
		},
		Schema: model.Schema{Detected: true, Types: []string{"Product"}},
	}
}

func evalWith(eval func(*Input) Outcome, mutate func(*model.Document), keyphrase, sourceURL string) Outcome {
	doc := passingDoc()
	if mutate != nil {
		mutate(doc)
	}
	return eval(NewInput(doc, keyphrase, sourceURL))
}

func TestPassingDocPassesEveryCheck(t *testing.T) {
	in := NewInput(passingDoc(), testKeyphrase, testURL)
	for _, d := range registry {
		if out := d.Evaluate(in); !out.Passed {
			t.Errorf("%s failed: %s", d.Title, out.Description)
		}
	}
}

func TestEvalTitleIsCaseInsensitive(t *testing.T) {
	out := evalWith(evalTitle, func(d *model.Document) { d.Title = "Best WIDGET SHOP in town" }, "Widget Shop", testURL)
	if !out.Passed {
		t.Error("expected case-insensitive title match")
	}

	out = evalWith(evalTitle, func(d *model.Document) { d.Title = "Red gadgets" }, testKeyphrase, testURL)
	if out.Passed || out.Context != "Red gadgets" {
		t.Errorf("expected failure with title as context, got %+v", out)
	}
}

func TestEvalMetaDescription(t *testing.T) {
	out := evalWith(evalMetaDescription, func(d *model.Document) { d.MetaDescription = "" }, testKeyphrase, testURL)
	if out.Passed {
		t.Error("empty meta description must fail")
	}
}

func TestEvalURL(t *testing.T) {
	tests := []struct {
		name      string
		sourceURL string
		keyphrase string
		expected  bool
		homepage  bool
	}{
		{"homepage with slash", "https://example.com/", "anything at all", true, true},
		{"homepage without slash", "https://example.com", "anything at all", true, true},
		{"hyphenated slug", "https://example.com/shop/blue-widgets", testKeyphrase, true, false},
		{"underscored slug", "https://example.com/blue_widgets.html", testKeyphrase, true, false},
		{"encoded space", "https://example.com/search/blue%20widgets", testKeyphrase, true, false},
		{"single word case insensitive", "https://example.com/Widgets", "widgets", true, false},
		{"missing", "https://example.com/products/123", testKeyphrase, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalURL, nil, tt.keyphrase, tt.sourceURL)
			if out.Passed != tt.expected {
				t.Errorf("evalURL(%q) passed = %v, want %v", tt.sourceURL, out.Passed, tt.expected)
			}
			if tt.homepage && !strings.Contains(out.Description, "homepage") {
				t.Errorf("expected homepage wording, got %q", out.Description)
			}
		})
	}
}

func TestEvalContentLength(t *testing.T) {
	out := evalWith(evalContentLength, func(d *model.Document) {
		d.BodyText = strings.Repeat("word ", 120)
	}, testKeyphrase, testURL)

	if out.Passed {
		t.Fatal("120 words must fail")
	}
	if !strings.Contains(out.Description, "120 words") || !strings.Contains(out.Description, "180 more") {
		t.Errorf("Description = %q", out.Description)
	}

	out = evalWith(evalContentLength, func(d *model.Document) {
		d.BodyText = strings.Repeat("word ", 300)
	}, testKeyphrase, testURL)
	if !out.Passed {
		t.Error("exactly 300 words must pass")
	}
}

func TestDensity(t *testing.T) {
	body := strings.Repeat("widget ", 10) + strings.Repeat("lorem ", 990)
	in := NewInput(&model.Document{BodyText: body}, "widget", testURL)

	if got := Density(in); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Density() = %v, want 1.0", got)
	}
	if out := evalDensity(in); !out.Passed {
		t.Errorf("1%% density must pass: %s", out.Description)
	}

	if got := Density(NewInput(&model.Document{}, "widget", testURL)); got != 0 {
		t.Errorf("Density() of empty body = %v, want 0", got)
	}
}

func TestEvalDensityOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		body string
		hint string
	}{
		{"too low", "widget " + strings.Repeat("lorem ", 999), "more often"},
		{"too high", strings.Repeat("widget lorem ", 50), "Reduce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalDensity(NewInput(&model.Document{BodyText: tt.body}, "widget", testURL))
			if out.Passed {
				t.Fatal("expected density check to fail")
			}
			if !strings.Contains(out.Description, tt.hint) {
				t.Errorf("Description = %q, want hint %q", out.Description, tt.hint)
			}
		})
	}
}

func TestDensityIgnoresLongerAccentedWords(t *testing.T) {
	body := strings.Repeat("cafés ", 10) + strings.Repeat("lorem ", 990)
	in := NewInput(&model.Document{BodyText: body}, "café", testURL)

	if got := Density(in); got != 0 {
		t.Errorf("Density() = %v, want 0", got)
	}
	if evalDensity(in).Passed {
		t.Error("density check must fail when the keyphrase only occurs inside longer words")
	}

	in = NewInput(&model.Document{BodyText: strings.Repeat("café ", 10) + strings.Repeat("lorem ", 990)}, "Café", testURL)
	if got := Density(in); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Density() = %v, want 1.0", got)
	}
}

func TestEvalIntroduction(t *testing.T) {
	out := evalWith(evalIntroduction, func(d *model.Document) { d.Paragraphs = nil }, testKeyphrase, testURL)
	if out.Passed {
		t.Fatal("missing introduction must fail")
	}
	if !strings.Contains(out.Description, "No introduction paragraph") {
		t.Errorf("Description = %q", out.Description)
	}

	out = evalWith(evalIntroduction, func(d *model.Document) {
		d.Paragraphs = []string{"We make   Blue\nWidgets by hand."}
	}, "blue  widgets", testURL)
	if !out.Passed {
		t.Error("whitespace differences must not break the introduction match")
	}

	out = evalWith(evalIntroduction, func(d *model.Document) {
		d.Paragraphs = []string{"Welcome to our shop.", "We sell blue widgets."}
	}, testKeyphrase, testURL)
	if out.Passed {
		t.Error("only the first paragraph counts as the introduction")
	}
}

func TestEvalH1(t *testing.T) {
	tests := []struct {
		name      string
		headings  []model.Heading
		keyphrase string
		expected  bool
	}{
		{"exact match", []model.Heading{{Level: 1, Text: "Blue Widgets Guide"}}, testKeyphrase, true},
		{"word fallback", []model.Heading{{Level: 1, Text: "Widgets That Are Blue"}}, testKeyphrase, true},
		{"fallback ignores short words", []model.Heading{{Level: 1, Text: "Tie Guide"}}, "how to tie a tie", false},
		{"only short words", []model.Heading{{Level: 1, Text: "Something else"}}, "a to", false},
		{"missing word", []model.Heading{{Level: 1, Text: "Blue Paint"}}, testKeyphrase, false},
		{"no h1", []model.Heading{{Level: 2, Text: "Blue Widgets"}}, testKeyphrase, false},
		{"two h1", []model.Heading{{Level: 1, Text: "Blue Widgets"}, {Level: 1, Text: "Blue Widgets again"}}, testKeyphrase, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalH1, func(d *model.Document) { d.Headings = tt.headings }, tt.keyphrase, testURL)
			if out.Passed != tt.expected {
				t.Errorf("evalH1() passed = %v, want %v (%s)", out.Passed, tt.expected, out.Description)
			}
		})
	}
}

func TestEvalH2(t *testing.T) {
	h1 := model.Heading{Level: 1, Text: "Title"}
	tests := []struct {
		name     string
		h2s      []string
		expected bool
	}{
		{"exact in one", []string{"Shipping", "Blue widgets explained"}, true},
		{"all words in one", []string{"Widgets in blue"}, true},
		{"words spread across", []string{"Blue paint", "Widgets guide"}, true},
		{"missing word", []string{"Blue paint", "Shipping"}, false},
		{"no h2", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalH2, func(d *model.Document) {
				d.Headings = []model.Heading{h1}
				for _, text := range tt.h2s {
					d.Headings = append(d.Headings, model.Heading{Level: 2, Text: text})
				}
			}, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Errorf("evalH2() passed = %v, want %v", out.Passed, tt.expected)
			}
		})
	}
}

func TestEvalHeadingHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		levels   []int
		expected bool
		contains string
	}{
		{"h1 h2 h2", []int{1, 2, 2}, true, ""},
		{"deep but stepwise", []int{1, 2, 3, 2, 3, 4}, true, ""},
		{"skip h1 to h3", []int{1, 3}, false, "H1 → H3"},
		{"skip h2 to h4", []int{1, 2, 4}, false, "H2 → H4"},
		{"two h1", []int{1, 2, 1, 2}, false, "2 H1 headings"},
		{"no h1", []int{2, 3}, false, "no H1"},
		{"no headings", nil, false, "no H2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalHeadingHierarchy, func(d *model.Document) {
				d.Headings = nil
				for _, l := range tt.levels {
					d.Headings = append(d.Headings, model.Heading{Level: l, Text: "Heading"})
				}
			}, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Fatalf("passed = %v, want %v (%s)", out.Passed, tt.expected, out.Description)
			}
			if tt.contains != "" && !strings.Contains(out.Description, tt.contains) {
				t.Errorf("Description = %q, want it to mention %q", out.Description, tt.contains)
			}
		})
	}
}

func TestEvalImageAlt(t *testing.T) {
	out := evalWith(evalImageAlt, func(d *model.Document) { d.Images = nil }, testKeyphrase, testURL)
	if out.Passed {
		t.Error("no images must fail")
	}

	out = evalWith(evalImageAlt, func(d *model.Document) {
		d.Images = []model.Image{{Src: "/a.png"}, {Src: "/b.png", Alt: "Blue Widgets on a shelf"}}
	}, testKeyphrase, testURL)
	if !out.Passed {
		t.Error("second image alt should match")
	}
}

func TestEvalLinks(t *testing.T) {
	out := evalWith(evalInternalLinks, func(d *model.Document) { d.InternalLinks = nil }, testKeyphrase, testURL)
	if out.Passed || out.Description != "" || out.Context != "Found 0 internal links" {
		t.Errorf("evalInternalLinks() = %+v", out)
	}

	out = evalWith(evalOutboundLinks, nil, testKeyphrase, testURL)
	if !out.Passed || !strings.Contains(out.Description, "1 outbound") {
		t.Errorf("evalOutboundLinks() = %+v", out)
	}
}

func TestEvalNextGenImages(t *testing.T) {
	tests := []struct {
		name     string
		images   []model.Image
		expected bool
	}{
		{"no images", nil, true},
		{"modern formats", []model.Image{{Src: "/a.webp?w=200"}, {Src: "/b.SVG"}, {Src: "data:image/avif;base64,AAAA"}}, true},
		{"legacy format", []model.Image{{Src: "/a.webp"}, {Src: "/b.png"}}, false},
		{"missing src", []model.Image{{Src: ""}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalNextGenImages, func(d *model.Document) { d.Images = tt.images }, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Errorf("passed = %v, want %v", out.Passed, tt.expected)
			}
		})
	}
}

func TestEvalOGImage(t *testing.T) {
	tests := []struct {
		name     string
		og       model.OpenGraph
		expected bool
		contains string
	}{
		{"missing", model.OpenGraph{}, false, ""},
		{"recommended size", model.OpenGraph{Image: "/og.png", ImageWidth: "1200", ImageHeight: "630"}, true, "recommended size"},
		{"too small still passes", model.OpenGraph{Image: "/og.png", ImageWidth: "600", ImageHeight: "315"}, true, "below"},
		{"no dimensions", model.OpenGraph{Image: "/og.png"}, true, "not declared"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalOGImage, func(d *model.Document) { d.OpenGraph = tt.og }, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Fatalf("passed = %v, want %v", out.Passed, tt.expected)
			}
			if !strings.Contains(out.Description, tt.contains) {
				t.Errorf("Description = %q, want %q", out.Description, tt.contains)
			}
		})
	}
}

func TestEvalOGTitleDescription(t *testing.T) {
	longDesc := strings.Repeat("x", 150)
	tests := []struct {
		name     string
		og       model.OpenGraph
		expected bool
	}{
		{"valid", model.OpenGraph{Title: "Blue Widgets Shop", Description: longDesc}, true},
		{"title too short", model.OpenGraph{Title: "Widgets", Description: longDesc}, false},
		{"title too long", model.OpenGraph{Title: strings.Repeat("t", 71), Description: longDesc}, false},
		{"description too short", model.OpenGraph{Title: "Blue Widgets Shop", Description: "Short."}, false},
		{"description too long", model.OpenGraph{Title: "Blue Widgets Shop", Description: strings.Repeat("d", 201)}, false},
		{"missing", model.OpenGraph{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalOGTitleDescription, func(d *model.Document) { d.OpenGraph = tt.og }, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Errorf("passed = %v, want %v (%s)", out.Passed, tt.expected, out.Description)
			}
		})
	}
}

func TestEvalCodeMinification(t *testing.T) {
	res := func(minified ...bool) model.Resources {
		var r model.Resources
		for i, m := range minified {
			if i%2 == 0 {
				r.Scripts = append(r.Scripts, model.Resource{URL: "s", IsMinified: m})
			} else {
				r.Stylesheets = append(r.Stylesheets, model.Resource{URL: "c", IsMinified: m})
			}
		}
		return r
	}

	tests := []struct {
		name      string
		resources model.Resources
		expected  bool
	}{
		{"no resources", model.Resources{}, true},
		{"one of three", res(true, false, false), false},
		{"exactly forty percent", res(true, true, false, false, false), true},
		{"all minified", res(true, true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalWith(evalCodeMinification, func(d *model.Document) { d.Resources = tt.resources }, testKeyphrase, testURL)
			if out.Passed != tt.expected {
				t.Errorf("passed = %v, want %v (%s)", out.Passed, tt.expected, out.Description)
			}
		})
	}
}

func TestEvalSchemaMarkup(t *testing.T) {
	out := evalWith(evalSchemaMarkup, nil, testKeyphrase, testURL)
	if !out.Passed || !strings.Contains(out.Description, "Product") {
		t.Errorf("detected schema = %+v", out)
	}

	out = evalWith(evalSchemaMarkup, func(d *model.Document) { d.Schema = model.Schema{} }, testKeyphrase, testURL)
	if out.Passed {
		t.Fatal("missing schema must fail")
	}
	if !strings.Contains(out.Advice, "1. ") {
		t.Errorf("Advice = %q, want numbered suggestions", out.Advice)
	}
}

func TestSchemaAdvice(t *testing.T) {
	tests := []struct {
		name      string
		doc       *model.Document
		sourceURL string
		want      []string
		notWant   []string
	}{
		{
			name:      "homepage",
			doc:       &model.Document{Title: "Acme"},
			sourceURL: "https://example.com/",
			want:      []string{"1. Organization and WebSite"},
		},
		{
			name:      "product page",
			doc:       &model.Document{Title: "Blue widget price list"},
			sourceURL: testURL,
			want:      []string{"1. Product"},
		},
		{
			name: "article with faq",
			doc: &model.Document{
				Paragraphs:  []string{"a", "b", "c", "d", "e"},
				Subheadings: []string{"What is it?", "How does it work?"},
			},
			sourceURL: testURL,
			want:      []string{"1. Article", "2. FAQPage"},
		},
		{
			name:      "company page",
			doc:       &model.Document{BodyText: "Meet our team of experts"},
			sourceURL: testURL,
			want:      []string{"1. Organization schema"},
		},
		{
			name:      "nothing specific",
			doc:       &model.Document{Title: "Hello"},
			sourceURL: testURL,
			want:      []string{"1. WebPage"},
			notWant:   []string{"2."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice := schemaAdvice(NewInput(tt.doc, testKeyphrase, tt.sourceURL))
			for _, w := range tt.want {
				if !strings.Contains(advice, w) {
					t.Errorf("advice missing %q:\n%s", w, advice)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(advice, nw) {
					t.Errorf("advice unexpectedly contains %q:\n%s", nw, advice)
				}
			}
		})
	}
}
