// Package checks implements the SEO rule pipeline: a fixed, ordered set of
// independent checks evaluated over one extracted document.
package checks

import "seoanalyzer/internal/model"

// CheckID identifies a rule. The zero value is not a valid check.
type CheckID int

const (
	KeyphraseInTitle CheckID = iota + 1
	KeyphraseInMetaDescription
	KeyphraseInURL
	ContentLength
	KeyphraseDensity
	KeyphraseInIntroduction
	KeyphraseInH1
	KeyphraseInH2
	HeadingHierarchy
	ImageAltAttributes
	InternalLinks
	OutboundLinks
	NextGenImageFormats
	OGImage
	OGTitleAndDescription
	CodeMinification
	SchemaMarkup
)

// Advice says where a failed check's recommendation comes from.
type Advice int

const (
	// NeedsExternalAdvice asks the Recommender on failure.
	NeedsExternalAdvice Advice = iota
	// SelfDescribing checks carry their guidance in the description.
	SelfDescribing
	// LocalAdvice checks build their own recommendation during evaluation.
	LocalAdvice
)

// Descriptor is the static definition of a check.
type Descriptor struct {
	ID       CheckID
	Title    string
	Priority model.Priority
	Advice   Advice
	// Success and Failure are used when the evaluation leaves Description empty.
	Success  string
	Failure  string
	Evaluate func(*Input) Outcome
}

// Outcome is what a check's predicate reports.
type Outcome struct {
	Passed bool
	// Description overrides the descriptor text when set.
	Description string
	// Context is passed to the Recommender to describe the current state.
	Context string
	// Advice is the recommendation for LocalAdvice checks.
	Advice string
}

// registry lists every check in canonical order.
var registry = []Descriptor{
	{
		ID:       KeyphraseInTitle,
		Title:    "Keyphrase in Title",
		Priority: model.PriorityHigh,
		Advice:   NeedsExternalAdvice,
		Success:  "Great job! The focus keyphrase appears in the page title.",
		Failure:  "The focus keyphrase does not appear in the page title. Include it, ideally near the beginning.",
		Evaluate: evalTitle,
	},
	{
		ID:       KeyphraseInMetaDescription,
		Title:    "Keyphrase in Meta Description",
		Priority: model.PriorityHigh,
		Advice:   NeedsExternalAdvice,
		Success:  "The meta description contains the focus keyphrase.",
		Failure:  "The meta description is missing or does not contain the focus keyphrase.",
		Evaluate: evalMetaDescription,
	},
	{
		ID:       KeyphraseInURL,
		Title:    "Keyphrase in URL",
		Priority: model.PriorityMedium,
		Advice:   NeedsExternalAdvice,
		Success:  "The URL contains the focus keyphrase.",
		Failure:  "The URL does not contain the focus keyphrase. Use it in the page slug, separated by hyphens.",
		Evaluate: evalURL,
	},
	{
		ID:       ContentLength,
		Title:    "Content Length",
		Priority: model.PriorityHigh,
		Advice:   SelfDescribing,
		Evaluate: evalContentLength,
	},
	{
		ID:       KeyphraseDensity,
		Title:    "Keyphrase Density",
		Priority: model.PriorityMedium,
		Advice:   SelfDescribing,
		Evaluate: evalDensity,
	},
	{
		ID:       KeyphraseInIntroduction,
		Title:    "Keyphrase in Introduction",
		Priority: model.PriorityMedium,
		Advice:   NeedsExternalAdvice,
		Success:  "The focus keyphrase appears in the first paragraph.",
		Failure:  "The focus keyphrase does not appear in the first paragraph. Mention it early so readers and search engines see the topic right away.",
		Evaluate: evalIntroduction,
	},
	{
		ID:       KeyphraseInH1,
		Title:    "Keyphrase in H1 Heading",
		Priority: model.PriorityHigh,
		Advice:   NeedsExternalAdvice,
		Success:  "The H1 heading contains the focus keyphrase.",
		Failure:  "The H1 heading does not contain the focus keyphrase.",
		Evaluate: evalH1,
	},
	{
		ID:       KeyphraseInH2,
		Title:    "Keyphrase in H2 Headings",
		Priority: model.PriorityMedium,
		Advice:   NeedsExternalAdvice,
		Success:  "The focus keyphrase appears in the H2 headings.",
		Failure:  "None of the H2 headings contain the focus keyphrase or its words.",
		Evaluate: evalH2,
	},
	{
		ID:       HeadingHierarchy,
		Title:    "Heading Hierarchy",
		Priority: model.PriorityHigh,
		Advice:   SelfDescribing,
		Success:  "The page has a single H1, uses H2 subheadings and never skips a heading level.",
		Evaluate: evalHeadingHierarchy,
	},
	{
		ID:       ImageAltAttributes,
		Title:    "Image Alt Attributes",
		Priority: model.PriorityLow,
		Advice:   NeedsExternalAdvice,
		Success:  "At least one image has alt text containing the focus keyphrase.",
		Failure:  "No image has alt text containing the focus keyphrase.",
		Evaluate: evalImageAlt,
	},
	{
		ID:       InternalLinks,
		Title:    "Internal Links",
		Priority: model.PriorityMedium,
		Advice:   NeedsExternalAdvice,
		Failure:  "The page has no internal links. Link to related pages on the same site.",
		Evaluate: evalInternalLinks,
	},
	{
		ID:       OutboundLinks,
		Title:    "Outbound Links",
		Priority: model.PriorityLow,
		Advice:   NeedsExternalAdvice,
		Failure:  "The page has no outbound links. Link to authoritative sources that support the content.",
		Evaluate: evalOutboundLinks,
	},
	{
		ID:       NextGenImageFormats,
		Title:    "Next-Gen Image Formats",
		Priority: model.PriorityLow,
		Advice:   SelfDescribing,
		Evaluate: evalNextGenImages,
	},
	{
		ID:       OGImage,
		Title:    "OG Image",
		Priority: model.PriorityMedium,
		Advice:   SelfDescribing,
		Failure:  "No og:image tag was found. Add an Open Graph image of at least 1200x630 pixels so shared links show a preview.",
		Evaluate: evalOGImage,
	},
	{
		ID:       OGTitleAndDescription,
		Title:    "OG Title and Description",
		Priority: model.PriorityMedium,
		Advice:   NeedsExternalAdvice,
		Success:  "The Open Graph title and description are present and well sized.",
		Evaluate: evalOGTitleDescription,
	},
	{
		ID:       CodeMinification,
		Title:    "Code Minification",
		Priority: model.PriorityMedium,
		Advice:   SelfDescribing,
		Evaluate: evalCodeMinification,
	},
	{
		ID:       SchemaMarkup,
		Title:    "Schema Markup",
		Priority: model.PriorityMedium,
		Advice:   LocalAdvice,
		Failure:  "No structured data (schema markup) was found on the page.",
		Evaluate: evalSchemaMarkup,
	},
}

var byID = func() map[CheckID]Descriptor {
	m := make(map[CheckID]Descriptor, len(registry))
	for _, d := range registry {
		m[d.ID] = d
	}
	return m
}()

// PriorityOf returns the registered priority, or medium for unknown ids.
func PriorityOf(id CheckID) model.Priority {
	if d, ok := byID[id]; ok && d.Priority != "" {
		return d.Priority
	}
	return model.PriorityMedium
}

func (id CheckID) String() string {
	if d, ok := byID[id]; ok {
		return d.Title
	}
	return "Unknown Check"
}
