package checks

import (
	"net/url"
	"strings"

	"seoanalyzer/internal/model"
)

// Input is shared by every check in one run. Values computed once, such as
// the body word count, live here so checks do not recompute them.
type Input struct {
	Doc       *model.Document
	Keyphrase string
	SourceURL string

	words int
}

func NewInput(doc *model.Document, keyphrase, sourceURL string) *Input {
	if doc == nil {
		doc = &model.Document{}
	}
	return &Input{
		Doc:       doc,
		Keyphrase: strings.TrimSpace(keyphrase),
		SourceURL: strings.TrimSpace(sourceURL),
		words:     wordCount(doc.BodyText),
	}
}

// WordCount is the number of words in the body text.
func (in *Input) WordCount() int {
	return in.words
}

// IsHomepage reports whether the source URL is a site root.
func (in *Input) IsHomepage() bool {
	u, err := url.Parse(in.SourceURL)
	if err != nil {
		return false
	}
	return u.Path == "" || u.Path == "/"
}
