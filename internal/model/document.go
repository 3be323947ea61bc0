package model

// Sentinel resource URLs for code embedded directly in the page.
const (
	InlineScriptURL = "inline-script"
	InlineStyleURL  = "inline-style"
)

// Document is the normalized view of a fetched page that every check reads.
// It is built once per analysis and never modified afterwards.
type Document struct {
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	BodyText        string    `json:"body_text"`
	Paragraphs      []string  `json:"paragraphs"`
	Headings        []Heading `json:"headings"`
	// Subheadings holds the heading texts without their levels.
	Subheadings   []string  `json:"subheadings"`
	Images        []Image   `json:"images"`
	InternalLinks []string  `json:"internal_links"`
	OutboundLinks []string  `json:"outbound_links"`
	OpenGraph     OpenGraph `json:"open_graph"`
	Resources     Resources `json:"resources"`
	Schema        Schema    `json:"schema"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageWidth  string `json:"image_width"`
	ImageHeight string `json:"image_height"`
}

type Resources struct {
	Scripts     []Resource `json:"scripts"`
	Stylesheets []Resource `json:"stylesheets"`
}

// All returns scripts followed by stylesheets.
func (r Resources) All() []Resource {
	all := make([]Resource, 0, len(r.Scripts)+len(r.Stylesheets))
	all = append(all, r.Scripts...)
	return append(all, r.Stylesheets...)
}

type Resource struct {
	URL           string `json:"url"`
	InlineContent string `json:"inline_content,omitempty"`
	IsMinified    bool   `json:"is_minified"`
}

// IsInline reports whether the resource was embedded in the page.
func (r Resource) IsInline() bool {
	return r.URL == InlineScriptURL || r.URL == InlineStyleURL
}

type Schema struct {
	Detected bool     `json:"detected"`
	Types    []string `json:"types"`
}

// Introduction returns the first paragraph, or false when the page has none.
func (d *Document) Introduction() (string, bool) {
	if len(d.Paragraphs) == 0 {
		return "", false
	}
	return d.Paragraphs[0], true
}

// HeadingsAt returns the texts of all headings with the given level.
func (d *Document) HeadingsAt(level int) []string {
	var texts []string
	for _, h := range d.Headings {
		if h.Level == level {
			texts = append(texts, h.Text)
		}
	}
	return texts
}
