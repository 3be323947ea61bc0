package recommend

import (
	"context"
	"strings"
)

// {keyphrase} and {slug} are substituted per call.
var staticAdvice = map[string]string{
	"Keyphrase in Title":            "Here is a better title: {keyphrase} | A Complete Guide. Put the keyphrase near the start and keep the title under 60 characters.",
	"Keyphrase in Meta Description": "Here is a better meta description: Learn everything about {keyphrase}, with practical tips and examples to help you choose with confidence.",
	"Keyphrase in URL":              "Here is a better URL slug: /{slug}. Use lowercase words separated by hyphens.",
	"Keyphrase in Introduction":     "Here is a better introduction: Looking for {keyphrase}? This page explains what to look for and how to get the most out of it.",
	"Keyphrase in H1 Heading":       "Here is a better H1 heading: {keyphrase}: What You Need to Know. Keep a single H1 per page.",
	"Keyphrase in H2 Headings":      "Here is a better H2 heading: Why {keyphrase} Matter. Use the keyphrase in at least one section heading.",
	"Image Alt Attributes":          "Here is a better alt text: Photo showing {keyphrase} in use. Describe the image and include the keyphrase where it fits naturally.",
	"Internal Links":                "Link to related pages on your own site, for example a category page or another article about {keyphrase}, using descriptive anchor text.",
	"Outbound Links":                "Link to at least one authoritative external source about {keyphrase}, such as a study, standard or manufacturer page.",
	"OG Image":                      "Add an og:image meta tag pointing to a 1200x630 image that represents {keyphrase}, and declare og:image:width and og:image:height.",
}

const genericStaticAdvice = "Review this part of the page and make sure it clearly supports the focus keyphrase {keyphrase}."

// StaticAdvisor returns canned advice without any network calls.
type StaticAdvisor struct {
	templates map[string]string
}

func NewStaticAdvisor() *StaticAdvisor {
	return &StaticAdvisor{templates: staticAdvice}
}

func (s *StaticAdvisor) Recommend(_ context.Context, checkTitle, keyphrase, _ string) (string, error) {
	tmpl, ok := s.templates[checkTitle]
	if !ok {
		tmpl = genericStaticAdvice
	}
	keyphrase = strings.TrimSpace(keyphrase)
	r := strings.NewReplacer(
		"{keyphrase}", keyphrase,
		"{slug}", strings.Join(strings.Fields(strings.ToLower(keyphrase)), "-"),
	)
	return r.Replace(tmpl), nil
}
