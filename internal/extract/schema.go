package extract

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoanalyzer/internal/model"
)

// detectSchema looks for JSON-LD blocks and microdata/RDFa type attributes.
// A JSON-LD block only counts when it decodes.
func detectSchema(doc *goquery.Document) model.Schema {
	var schema model.Schema
	seen := make(map[string]bool)
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		schema.Types = append(schema.Types, t)
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		schema.Detected = true
		for _, t := range jsonLDTypes(payload) {
			add(t)
		}
	})

	doc.Find("[itemtype], [typeof]").Each(func(_ int, s *goquery.Selection) {
		schema.Detected = true
		for _, attr := range []string{"itemtype", "typeof"} {
			for _, ref := range strings.Fields(s.AttrOr(attr, "")) {
				add(typeName(ref))
			}
		}
	})

	return schema
}

// jsonLDTypes collects @type values from a decoded JSON-LD payload,
// following top-level arrays and @graph members.
func jsonLDTypes(v any) []string {
	var types []string
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			types = append(types, jsonLDTypes(item)...)
		}
	case map[string]any:
		switch t := node["@type"].(type) {
		case string:
			types = append(types, t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
		}
		if graph, ok := node["@graph"]; ok {
			types = append(types, jsonLDTypes(graph)...)
		}
	}
	return types
}

// typeName reduces https://schema.org/Product to Product.
func typeName(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		return path.Base(strings.TrimSuffix(u.Path, "/"))
	}
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
