package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// elements whose text never renders
var hiddenTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// phrasing elements that do not break words apart
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "dfn": true, "em": true, "i": true, "kbd": true,
	"label": true, "mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true,
}

// visibleText returns the rendered text under sel with whitespace collapsed.
// Block level elements are separated by a space so adjacent headings and
// paragraphs do not run their words together.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if hiddenTextElements[n.Data] {
				return
			}
		}

		block := n.Type == html.ElementNode && !inlineElements[n.Data]
		if block {
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte(' ')
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
