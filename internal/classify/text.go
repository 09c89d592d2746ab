package classify

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageText reduces a payload to the lower-cased, whitespace-collapsed text a visitor would read.
//
// Payloads without markup, or that fail to parse, are normalized as-is. HTML
// is parsed and script, style and template content dropped, since the site's
// bundles carry the same phrases whether or not the rate is actually shown.
// Text nodes are joined with a space so adjacent cells stay separate words.
func PageText(payload string) string {
	if !strings.Contains(payload, "<") {
		return normalize(payload)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload))
	if err != nil {
		return normalize(payload)
	}
	doc.Find("script, style, noscript, template, svg").Remove()

	var b strings.Builder
	collectText(doc.Selection, &b)
	return normalize(b.String())
}

func collectText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			b.WriteString(c.Text())
			b.WriteByte(' ')
		case "#comment":
		default:
			collectText(c, b)
		}
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
