package news

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// CleanText prepares feed text for display and analysis: HTML markup is
// stripped and entities decoded, characters other than letters, digits,
// whitespace and -.,;:!? are removed, and whitespace is collapsed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = stripHTML(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_', unicode.IsSpace(r):
			return r
		case strings.ContainsRune("-.,;:!?", r):
			return r
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripHTML returns the text content of an HTML fragment.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	// Separate adjacent block texts, e.g. Google News "<a>title</a>&nbsp;<font>source</font>".
	doc.Find("br, p, li, a, font").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return doc.Text()
}

// splitSource separates a Google News style "Title - Publisher" headline.
func splitSource(title string) (headline, source string) {
	i := strings.LastIndex(title, " - ")
	if i <= 0 || i+3 >= len(title) {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
}
