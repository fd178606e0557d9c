package parser

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSummaryLength is measured in Unicode code points
const maxSummaryLength = 200

var (
	titleTag       = newTagMatcher("title")
	linkTag        = newTagMatcher("link")
	pubDateTag     = newTagMatcher("pubDate")
	creatorTag     = newTagMatcher("dc:creator")
	authorTag      = newTagMatcher("author")
	descriptionTag = newTagMatcher("description")
	contentTag     = newTagMatcher("content:encoded")

	enclosureRegex    = regexp.MustCompile(`(?is)<enclosure\s[^>]*?\burl\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	cdataSectionRegex = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	markupTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// tagMatcher finds the first element with a given tag name inside an item block.
// A body that is a single CDATA section wins over the plain-text reading of the same element.
type tagMatcher struct {
	re *regexp.Regexp
}

func newTagMatcher(name string) *tagMatcher {
	q := regexp.QuoteMeta(name)
	open := `<` + q + `(?:\s+[^>]*[^>/])?\s*>`
	closing := `</` + q + `\s*>`

	return &tagMatcher{
		re: regexp.MustCompile(`(?is)` + open + `(?:\s*<!\[CDATA\[(.*?)\]\]>\s*` + closing + `|(.*?)` + closing + `)`),
	}
}

// find returns the element body or an empty string if the element is absent.
// CDATA content is returned verbatim, plain text is entity-decoded.
func (m *tagMatcher) find(block string) string {
	loc := m.re.FindStringSubmatchIndex(block)

	if loc == nil {
		return ""
	}

	if loc[2] >= 0 {
		return block[loc[2]:loc[3]]
	}

	return decodeText(block[loc[4]:loc[5]])
}

// firstNonEmpty returns the first non-empty, trimmed body among matchers, in priority order
func firstNonEmpty(block string, matchers ...*tagMatcher) string {
	for _, m := range matchers {
		if v := strings.TrimSpace(m.find(block)); v != "" {
			return v
		}
	}

	return ""
}

// decodeText unescapes entities outside of CDATA sections and unwraps the sections themselves
func decodeText(text string) string {
	if !strings.Contains(text, "<![CDATA[") {
		return html.UnescapeString(text)
	}

	var b strings.Builder
	last := 0

	for _, loc := range cdataSectionRegex.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(html.UnescapeString(text[last:loc[0]]))
		b.WriteString(text[loc[2]:loc[3]])
		last = loc[1]
	}

	b.WriteString(html.UnescapeString(text[last:]))

	return b.String()
}

func findEnclosureURL(block string) string {
	loc := enclosureRegex.FindStringSubmatchIndex(block)

	if loc == nil {
		return ""
	}

	var raw string

	if loc[2] >= 0 {
		raw = block[loc[2]:loc[3]]
	} else {
		raw = block[loc[4]:loc[5]]
	}

	return strings.TrimSpace(html.UnescapeString(raw))
}

// snippet strips markup from s and caps the plain text at maxSummaryLength
func snippet(s string) string {
	if s == "" {
		return ""
	}

	text := markupTagRegex.ReplaceAllString(s, "")
	text = strings.TrimSpace(html.UnescapeString(text))

	return truncate(text, maxSummaryLength)
}

// truncate cuts text to at most limit runes
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	count := 0

	for i := range text {
		if count == limit {
			return text[:i]
		}

		count++
	}

	return text
}
