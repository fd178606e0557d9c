package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// findImageURL returns the src of the first image in an item body
func findImageURL(body string) string {
	if !strings.Contains(strings.ToLower(body), "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))

	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")

	return strings.TrimSpace(src)
}
