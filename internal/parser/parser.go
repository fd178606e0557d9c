// Package parser turns syndication markup into normalized feed items.
//
// RSS documents are not parsed as an XML tree: every <item> block is scanned
// independently with bounded per-tag matchers, so non-well-formed feeds
// (stray ampersands, broken namespaces) still yield their readable items.
package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nDmitry/rssproxy/internal/app"
	"github.com/nDmitry/rssproxy/internal/entity"
)

var (
	rootMarkerRegex = regexp.MustCompile(`(?i)<(?:rss|feed|rdf:rdf)\b`)
	atomRootRegex   = regexp.MustCompile(`(?i)<feed\b`)
	itemRegex       = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>(.*?)</item\s*>`)
)

// Parser extracts FeedItems from RSS 2.0, RSS 1.0 and Atom documents.
// It holds no state besides its logger and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser logging through the application logger
func New() *Parser {
	return &Parser{logger: app.Logger()}
}

// Parse returns the items of doc in source order.
// Items without a title or a link are dropped. A document without items
// is a valid empty feed; only input without any feed root marker fails,
// with entity.ErrMalformedInput.
func (p *Parser) Parse(doc string) ([]entity.FeedItem, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, fmt.Errorf("%w: empty document", entity.ErrMalformedInput)
	}

	if !rootMarkerRegex.MatchString(doc) {
		return nil, entity.ErrMalformedInput
	}

	blocks := itemRegex.FindAllStringSubmatchIndex(doc, -1)

	if len(blocks) == 0 && atomRootRegex.MatchString(doc) {
		return p.parseAtom(doc), nil
	}

	items := make([]entity.FeedItem, 0, len(blocks))

	for i, loc := range blocks {
		item, ok := p.extractItem(i, doc[loc[2]:loc[3]])

		if !ok {
			continue
		}

		items = append(items, item)
	}

	p.logger.Debug("Parsed RSS items", "blocks", len(blocks), "items", len(items))

	return items, nil
}

// extractItem builds a FeedItem from the inner markup of one <item> block
func (p *Parser) extractItem(index int, block string) (entity.FeedItem, bool) {
	guard := func(field string, extract func() string) string {
		return p.guard(index, field, extract)
	}

	item := entity.FeedItem{
		Title: guard("title", func() string {
			return strings.TrimSpace(titleTag.find(block))
		}),
		Link: guard("link", func() string {
			return strings.TrimSpace(linkTag.find(block))
		}),
		PublishedAt: guard("pubDate", func() string {
			return pubDateTag.find(block)
		}),
		Author: guard("author", func() string {
			return firstNonEmpty(block, creatorTag, authorTag)
		}),
		EnclosureURL: guard("enclosure", func() string {
			return findEnclosureURL(block)
		}),
	}

	description := guard("description", func() string {
		return strings.TrimSpace(descriptionTag.find(block))
	})
	content := guard("content:encoded", func() string {
		return strings.TrimSpace(contentTag.find(block))
	})

	item.BodyHTML = description

	if content != "" {
		item.BodyHTML = content
	}

	item.Summary = guard("summary", func() string {
		if summary := snippet(description); summary != "" {
			return summary
		}

		return snippet(content)
	})
	item.ImageURL = guard("image", func() string {
		return findImageURL(item.BodyHTML)
	})

	if item.Title == "" || item.Link == "" {
		p.logger.Debug("Dropping item without title or link", "index", index, "title", item.Title, "link", item.Link)
		return entity.FeedItem{}, false
	}

	return item, true
}

// guard runs extract and turns a panic into an empty value, so one broken
// field never takes down its siblings or the following items
func (p *Parser) guard(index int, field string, extract func() string) (value string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("Field extraction failed", "index", index, "field", field, "panic", r)
			value = ""
		}
	}()

	return extract()
}
