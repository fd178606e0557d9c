package parser

import (
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/nDmitry/rssproxy/internal/entity"
)

// parseAtom reads <entry> elements of an Atom document. Atom has no <item>
// blocks to scan, so the document goes through gofeed instead; a document
// gofeed rejects is treated as a feed without items.
func (p *Parser) parseAtom(doc string) []entity.FeedItem {
	feed, err := gofeed.NewParser().ParseString(doc)

	if err != nil {
		p.logger.Warn("Could not read Atom entries", "error", err)
		return []entity.FeedItem{}
	}

	items := make([]entity.FeedItem, 0, len(feed.Items))

	for i, entry := range feed.Items {
		item, ok := p.fromEntry(i, entry)

		if !ok {
			continue
		}

		items = append(items, item)
	}

	p.logger.Debug("Parsed Atom entries", "entries", len(feed.Items), "items", len(items))

	return items
}

func (p *Parser) fromEntry(index int, entry *gofeed.Item) (entity.FeedItem, bool) {
	if entry == nil {
		return entity.FeedItem{}, false
	}

	guard := func(field string, extract func() string) string {
		return p.guard(index, field, extract)
	}

	item := entity.FeedItem{
		Title:       strings.TrimSpace(entry.Title),
		Link:        strings.TrimSpace(entry.Link),
		PublishedAt: entry.Published,
	}

	if item.PublishedAt == "" {
		item.PublishedAt = entry.Updated
	}

	if entry.Author != nil {
		item.Author = strings.TrimSpace(entry.Author.Name)
	}

	if len(entry.Enclosures) > 0 && entry.Enclosures[0] != nil {
		item.EnclosureURL = strings.TrimSpace(entry.Enclosures[0].URL)
	}

	description := strings.TrimSpace(entry.Description)
	content := strings.TrimSpace(entry.Content)

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
		p.logger.Debug("Dropping entry without title or link", "index", index)
		return entity.FeedItem{}, false
	}

	return item, true
}
