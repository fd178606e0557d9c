package parser

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nDmitry/rssproxy/internal/entity"
)

var bodyPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return p
})

// SanitizeItems returns copies of items with BodyHTML reduced to safe user-generated markup
func SanitizeItems(items []entity.FeedItem) []entity.FeedItem {
	policy := bodyPolicy()
	sanitized := make([]entity.FeedItem, len(items))

	for i, item := range items {
		if item.BodyHTML != "" {
			item.BodyHTML = strings.TrimSpace(policy.Sanitize(item.BodyHTML))
		}

		sanitized[i] = item
	}

	return sanitized
}
