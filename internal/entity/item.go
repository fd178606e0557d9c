package entity

// FeedItem is one normalized article record extracted from a feed.
// Title and Link are always non-empty; every other field is optional.
type FeedItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	// Date string exactly as found in the source markup, without timezone normalization.
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author,omitempty"`
	// Plain text, tags stripped, at most 200 characters.
	Summary      string `json:"summary,omitempty"`
	BodyHTML     string `json:"bodyHtml,omitempty"`
	EnclosureURL string `json:"enclosureUrl,omitempty"`
	// First image found in BodyHTML.
	ImageURL string `json:"imageUrl,omitempty"`
}

// RawDocument is a fetched response body, alive only for the duration of one request.
type RawDocument struct {
	URL         string
	Body        string
	ContentType string
	// In bytes.
	Length int
}
