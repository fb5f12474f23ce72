package domain

import (
	"sort"
	"strings"
	"time"
)

// Feed represents a subscribed syndication source
type Feed struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	FeedURL       string         `json:"feed_url"`
	SiteURL       string         `json:"site_url"`
	Tags          []string       `json:"tags"`
	CreatedAt     time.Time      `json:"created_at"`
	LastFetchedAt *time.Time     `json:"last_fetched_at,omitempty"`
	Validators    CacheValidator `json:"validators"`
}

// CacheValidator holds values used for conditional re-fetch
type CacheValidator struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// IsZero reports whether no validator is set
func (v CacheValidator) IsZero() bool {
	return v.ETag == "" && v.LastModified == ""
}

// DiscoveredFeed is a feed candidate found on a web page
type DiscoveredFeed struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Batch is a catalog slice for a single feed: the feed record and its articles
type Batch struct {
	Feed     Feed      `json:"feed"`
	Articles []Article `json:"articles"`
}

// NormalizeTags trims, dedupes and sorts a tag list. Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	sort.Strings(res)
	return res
}
