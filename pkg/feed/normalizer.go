package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/feedsync/pkg/domain"
)

const (
	// SnippetLength is the max length of an article snippet, in runes
	SnippetLength = 280

	untitled = "Untitled"
)

// Sanitizer cleans untrusted html
type Sanitizer interface {
	Sanitize(html string) string
	StripAllMarkup(html string) string
	Snippet(html string, maxLen int) string
}

// Normalizer converts raw RSS/Atom documents into canonical feed and article records
type Normalizer struct {
	sanitizer Sanitizer
	now       func() time.Time
}

// NewNormalizer creates a new normalizer
func NewNormalizer(sanitizer Sanitizer) *Normalizer {
	return &Normalizer{sanitizer: sanitizer, now: time.Now}
}

// Normalize parses the document fetched from sourceURL and returns the normalized batch.
// Articles always start unread and unsaved, tags are left for the caller.
func (n *Normalizer) Normalize(body []byte, sourceURL string) (domain.Batch, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return domain.Batch{}, fmt.Errorf("parse feed %s: %w: %v", sourceURL, domain.ErrMalformedDocument, err)
	}

	now := n.now().UTC()
	feedID := FeedID(sourceURL)

	siteURL := strings.TrimSpace(parsed.Link)
	if siteURL == "" {
		siteURL = origin(sourceURL)
	}
	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = siteURL
	}

	fetchedAt := now
	res := domain.Batch{
		Feed: domain.Feed{
			ID:            feedID,
			Title:         title,
			FeedURL:       sourceURL,
			SiteURL:       siteURL,
			Tags:          []string{},
			CreatedAt:     now,
			LastFetchedAt: &fetchedAt,
		},
		Articles: make([]domain.Article, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		res.Articles = append(res.Articles, n.normalizeItem(item, feedID, now))
	}
	return res, nil
}

func (n *Normalizer) normalizeItem(item *gofeed.Item, feedID string, now time.Time) domain.Article {
	article := domain.Article{
		FeedID: feedID,
		Title:  strings.TrimSpace(item.Title),
		URL:    strings.TrimSpace(item.Link),
		Author: authorName(item),
	}

	switch {
	case item.PublishedParsed != nil:
		published := item.PublishedParsed.UTC()
		article.PublishedAt = &published
	case item.UpdatedParsed != nil:
		updated := item.UpdatedParsed.UTC()
		article.PublishedAt = &updated
	default:
		stamped := now
		article.PublishedAt = &stamped
		article.DateInferred = true
	}

	article.ID = ArticleID(feedID, itemKey(item, *article.PublishedAt))
	if article.Title == "" {
		article.Title = untitled
	}

	// content:encoded or atom content is richer than description
	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}
	if strings.TrimSpace(content) != "" {
		article.Snippet = n.sanitizer.Snippet(content, SnippetLength)
		article.ContentText = n.sanitizer.StripAllMarkup(content)
		html := n.sanitizer.Sanitize(content)
		article.ContentHTML = &html
	}

	return article
}

// itemKey returns the first available identity source: guid, link, title, publish time
func itemKey(item *gofeed.Item, published time.Time) string {
	for _, v := range []string{item.GUID, item.Link, item.Title} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return published.Format(time.RFC3339)
}

func authorName(item *gofeed.Item) string {
	if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	for _, a := range item.Authors {
		if a != nil && strings.TrimSpace(a.Name) != "" {
			return strings.TrimSpace(a.Name)
		}
	}
	return ""
}

// origin returns scheme://host of the url, or the url itself if it can't be parsed
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
