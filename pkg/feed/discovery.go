package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/feedsync/pkg/domain"
)

// maxAnchorCandidates limits feeds guessed from plain links when no alternate links exist
const maxAnchorCandidates = 5

var (
	feedTypes       = []string{"application/rss+xml", "application/atom+xml", "application/xml", "text/xml"}
	feedExtensionRe = regexp.MustCompile(`(?i)\.(rss|xml|atom)(\?|$)`)
)

// PageFetcher retrieves html pages
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*Page, error)
}

// Discoverer finds feeds advertised by a web site
type Discoverer struct {
	fetcher PageFetcher
}

// NewDiscoverer creates a new feed discoverer
func NewDiscoverer(fetcher PageFetcher) *Discoverer {
	return &Discoverer{fetcher: fetcher}
}

// Discover fetches the site page and returns candidate feeds
func (d *Discoverer) Discover(ctx context.Context, siteURL string) ([]domain.DiscoveredFeed, error) {
	page, err := d.fetcher.FetchPage(ctx, siteURL)
	if err != nil {
		return nil, fmt.Errorf("discover feeds: %w", err)
	}
	return DiscoverFromHTML(page.Body, page.URL)
}

// DiscoverFromHTML extracts feed candidates from an html page. Alternate links with a feed type win,
// otherwise up to five anchors with feed-like extensions are returned. Results are deduped by url.
func DiscoverFromHTML(body []byte, pageURL *url.URL) ([]domain.DiscoveredFeed, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	feeds := []domain.DiscoveredFeed{}
	doc.Find("link[rel~='alternate']").Each(func(_ int, s *goquery.Selection) {
		typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if typ == "" || !isFeedType(typ) {
			return
		}
		href, ok := resolve(pageURL, s.AttrOr("href", ""))
		if !ok {
			return
		}
		title := strings.TrimSpace(s.AttrOr("title", ""))
		if title == "" {
			title = href
		}
		feeds = append(feeds, domain.DiscoveredFeed{Title: title, URL: href, Type: typ})
	})
	if len(feeds) > 0 {
		return dedupeFeeds(feeds), nil
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := resolve(pageURL, s.AttrOr("href", ""))
		if !ok || !feedExtensionRe.MatchString(href) {
			return true
		}
		feeds = append(feeds, domain.DiscoveredFeed{Title: href, URL: href, Type: "rss"})
		return len(feeds) < maxAnchorCandidates
	})
	return dedupeFeeds(feeds), nil
}

func isFeedType(typ string) bool {
	for _, allowed := range feedTypes {
		if strings.Contains(typ, allowed) {
			return true
		}
	}
	return false
}

// resolve makes href absolute against the page url
func resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}
	return ref.String(), true
}

func dedupeFeeds(feeds []domain.DiscoveredFeed) []domain.DiscoveredFeed {
	seen := make(map[string]struct{}, len(feeds))
	res := make([]domain.DiscoveredFeed, 0, len(feeds))
	for _, f := range feeds {
		if _, ok := seen[f.URL]; ok {
			continue
		}
		seen[f.URL] = struct{}{}
		res = append(res, f)
	}
	return res
}
