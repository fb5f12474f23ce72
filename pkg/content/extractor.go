package content

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/feed"
)

// fallbackTextLength limits raw page text returned when no readable content was found
const fallbackTextLength = 2000

// PageFetcher retrieves html pages
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*feed.Page, error)
}

// Sanitizer cleans extracted html
type Sanitizer interface {
	SanitizeReader(html string) string
	StripAllMarkup(html string) string
}

// Extractor extracts readable article content from web pages using trafilatura,
// with go-readability as a second opinion and raw page text as the last resort
type Extractor struct {
	fetcher       PageFetcher
	sanitizer     Sanitizer
	limiter       *rate.Limiter
	includeImages bool
	includeLinks  bool
}

// Params defines extractor settings
type Params struct {
	Fetcher       PageFetcher
	Sanitizer     Sanitizer
	RateLimit     time.Duration // min interval between extractions, 0 disables limiting
	Burst         int
	IncludeImages bool
	IncludeLinks  bool
}

// NewExtractor creates a new content extractor
func NewExtractor(params Params) *Extractor {
	limit := rate.Inf
	if params.RateLimit > 0 {
		limit = rate.Every(params.RateLimit)
	}
	if params.Burst <= 0 {
		params.Burst = 1
	}
	return &Extractor{
		fetcher:       params.Fetcher,
		sanitizer:     params.Sanitizer,
		limiter:       rate.NewLimiter(limit, params.Burst),
		includeImages: params.IncludeImages,
		includeLinks:  params.IncludeLinks,
	}
}

// Extract retrieves the page and returns its readable content
func (e *Extractor) Extract(ctx context.Context, urlStr string) (*domain.Extraction, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}

	page, err := e.fetcher.FetchPage(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", urlStr, err)
	}
	if page.URL != nil {
		parsedURL = page.URL
	}

	if res, ok := e.trafilatura(page.Body, parsedURL); ok {
		return res, nil
	}
	if res, ok := e.readability(page.Body, parsedURL); ok {
		return res, nil
	}

	lgr.Printf("[DEBUG] no readable content in %s, using page text", urlStr)
	title := pageTitle(page.Body)
	if title == "" {
		title = urlStr
	}
	text := []rune(e.sanitizer.StripAllMarkup(string(page.Body)))
	if len(text) > fallbackTextLength {
		text = text[:fallbackTextLength]
	}
	return &domain.Extraction{Title: title, ContentText: string(text)}, nil
}

func (e *Extractor) trafilatura(body []byte, pageURL *url.URL) (*domain.Extraction, bool) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   e.includeImages,
		IncludeLinks:    e.includeLinks,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] trafilatura failed for %s: %v", pageURL, err)
		return nil, false
	}
	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, false
	}

	res := &domain.Extraction{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Byline:      strings.TrimSpace(result.Metadata.Author),
		ContentText: text,
	}
	if res.Title == "" {
		res.Title = pageTitle(body)
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err == nil {
			if safe := e.sanitizer.SanitizeReader(buf.String()); safe != "" {
				res.ContentHTML = &safe
			}
		}
	}
	return res, true
}

func (e *Extractor) readability(body []byte, pageURL *url.URL) (*domain.Extraction, bool) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		lgr.Printf("[DEBUG] readability failed for %s: %v", pageURL, err)
		return nil, false
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, false
	}

	res := &domain.Extraction{
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		ContentText: text,
	}
	if safe := e.sanitizer.SanitizeReader(article.Content); safe != "" {
		res.ContentHTML = &safe
	}
	return res, true
}

// pageTitle returns the document title
func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
