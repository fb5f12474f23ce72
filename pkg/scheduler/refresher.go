package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/feed"
	"github.com/umputun/feedsync/pkg/reconcile"
)

//go:generate moq -out extractor_mock_test.go -skip-ensure -fmt goimports . Extractor

const (
	// metadata keys
	metaSeeded        = "seeded"
	metaLastRefreshAt = "last_refresh_at"

	defaultReaderMinLength = 200
	defaultMaxWorkers      = 5
)

// Fetcher retrieves feed documents conditionally
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string, validators domain.CacheValidator) (*feed.FetchResult, error)
}

// Normalizer converts raw feed documents into canonical records
type Normalizer interface {
	Normalize(body []byte, sourceURL string) (domain.Batch, error)
}

// Discoverer finds feeds advertised by a web page
type Discoverer interface {
	Discover(ctx context.Context, siteURL string) ([]domain.DiscoveredFeed, error)
}

// Extractor extracts readable content of an article page
type Extractor interface {
	Extract(ctx context.Context, url string) (*domain.Extraction, error)
}

// Store is the read side of the catalog store, writes go through the reconciler
type Store interface {
	GetFeed(ctx context.Context, id string) (*domain.Feed, error)
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
	DeleteFeed(ctx context.Context, id string) error
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	ListArticles(ctx context.Context) ([]domain.Article, error)
	ListArticlesByFeed(ctx context.Context, feedID string) ([]domain.Article, error)
	ListSavedArticles(ctx context.Context) ([]domain.Article, error)
	SearchArticles(ctx context.Context, query string) ([]domain.Article, error)
	GetMetadata(ctx context.Context, key string) (string, error)
	SetMetadata(ctx context.Context, key, value string) error
}

// Refresher runs the ingestion pipeline (fetch, normalize, reconcile, persist) for single feeds
// and for the whole subscription list. It is the request surface used by the HTTP API.
type Refresher struct {
	store           Store
	reconciler      *reconcile.Reconciler
	fetcher         Fetcher
	normalizer      Normalizer
	discoverer      Discoverer
	extractor       Extractor
	maxWorkers      int
	readerMinLength int
	now             func() time.Time
}

// RefresherParams defines refresher dependencies and settings
type RefresherParams struct {
	Store           Store
	Reconciler      *reconcile.Reconciler
	Fetcher         Fetcher
	Normalizer      Normalizer
	Discoverer      Discoverer
	Extractor       Extractor
	MaxWorkers      int // concurrent feeds in RefreshAll
	ReaderMinLength int // articles with more text than this skip reader extraction, 0 means the default of 200
}

// IngestResult is the outcome of a fetch and normalize without persistence
type IngestResult struct {
	NotModified bool                  `json:"not_modified"`
	Batch       *domain.Batch         `json:"batch,omitempty"`
	Validators  domain.CacheValidator `json:"validators"`
}

// RefreshResult is the outcome of refreshing one feed
type RefreshResult struct {
	FeedID      string `json:"feed_id"`
	FeedURL     string `json:"feed_url"`
	NotModified bool   `json:"not_modified,omitempty"`
	Added       int    `json:"added"`
	Updated     int    `json:"updated"`
	Total       int    `json:"total"`
	Error       string `json:"error,omitempty"`
	Err         error  `json:"-"`
}

// ReaderView is an article with the reader extraction outcome
type ReaderView struct {
	Article     domain.Article `json:"article"`
	ReaderError string         `json:"reader_error,omitempty"`
}

// ArticleQuery filters article listings, zero value lists everything
type ArticleQuery struct {
	FeedID    string
	SavedOnly bool
	Search    string
}

// Status summarizes the catalog and in-flight refreshes
type Status struct {
	Feeds         int        `json:"feeds"`
	Refreshing    []string   `json:"refreshing"`
	LastRefreshAt *time.Time `json:"last_refresh_at,omitempty"`
}

// SeedFeed is a subscription added on the first start
type SeedFeed struct {
	URL  string
	Tags []string
}

// NewRefresher makes a refresher
func NewRefresher(params RefresherParams) *Refresher {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = defaultMaxWorkers
	}
	if params.ReaderMinLength <= 0 {
		params.ReaderMinLength = defaultReaderMinLength
	}
	return &Refresher{
		store:           params.Store,
		reconciler:      params.Reconciler,
		fetcher:         params.Fetcher,
		normalizer:      params.Normalizer,
		discoverer:      params.Discoverer,
		extractor:       params.Extractor,
		maxWorkers:      params.MaxWorkers,
		readerMinLength: params.ReaderMinLength,
		now:             time.Now,
	}
}

// DiscoverFeeds returns feeds advertised by the site page
func (r *Refresher) DiscoverFeeds(ctx context.Context, siteURL string) ([]domain.DiscoveredFeed, error) {
	siteURL = strings.TrimSpace(siteURL)
	if siteURL == "" {
		return nil, fmt.Errorf("site url: %w", domain.ErrInvalidInput)
	}
	return r.discoverer.Discover(ctx, siteURL)
}

// IngestOrRefresh fetches and normalizes a feed without touching the catalog
func (r *Refresher) IngestOrRefresh(ctx context.Context, feedURL string, validators domain.CacheValidator) (*IngestResult, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url: %w", domain.ErrInvalidInput)
	}
	fetched, err := r.fetcher.Fetch(ctx, feedURL, validators)
	if err != nil {
		return nil, err
	}
	if fetched.NotModified {
		return &IngestResult{NotModified: true, Validators: fetched.Validators}, nil
	}
	batch, err := r.normalizer.Normalize(fetched.Body, feedURL)
	if err != nil {
		return nil, err
	}
	batch.Feed.Validators = fetched.Validators
	return &IngestResult{Batch: &batch, Validators: fetched.Validators}, nil
}

// AddFeed subscribes to a feed, or re-ingests it with new tags if already subscribed.
// Returns the merged catalog slice of the feed.
func (r *Refresher) AddFeed(ctx context.Context, feedURL string, tags []string) (*domain.Batch, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url: %w", domain.ErrInvalidInput)
	}
	feedID := feed.FeedID(feedURL)

	release, err := r.reconciler.Acquire(feedID)
	if err != nil {
		return nil, fmt.Errorf("add feed %s: %w", feedURL, err)
	}
	defer release()

	existingFeed, existing, err := r.loadFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}

	// a new subscription always gets the full document
	fetched, err := r.fetcher.Fetch(ctx, feedURL, domain.CacheValidator{})
	if err != nil {
		return nil, err
	}
	batch, err := r.normalizer.Normalize(fetched.Body, feedURL)
	if err != nil {
		return nil, err
	}
	batch.Feed.Validators = fetched.Validators

	res, err := r.reconciler.ReconcileAndPersist(ctx, existingFeed, existing, batch, tags)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] subscribed to %s (%s), %d articles", res.Merged.Feed.Title, feedURL, len(res.Merged.Articles))
	return &res.Merged, nil
}

// RefreshFeed refreshes one subscribed feed. Errors are returned in the result as well.
func (r *Refresher) RefreshFeed(ctx context.Context, feedID string) (RefreshResult, error) {
	f, err := r.store.GetFeed(ctx, feedID)
	if err != nil {
		return RefreshResult{FeedID: feedID, Err: err, Error: err.Error()}, err
	}
	res := r.refresh(ctx, *f)
	return res, res.Err
}

// RefreshAll refreshes every subscribed feed with a bounded worker pool.
// A failing feed never stops the others, its error is reported in its result.
func (r *Refresher) RefreshAll(ctx context.Context) ([]RefreshResult, error) {
	feeds, err := r.store.ListFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	st := time.Now()
	results := make([]RefreshResult, len(feeds))
	g := errgroup.Group{}
	g.SetLimit(r.maxWorkers)
	for i, f := range feeds {
		g.Go(func() error {
			results[i] = r.refresh(ctx, f)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if err := r.store.SetMetadata(ctx, metaLastRefreshAt, r.now().UTC().Format(time.RFC3339)); err != nil {
		lgr.Printf("[WARN] failed to record refresh time: %v", err)
	}
	lgr.Printf("[INFO] refreshed %d feeds in %v, %d failed", len(feeds), time.Since(st).Round(time.Millisecond), failed)
	return results, nil
}

// refresh runs fetch, normalize, reconcile and persist for a feed.
// Fetch and normalize failures happen before any write and leave the catalog untouched.
func (r *Refresher) refresh(ctx context.Context, f domain.Feed) RefreshResult {
	res := RefreshResult{FeedID: f.ID, FeedURL: f.FeedURL}
	fail := func(err error) RefreshResult {
		lgr.Printf("[WARN] refresh of %s failed: %v", f.FeedURL, err)
		res.Err = err
		res.Error = err.Error()
		return res
	}

	release, err := r.reconciler.Acquire(f.ID)
	if err != nil {
		return fail(fmt.Errorf("refresh feed %s: %w", f.ID, err))
	}
	defer release()

	// f may be a snapshot taken before the lease, the feed could be deleted or re-tagged since
	current, err := r.store.GetFeed(ctx, f.ID)
	if err != nil {
		return fail(fmt.Errorf("reload feed %s: %w", f.ID, err))
	}
	f = *current

	fetched, err := r.fetcher.Fetch(ctx, f.FeedURL, f.Validators)
	if err != nil {
		return fail(err)
	}

	if fetched.NotModified {
		if _, err = r.reconciler.MarkFetched(ctx, f); err != nil {
			return fail(err)
		}
		lgr.Printf("[DEBUG] feed %s not modified", f.FeedURL)
		res.NotModified = true
		return res
	}

	batch, err := r.normalizer.Normalize(fetched.Body, f.FeedURL)
	if err != nil {
		return fail(err)
	}
	batch.Feed.Validators = fetched.Validators

	existing, err := r.store.ListArticlesByFeed(ctx, f.ID)
	if err != nil {
		return fail(err)
	}
	merged, err := r.reconciler.ReconcileAndPersist(ctx, &f, existing, batch, f.Tags)
	if err != nil {
		return fail(err)
	}
	res.Added, res.Updated, res.Total = merged.Added, merged.Updated, len(merged.Merged.Articles)
	return res
}

// LoadReaderView returns the article, extracting readable content from its page first
// unless the article already has enough text. Extraction failure leaves the article as is
// and is reported in ReaderError.
func (r *Refresher) LoadReaderView(ctx context.Context, articleID string) (*ReaderView, error) {
	article, err := r.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if len([]rune(article.ContentText)) > r.readerMinLength || article.URL == "" || r.extractor == nil {
		return &ReaderView{Article: *article}, nil
	}

	extracted, err := r.extractor.Extract(ctx, article.URL)
	if err != nil {
		lgr.Printf("[WARN] reader extraction for %s failed: %v", article.URL, err)
		return &ReaderView{Article: *article, ReaderError: err.Error()}, nil
	}
	if strings.TrimSpace(extracted.ContentText) == "" {
		return &ReaderView{Article: *article, ReaderError: "no readable content found"}, nil
	}

	updated, err := r.reconciler.ApplyContent(ctx, articleID, extracted.ContentUpdate())
	if err != nil {
		return nil, err
	}
	return &ReaderView{Article: *updated}, nil
}

// SetArticleState changes read/saved flags of an article
func (r *Refresher) SetArticleState(ctx context.Context, articleID string, upd domain.ArticleStateUpdate) (*domain.Article, error) {
	return r.reconciler.ApplyState(ctx, articleID, upd)
}

// DeleteFeed unsubscribes from a feed and drops its articles. Fails if the feed is being refreshed.
func (r *Refresher) DeleteFeed(ctx context.Context, feedID string) error {
	release, err := r.reconciler.Acquire(feedID)
	if err != nil {
		return fmt.Errorf("delete feed %s: %w", feedID, err)
	}
	defer release()
	if err := r.store.DeleteFeed(ctx, feedID); err != nil {
		return err
	}
	lgr.Printf("[INFO] feed %s deleted", feedID)
	return nil
}

// Seed subscribes to the initial feed list once, on the first start of an empty catalog.
// Failed feeds are logged and skipped. Returns the number of feeds added.
func (r *Refresher) Seed(ctx context.Context, feeds []SeedFeed) (int, error) {
	seeded, err := r.store.GetMetadata(ctx, metaSeeded)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("check seeded flag: %w", err)
	}
	if seeded == "true" {
		return 0, nil
	}

	added := 0
	for _, f := range feeds {
		if _, err := r.AddFeed(ctx, f.URL, f.Tags); err != nil {
			lgr.Printf("[WARN] failed to seed feed %s: %v", f.URL, err)
			continue
		}
		added++
	}
	if err := r.store.SetMetadata(ctx, metaSeeded, "true"); err != nil {
		return added, fmt.Errorf("set seeded flag: %w", err)
	}
	lgr.Printf("[INFO] seeded %d of %d feeds", added, len(feeds))
	return added, nil
}

// ListFeeds returns all subscriptions
func (r *Refresher) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	return r.store.ListFeeds(ctx)
}

// ListArticles returns articles matching the query in canonical order
func (r *Refresher) ListArticles(ctx context.Context, q ArticleQuery) ([]domain.Article, error) {
	var articles []domain.Article
	var err error
	switch {
	case strings.TrimSpace(q.Search) != "":
		articles, err = r.store.SearchArticles(ctx, q.Search)
	case q.FeedID != "":
		articles, err = r.store.ListArticlesByFeed(ctx, q.FeedID)
	case q.SavedOnly:
		articles, err = r.store.ListSavedArticles(ctx)
	default:
		articles, err = r.store.ListArticles(ctx)
	}
	if err != nil {
		return nil, err
	}

	res := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if q.FeedID != "" && a.FeedID != q.FeedID {
			continue
		}
		if q.SavedOnly && !a.Saved {
			continue
		}
		res = append(res, a)
	}
	reconcile.SortArticles(res)
	return res, nil
}

// Status returns catalog summary
func (r *Refresher) Status(ctx context.Context) (Status, error) {
	feeds, err := r.store.ListFeeds(ctx)
	if err != nil {
		return Status{}, err
	}
	res := Status{Feeds: len(feeds), Refreshing: r.reconciler.Refreshing()}
	last, err := r.store.GetMetadata(ctx, metaLastRefreshAt)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return Status{}, err
	default:
		if ts, perr := time.Parse(time.RFC3339, last); perr == nil {
			res.LastRefreshAt = &ts
		}
	}
	return res, nil
}

// ExportOPML returns the subscription list as an OPML document
func (r *Refresher) ExportOPML(ctx context.Context) (string, error) {
	feeds, err := r.store.ListFeeds(ctx)
	if err != nil {
		return "", err
	}
	return feed.GenerateOPML(feeds, r.now().UTC())
}

func (r *Refresher) loadFeed(ctx context.Context, feedID string) (*domain.Feed, []domain.Article, error) {
	f, err := r.store.GetFeed(ctx, feedID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	existing, err := r.store.ListArticlesByFeed(ctx, feedID)
	if err != nil {
		return nil, nil, err
	}
	return f, existing, nil
}
