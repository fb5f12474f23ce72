package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedsync/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store is the part of the catalog store the reconciler writes to.
// Writes are expected to retry transient lock errors on their own.
type Store interface {
	PutFeed(ctx context.Context, feed domain.Feed) error
	PutArticle(ctx context.Context, article domain.Article) error
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	UpdateArticleState(ctx context.Context, id string, upd domain.ArticleStateUpdate) error
	UpdateArticleContent(ctx context.Context, id string, upd domain.ArticleContentUpdate) error
}

// Reconciler applies merge results to the store and guards feeds against concurrent refreshes
type Reconciler struct {
	store  Store
	leases *Leases
	now    func() time.Time
}

// New makes a reconciler for the store
func New(store Store) *Reconciler {
	return &Reconciler{store: store, leases: NewLeases(), now: time.Now}
}

// Acquire takes the refresh lease of a feed, see Leases.Acquire
func (r *Reconciler) Acquire(feedID string) (release func(), err error) {
	return r.leases.Acquire(feedID)
}

// Refreshing returns ids of feeds with a refresh in flight
func (r *Reconciler) Refreshing() []string {
	return r.leases.Refreshing()
}

// ReconcileAndPersist merges incoming into the existing catalog and writes back the feed
// and every changed article. Each write is an independent idempotent put, so a failed run
// leaves partial state that the next refresh repairs.
func (r *Reconciler) ReconcileAndPersist(ctx context.Context, existingFeed *domain.Feed, existing []domain.Article,
	incoming domain.Batch, tags []string) (Result, error) {
	res := Reconcile(existingFeed, existing, incoming, tags, r.now().UTC())

	if err := r.store.PutFeed(ctx, res.Merged.Feed); err != nil {
		return res, fmt.Errorf("persist feed %s: %w", res.Merged.Feed.ID, err)
	}
	for _, a := range res.Changed {
		if err := r.store.PutArticle(ctx, a); err != nil {
			return res, fmt.Errorf("persist article %s: %w", a.ID, err)
		}
	}

	lgr.Printf("[DEBUG] reconciled feed %s (%s): %d added, %d updated, %d total",
		res.Merged.Feed.ID, res.Merged.Feed.FeedURL, res.Added, res.Updated, len(res.Merged.Articles))
	return res, nil
}

// MarkFetched records a fetch that returned no new content. Only LastFetchedAt changes.
func (r *Reconciler) MarkFetched(ctx context.Context, feed domain.Feed) (domain.Feed, error) {
	now := r.now().UTC()
	feed.LastFetchedAt = &now
	if err := r.store.PutFeed(ctx, feed); err != nil {
		return feed, fmt.Errorf("mark feed %s fetched: %w", feed.ID, err)
	}
	return feed, nil
}

// ApplyContent stores extracted content of an article and returns the updated record
func (r *Reconciler) ApplyContent(ctx context.Context, articleID string, upd domain.ArticleContentUpdate) (*domain.Article, error) {
	if err := r.store.UpdateArticleContent(ctx, articleID, upd); err != nil {
		return nil, fmt.Errorf("apply content to %s: %w", articleID, err)
	}
	return r.article(ctx, articleID)
}

// ApplyState changes read/saved flags of an article and returns the updated record
func (r *Reconciler) ApplyState(ctx context.Context, articleID string, upd domain.ArticleStateUpdate) (*domain.Article, error) {
	if !upd.IsEmpty() {
		if err := r.store.UpdateArticleState(ctx, articleID, upd); err != nil {
			return nil, fmt.Errorf("apply state to %s: %w", articleID, err)
		}
	}
	return r.article(ctx, articleID)
}

func (r *Reconciler) article(ctx context.Context, id string) (*domain.Article, error) {
	a, err := r.store.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", id, err)
	}
	return a, nil
}
