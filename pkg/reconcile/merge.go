// Package reconcile merges freshly normalized feed batches into the persisted catalog.
// User-owned state (read, saved) always survives a refresh and nothing is ever deleted by one.
package reconcile

import (
	"sort"
	"time"

	"github.com/umputun/feedsync/pkg/domain"
)

// Result is the outcome of reconciling one batch
type Result struct {
	Merged  domain.Batch     // feed and the full ordered article set after the merge
	Changed []domain.Article // new or modified articles, the only ones to write back
	Added   int
	Updated int
}

// Reconcile merges incoming into the existing catalog slice of a feed.
// existingFeed is nil for a feed seen for the first time. Tags replace the feed tags.
func Reconcile(existingFeed *domain.Feed, existing []domain.Article, incoming domain.Batch, tags []string, now time.Time) Result {
	prev := make(map[string]domain.Article, len(existing))
	for _, a := range existing {
		prev[a.ID] = a
	}

	res := Result{Changed: []domain.Article{}}
	merged := make([]domain.Article, 0, len(existing)+len(incoming.Articles))
	pos := make(map[string]int, len(incoming.Articles)) // id to index in merged
	changed := make(map[string]bool, len(incoming.Articles))

	for _, in := range incoming.Articles {
		rec := in
		old, known := prev[in.ID]
		if known {
			rec = mergeArticle(old, in)
		}

		if i, dup := pos[in.ID]; dup {
			// repeated id within one document, the later entry wins
			merged[i] = rec
		} else {
			pos[in.ID] = len(merged)
			merged = append(merged, rec)
		}

		switch {
		case !known:
			changed[in.ID] = true
		case !sameArticle(old, rec):
			changed[in.ID] = true
		default:
			delete(changed, in.ID)
		}
	}

	// articles gone from upstream stay untouched
	for _, a := range existing {
		if _, ok := pos[a.ID]; ok {
			continue
		}
		pos[a.ID] = len(merged)
		merged = append(merged, a)
	}

	for _, a := range merged {
		if !changed[a.ID] {
			continue
		}
		res.Changed = append(res.Changed, a)
		if _, known := prev[a.ID]; known {
			res.Updated++
			continue
		}
		res.Added++
	}

	SortArticles(merged)
	res.Merged = domain.Batch{Feed: mergeFeed(existingFeed, incoming.Feed, tags, now), Articles: merged}
	return res
}

// mergeArticle overlays incoming content on the previous record, user state is copied from it
func mergeArticle(prev, in domain.Article) domain.Article {
	res := in
	res.FeedID = prev.FeedID
	res.Read = prev.Read
	res.Saved = prev.Saved
	if in.DateInferred && prev.PublishedAt != nil {
		// a stamped date would move the article on every refresh
		res.PublishedAt = prev.PublishedAt
		res.DateInferred = prev.DateInferred
	}
	return res
}

func mergeFeed(existing *domain.Feed, incoming domain.Feed, tags []string, now time.Time) domain.Feed {
	res := incoming
	res.Tags = domain.NormalizeTags(tags)
	if existing != nil {
		res.CreatedAt = existing.CreatedAt
	}
	fetched := now
	res.LastFetchedAt = &fetched
	return res
}

// sameArticle compares articles by value, including pointed-to fields
func sameArticle(a, b domain.Article) bool {
	if !sameTime(a.PublishedAt, b.PublishedAt) || !sameString(a.ContentHTML, b.ContentHTML) {
		return false
	}
	a.PublishedAt, b.PublishedAt = nil, nil
	a.ContentHTML, b.ContentHTML = nil, nil
	return a == b
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SortArticles orders articles newest first. Dated articles come before undated ones,
// ties and undated articles are ordered by id descending.
func SortArticles(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PublishedAt, articles[j].PublishedAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return articles[i].ID > articles[j].ID
	})
}
