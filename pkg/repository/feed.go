package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/umputun/feedsync/pkg/domain"
)

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	FeedURL       string     `db:"feed_url"`
	SiteURL       string     `db:"site_url"`
	Tags          tagsSQL    `db:"tags"`
	CreatedAt     time.Time  `db:"created_at"`
	LastFetchedAt *time.Time `db:"last_fetched_at"`
	ETag          string     `db:"etag"`
	LastModified  string     `db:"last_modified"`
}

// tagsSQL is a JSON array of tags for SQL operations
type tagsSQL []string

// Value implements driver.Valuer for database storage
func (t tagsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (t *tagsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*t = tagsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported tags type %T", value)
	}
	if len(data) == 0 {
		*t = tagsSQL{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(t))
}

const feedColumns = `id, title, feed_url, site_url, tags, created_at, last_fetched_at, etag, last_modified`

// GetFeed retrieves a feed by id
func (r *Repository) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	var f feedSQL
	if err := r.db.GetContext(ctx, &f, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id); err != nil {
		return nil, readErr("get feed "+id, err)
	}
	return f.toDomain(), nil
}

// PutFeed inserts or replaces a feed record, articles are not affected
func (r *Repository) PutFeed(ctx context.Context, feed domain.Feed) error {
	f := toFeedSQL(feed)
	query := `
		INSERT INTO feeds (` + feedColumns + `)
		VALUES (:id, :title, :feed_url, :site_url, :tags, :created_at, :last_fetched_at, :etag, :last_modified)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			feed_url = excluded.feed_url,
			site_url = excluded.site_url,
			tags = excluded.tags,
			created_at = excluded.created_at,
			last_fetched_at = excluded.last_fetched_at,
			etag = excluded.etag,
			last_modified = excluded.last_modified
	`
	return withRetry(ctx, "put feed "+feed.ID, func() error {
		_, err := r.db.NamedExecContext(ctx, query, f)
		return err
	})
}

// DeleteFeed removes a feed and all of its articles
func (r *Repository) DeleteFeed(ctx context.Context, id string) error {
	return withRetry(ctx, "delete feed "+id, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err = tx.ExecContext(ctx, "DELETE FROM articles WHERE feed_id = ?", id); err != nil {
			return fmt.Errorf("delete articles: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete feed: %w", err)
		}
		if err = checkAffected(res); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// ListFeeds returns all feeds ordered by title
func (r *Repository) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+feedColumns+" FROM feeds ORDER BY title COLLATE NOCASE, id"); err != nil {
		return nil, readErr("list feeds", err)
	}
	res := make([]domain.Feed, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

func toFeedSQL(f domain.Feed) feedSQL {
	res := feedSQL{
		ID:           f.ID,
		Title:        f.Title,
		FeedURL:      f.FeedURL,
		SiteURL:      f.SiteURL,
		Tags:         tagsSQL(domain.NormalizeTags(f.Tags)),
		CreatedAt:    f.CreatedAt.UTC(),
		ETag:         f.Validators.ETag,
		LastModified: f.Validators.LastModified,
	}
	if f.LastFetchedAt != nil {
		ts := f.LastFetchedAt.UTC()
		res.LastFetchedAt = &ts
	}
	return res
}

func (f *feedSQL) toDomain() *domain.Feed {
	res := &domain.Feed{
		ID:         f.ID,
		Title:      f.Title,
		FeedURL:    f.FeedURL,
		SiteURL:    f.SiteURL,
		Tags:       []string(f.Tags),
		CreatedAt:  f.CreatedAt.UTC(),
		Validators: domain.CacheValidator{ETag: f.ETag, LastModified: f.LastModified},
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if f.LastFetchedAt != nil {
		ts := f.LastFetchedAt.UTC()
		res.LastFetchedAt = &ts
	}
	return res
}
