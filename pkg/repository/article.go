package repository

import (
	"context"
	"strings"
	"time"

	"github.com/umputun/feedsync/pkg/domain"
)

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID           string     `db:"id"`
	FeedID       string     `db:"feed_id"`
	Title        string     `db:"title"`
	URL          string     `db:"url"`
	Author       string     `db:"author"`
	PublishedAt  *time.Time `db:"published_at"`
	DateInferred bool       `db:"date_inferred"`
	Snippet      string     `db:"snippet"`
	ContentText  string     `db:"content_text"`
	ContentHTML  *string    `db:"content_html"`
	Read         bool       `db:"read"`
	Saved        bool       `db:"saved"`
}

const articleColumns = `id, feed_id, title, url, author, published_at, date_inferred, snippet, content_text,
	content_html, read, saved`

// newest first, undated last, id breaks ties
const articleOrder = ` ORDER BY published_at IS NULL, published_at DESC, id DESC`

// GetArticle retrieves an article by id
func (r *Repository) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	var a articleSQL
	if err := r.db.GetContext(ctx, &a, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id); err != nil {
		return nil, readErr("get article "+id, err)
	}
	return a.toDomain(), nil
}

// PutArticle inserts an article or updates its content fields.
// On conflict read and saved flags are never touched, they belong to the user.
func (r *Repository) PutArticle(ctx context.Context, article domain.Article) error {
	a := toArticleSQL(article)
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES (:id, :feed_id, :title, :url, :author, :published_at, :date_inferred, :snippet, :content_text,
			:content_html, :read, :saved)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			author = excluded.author,
			published_at = excluded.published_at,
			date_inferred = excluded.date_inferred,
			snippet = excluded.snippet,
			content_text = excluded.content_text,
			content_html = excluded.content_html
	`
	return withRetry(ctx, "put article "+article.ID, func() error {
		_, err := r.db.NamedExecContext(ctx, query, a)
		return err
	})
}

// DeleteArticle removes a single article
func (r *Repository) DeleteArticle(ctx context.Context, id string) error {
	return withRetry(ctx, "delete article "+id, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// ListArticles returns all articles, newest first
func (r *Repository) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return r.selectArticles(ctx, "list articles", "SELECT "+articleColumns+" FROM articles"+articleOrder)
}

// ListArticlesByFeed returns articles of a single feed, newest first
func (r *Repository) ListArticlesByFeed(ctx context.Context, feedID string) ([]domain.Article, error) {
	return r.selectArticles(ctx, "list articles by feed",
		"SELECT "+articleColumns+" FROM articles WHERE feed_id = ?"+articleOrder, feedID)
}

// ListSavedArticles returns saved articles across all feeds, newest first
func (r *Repository) ListSavedArticles(ctx context.Context) ([]domain.Article, error) {
	return r.selectArticles(ctx, "list saved articles",
		"SELECT "+articleColumns+" FROM articles WHERE saved = 1"+articleOrder)
}

// SearchArticles returns articles containing the query as a case-insensitive substring
// of title, author, snippet or content text. Results are not ranked.
func (r *Repository) SearchArticles(ctx context.Context, query string) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Article{}, nil
	}
	pattern := "%" + escapeLike(query) + "%"
	q := `SELECT ` + articleColumns + ` FROM articles
		WHERE title LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\'
			OR snippet LIKE ? ESCAPE '\' OR content_text LIKE ? ESCAPE '\'` + articleOrder
	return r.selectArticles(ctx, "search articles", q, pattern, pattern, pattern, pattern)
}

// UpdateArticleState applies user state changes, nil fields are left as is
func (r *Repository) UpdateArticleState(ctx context.Context, id string, upd domain.ArticleStateUpdate) error {
	return withRetry(ctx, "update article state "+id, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE articles SET read = COALESCE(?, read), saved = COALESCE(?, saved) WHERE id = ?`,
			upd.Read, upd.Saved, id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// UpdateArticleContent applies extracted content, nil fields are left as is
func (r *Repository) UpdateArticleContent(ctx context.Context, id string, upd domain.ArticleContentUpdate) error {
	return withRetry(ctx, "update article content "+id, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE articles SET content_text = COALESCE(?, content_text), content_html = COALESCE(?, content_html)
			WHERE id = ?`,
			upd.ContentText, upd.ContentHTML, id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

func (r *Repository) selectArticles(ctx context.Context, op, query string, args ...any) ([]domain.Article, error) {
	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, readErr(op, err)
	}
	res := make([]domain.Article, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

// escapeLike escapes LIKE wildcards so the query matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toArticleSQL(a domain.Article) articleSQL {
	res := articleSQL{
		ID:           a.ID,
		FeedID:       a.FeedID,
		Title:        a.Title,
		URL:          a.URL,
		Author:       a.Author,
		DateInferred: a.DateInferred,
		Snippet:      a.Snippet,
		ContentText:  a.ContentText,
		ContentHTML:  a.ContentHTML,
		Read:         a.Read,
		Saved:        a.Saved,
	}
	if a.PublishedAt != nil {
		ts := a.PublishedAt.UTC()
		res.PublishedAt = &ts
	}
	return res
}

func (a *articleSQL) toDomain() *domain.Article {
	res := &domain.Article{
		ID:           a.ID,
		FeedID:       a.FeedID,
		Title:        a.Title,
		URL:          a.URL,
		Author:       a.Author,
		DateInferred: a.DateInferred,
		Snippet:      a.Snippet,
		ContentText:  a.ContentText,
		ContentHTML:  a.ContentHTML,
		Read:         a.Read,
		Saved:        a.Saved,
	}
	if a.PublishedAt != nil {
		ts := a.PublishedAt.UTC()
		res.PublishedAt = &ts
	}
	return res
}
