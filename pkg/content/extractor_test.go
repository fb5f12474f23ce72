package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/feed"
	"github.com/umputun/feedsync/pkg/sanitize"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Test Article</title><meta name="author" content="Jane Doe"></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Test Article</h1>
<p>The quick brown fox jumps over the lazy dog. This paragraph is long enough to be recognized as the main
content of the page by extraction heuristics, it keeps going with several sentences about nothing in particular.</p>
<p>Second paragraph continues the story with more words, so the text density of the article block is clearly
higher than the navigation and the footer. Extraction libraries like that kind of structure very much.</p>
<p>Third paragraph adds a <a href="https://x.test/link">link</a> and some more content for good measure, making
sure the article is long enough for any minimum length threshold in the extraction heuristics.</p>
</article>
<footer>Copyright footer</footer>
</body></html>`

func newTestExtractor() *Extractor {
	return NewExtractor(Params{
		Fetcher:   feed.NewFetcher(feed.FetcherParams{Timeout: time.Second}),
		Sanitizer: sanitize.New(),
	})
}

func TestExtractor_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	res, err := newTestExtractor().Extract(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, res.Title, "Test Article")
	assert.Contains(t, res.ContentText, "quick brown fox")
	assert.NotContains(t, res.ContentText, "<p>")
	if res.ContentHTML != nil {
		assert.NotContains(t, *res.ContentHTML, "<script")
	}
}

func TestExtractor_Fallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Tiny</title></head><body>` + strings.Repeat("x", 3000) + `</body></html>`))
	}))
	defer srv.Close()

	res, err := newTestExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Title)
	assert.LessOrEqual(t, len([]rune(res.ContentText)), 3000)
}

func TestExtractor_Errors(t *testing.T) {
	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := newTestExtractor().Extract(context.Background(), srv.URL)
		require.Error(t, err)
		var ue *domain.UpstreamError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := newTestExtractor().Extract(context.Background(), "not a url")
		require.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		e := NewExtractor(Params{
			Fetcher:   feed.NewFetcher(feed.FetcherParams{Timeout: 20 * time.Millisecond}),
			Sanitizer: sanitize.New(),
		})
		_, err := e.Extract(context.Background(), srv.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})
}

func TestExtractor_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	e := NewExtractor(Params{
		Fetcher:   feed.NewFetcher(feed.FetcherParams{Timeout: time.Second}),
		Sanitizer: sanitize.New(),
		RateLimit: 100 * time.Millisecond,
	})

	st := time.Now()
	for i := 0; i < 3; i++ {
		_, err := e.Extract(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(st), 190*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Extract(ctx, srv.URL)
	require.Error(t, err)
}
