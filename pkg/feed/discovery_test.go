package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsync/pkg/domain"
)

func TestDiscoverFromHTML(t *testing.T) {
	base, err := url.Parse("https://x.test/blog/")
	require.NoError(t, err)

	t.Run("alternate links", func(t *testing.T) {
		page := `<html><head>
			<link rel="alternate" type="application/rss+xml" title="Main RSS" href="/feed.xml">
			<link rel="alternate" type="application/atom+xml" href="atom.xml">
			<link rel="alternate" type="application/rss+xml" title="dup" href="https://x.test/feed.xml">
			<link rel="alternate" hreflang="de" href="/de/">
			<link rel="stylesheet" type="text/css" href="/style.css">
		</head><body><a href="/other.rss">other</a></body></html>`

		feeds, err := DiscoverFromHTML([]byte(page), base)
		require.NoError(t, err)
		assert.Equal(t, []domain.DiscoveredFeed{
			{Title: "Main RSS", URL: "https://x.test/feed.xml", Type: "application/rss+xml"},
			{Title: "https://x.test/blog/atom.xml", URL: "https://x.test/blog/atom.xml", Type: "application/atom+xml"},
		}, feeds)
	})

	t.Run("anchor fallback", func(t *testing.T) {
		page := `<html><body>
			<a href="/a.rss">a</a><a href="/b.xml?x=1">b</a><a href="/c.atom">c</a>
			<a href="/page.html">page</a><a href="/a.rss">dup</a>
			<a href="/d.xml">d</a><a href="/e.xml">e</a><a href="/f.xml">f</a>
		</body></html>`

		feeds, err := DiscoverFromHTML([]byte(page), base)
		require.NoError(t, err)
		require.Len(t, feeds, 4, "first five candidates, deduped")
		assert.Equal(t, "https://x.test/a.rss", feeds[0].URL)
		assert.Equal(t, "https://x.test/b.xml?x=1", feeds[1].URL)
		assert.Equal(t, "https://x.test/c.atom", feeds[2].URL)
		assert.Equal(t, "https://x.test/d.xml", feeds[3].URL)
		assert.Equal(t, "rss", feeds[0].Type)
	})

	t.Run("nothing found", func(t *testing.T) {
		feeds, err := DiscoverFromHTML([]byte(`<html><body>nothing</body></html>`), base)
		require.NoError(t, err)
		assert.Empty(t, feeds)
	})
}

func TestDiscoverer_Discover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><link rel="alternate" type="application/rss+xml" href="/rss"></head></html>`))
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(FetcherParams{Timeout: time.Second}))
	feeds, err := d.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, srv.URL+"/rss", feeds[0].URL)

	_, err = d.Discover(context.Background(), "bad url")
	require.Error(t, err)
}
