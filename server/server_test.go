package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/scheduler"
	"github.com/umputun/feedsync/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_Status(t *testing.T) {
	last := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &mocks.ServiceMock{
		StatusFunc: func(ctx context.Context) (scheduler.Status, error) {
			return scheduler.Status{Feeds: 3, Refreshing: []string{"f1"}, LastRefreshAt: &last}, nil
		},
	}
	srv := New(testConfig(), svc, "1.2.3", false)

	w := doRequest(t, srv, "GET", "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.InDelta(t, 3, status["feeds"], 0.001)
	assert.Equal(t, []any{"f1"}, status["refreshing"])
	assert.Equal(t, "2024-05-01T12:00:00Z", status["last_refresh_at"])
	assert.NotEmpty(t, status["time"])
}

func TestServer_Ping(t *testing.T) {
	srv := New(testConfig(), &mocks.ServiceMock{}, "1.2.3", true)
	w := doRequest(t, srv, "GET", "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestServer_Discover(t *testing.T) {
	svc := &mocks.ServiceMock{
		DiscoverFeedsFunc: func(ctx context.Context, siteURL string) ([]domain.DiscoveredFeed, error) {
			if siteURL == "" {
				return nil, domain.ErrInvalidInput
			}
			return []domain.DiscoveredFeed{{Title: "Main", URL: siteURL + "/feed.xml", Type: "application/rss+xml"}}, nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)

	w := doRequest(t, srv, "POST", "/api/v1/discover", `{"url":"https://site.test"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Feeds []domain.DiscoveredFeed `json:"feeds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Feeds, 1)
	assert.Equal(t, "https://site.test/feed.xml", resp.Feeds[0].URL)

	w = doRequest(t, srv, "POST", "/api/v1/discover", `{"url":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, srv, "POST", "/api/v1/discover", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.DiscoverFeedsCalls(), 2)
}

func TestServer_Fetch(t *testing.T) {
	svc := &mocks.ServiceMock{
		IngestOrRefreshFunc: func(ctx context.Context, feedURL string, v domain.CacheValidator) (*scheduler.IngestResult, error) {
			if v.ETag == `"e1"` {
				return &scheduler.IngestResult{NotModified: true, Validators: v}, nil
			}
			b := domain.Batch{Feed: domain.Feed{ID: "f1", FeedURL: feedURL}, Articles: []domain.Article{{ID: "a1", Title: "A"}}}
			return &scheduler.IngestResult{Batch: &b, Validators: domain.CacheValidator{ETag: `"e1"`}}, nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)

	w := doRequest(t, srv, "POST", "/api/v1/fetch", `{"url":"https://site.test/rss"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res scheduler.IngestResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Batch)
	assert.Equal(t, "A", res.Batch.Articles[0].Title)
	assert.Equal(t, `"e1"`, res.Validators.ETag)

	w = doRequest(t, srv, "POST", "/api/v1/fetch", `{"url":"https://site.test/rss","etag":"\"e1\""}`)
	require.Equal(t, http.StatusOK, w.Code)
	res = scheduler.IngestResult{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.NotModified)
	assert.Nil(t, res.Batch)
}

func TestServer_Feeds(t *testing.T) {
	svc := &mocks.ServiceMock{
		ListFeedsFunc: func(ctx context.Context) ([]domain.Feed, error) {
			return []domain.Feed{{ID: "f1", Title: "One", Tags: []string{"go"}}}, nil
		},
		AddFeedFunc: func(ctx context.Context, feedURL string, tags []string) (*domain.Batch, error) {
			return &domain.Batch{Feed: domain.Feed{ID: "f2", FeedURL: feedURL, Tags: tags}}, nil
		},
		DeleteFeedFunc: func(ctx context.Context, feedID string) error {
			if feedID == "busy" {
				return fmt.Errorf("delete feed %s: %w", feedID, domain.ErrRefreshInProgress)
			}
			if feedID != "f1" {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)

	t.Run("list", func(t *testing.T) {
		w := doRequest(t, srv, "GET", "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Feeds []domain.Feed `json:"feeds"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Feeds, 1)
		assert.Equal(t, []string{"go"}, resp.Feeds[0].Tags)
	})

	t.Run("add", func(t *testing.T) {
		w := doRequest(t, srv, "POST", "/api/v1/feeds", `{"url":"https://site.test/rss","tags":["news"]}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var b domain.Batch
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "f2", b.Feed.ID)
		require.Len(t, svc.AddFeedCalls(), 1)
		assert.Equal(t, "https://site.test/rss", svc.AddFeedCalls()[0].FeedURL)
		assert.Equal(t, []string{"news"}, svc.AddFeedCalls()[0].Tags)
	})

	t.Run("add unknown field", func(t *testing.T) {
		w := doRequest(t, srv, "POST", "/api/v1/feeds", `{"link":"https://site.test/rss"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doRequest(t, srv, "DELETE", "/api/v1/feeds/f1", "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, srv, "DELETE", "/api/v1/feeds/nope", "").Code)
		assert.Equal(t, http.StatusConflict, doRequest(t, srv, "DELETE", "/api/v1/feeds/busy", "").Code)
	})
}

func TestServer_Refresh(t *testing.T) {
	svc := &mocks.ServiceMock{
		RefreshFeedFunc: func(ctx context.Context, feedID string) (scheduler.RefreshResult, error) {
			switch feedID {
			case "slow":
				err := fmt.Errorf("fetch: %w", domain.ErrTimeout)
				return scheduler.RefreshResult{FeedID: feedID, Err: err, Error: err.Error()}, err
			case "down":
				err := fmt.Errorf("fetch: %w", &domain.UpstreamError{StatusCode: 503})
				return scheduler.RefreshResult{FeedID: feedID, Err: err}, err
			case "broken":
				err := fmt.Errorf("parse: %w", domain.ErrMalformedDocument)
				return scheduler.RefreshResult{FeedID: feedID, Err: err}, err
			}
			return scheduler.RefreshResult{FeedID: feedID, Added: 2, Total: 5}, nil
		},
		RefreshAllFunc: func(ctx context.Context) ([]scheduler.RefreshResult, error) {
			return []scheduler.RefreshResult{{FeedID: "f1", Added: 1}, {FeedID: "f2", Error: "fetch timed out"}}, nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)

	w := doRequest(t, srv, "POST", "/api/v1/feeds/f1/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res scheduler.RefreshResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 5, res.Total)

	assert.Equal(t, http.StatusGatewayTimeout, doRequest(t, srv, "POST", "/api/v1/feeds/slow/refresh", "").Code)
	assert.Equal(t, http.StatusBadGateway, doRequest(t, srv, "POST", "/api/v1/feeds/down/refresh", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doRequest(t, srv, "POST", "/api/v1/feeds/broken/refresh", "").Code)

	w = doRequest(t, srv, "POST", "/api/v1/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all struct {
		Results []scheduler.RefreshResult `json:"results"`
		Failed  int                       `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all.Results, 2)
	assert.Equal(t, 1, all.Failed)
}

func TestServer_Articles(t *testing.T) {
	svc := &mocks.ServiceMock{
		ListArticlesFunc: func(ctx context.Context, q scheduler.ArticleQuery) ([]domain.Article, error) {
			return []domain.Article{{ID: "a1", FeedID: q.FeedID, Saved: q.SavedOnly, Title: q.Search}}, nil
		},
		SetArticleStateFunc: func(ctx context.Context, articleID string, upd domain.ArticleStateUpdate) (*domain.Article, error) {
			if articleID == "missing" {
				return nil, domain.ErrNotFound
			}
			a := domain.Article{ID: articleID}.WithState(upd)
			return &a, nil
		},
		LoadReaderViewFunc: func(ctx context.Context, articleID string) (*scheduler.ReaderView, error) {
			if articleID == "failing" {
				return &scheduler.ReaderView{Article: domain.Article{ID: articleID}, ReaderError: "fetch timed out"}, nil
			}
			return &scheduler.ReaderView{Article: domain.Article{ID: articleID, ContentText: "full"}}, nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)

	t.Run("list with filters", func(t *testing.T) {
		w := doRequest(t, srv, "GET", "/api/v1/articles?feed=f1&saved=true&q=go", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, svc.ListArticlesCalls(), 1)
		assert.Equal(t, scheduler.ArticleQuery{FeedID: "f1", SavedOnly: true, Search: "go"}, svc.ListArticlesCalls()[0].Q)

		var resp struct {
			Articles []domain.Article `json:"articles"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Articles, 1)
		assert.True(t, resp.Articles[0].Saved)
	})

	t.Run("list bad saved flag", func(t *testing.T) {
		w := doRequest(t, srv, "GET", "/api/v1/articles?saved=maybe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update state", func(t *testing.T) {
		w := doRequest(t, srv, "PATCH", "/api/v1/articles/a1", `{"saved":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		var a domain.Article
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
		assert.True(t, a.Saved)
		assert.False(t, a.Read)

		calls := svc.SetArticleStateCalls()
		require.Len(t, calls, 1)
		assert.Nil(t, calls[0].Upd.Read)
		require.NotNil(t, calls[0].Upd.Saved)
		assert.True(t, *calls[0].Upd.Saved)
	})

	t.Run("update errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, doRequest(t, srv, "PATCH", "/api/v1/articles/a1", `{}`).Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, srv, "PATCH", "/api/v1/articles/missing", `{"read":true}`).Code)
	})

	t.Run("reader", func(t *testing.T) {
		w := doRequest(t, srv, "POST", "/api/v1/articles/a1/reader", "")
		require.Equal(t, http.StatusOK, w.Code)
		var view scheduler.ReaderView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "full", view.Article.ContentText)
		assert.Empty(t, view.ReaderError)

		w = doRequest(t, srv, "POST", "/api/v1/articles/failing/reader", "")
		require.Equal(t, http.StatusOK, w.Code)
		view = scheduler.ReaderView{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "fetch timed out", view.ReaderError)
	})
}

func TestServer_OPML(t *testing.T) {
	svc := &mocks.ServiceMock{
		ExportOPMLFunc: func(ctx context.Context) (string, error) {
			return `<?xml version="1.0"?><opml version="2.0"></opml>`, nil
		},
	}
	srv := New(testConfig(), svc, "1.0", false)
	w := doRequest(t, srv, "GET", "/api/v1/opml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/x-opml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<opml")

	svc.ExportOPMLFunc = func(ctx context.Context) (string, error) {
		return "", &domain.StoreIOError{Op: "list feeds", Err: errors.New("disk I/O error")}
	}
	w = doRequest(t, srv, "GET", "/api/v1/opml", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk I/O error")
}

func TestErrorCode(t *testing.T) {
	tbl := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{&domain.StoreIOError{Op: "get", Err: domain.ErrNotFound}, http.StatusNotFound},
		{domain.ErrRefreshInProgress, http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrTimeout), http.StatusGatewayTimeout},
		{&domain.UpstreamError{StatusCode: 404}, http.StatusBadGateway},
		{domain.ErrMalformedDocument, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for i, tt := range tbl {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			assert.Equal(t, tt.code, errorCode(tt.err))
		})
	}
}

func TestServer_Run(t *testing.T) {
	// grab a free port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return addr, 5 * time.Second },
	}
	svc := &mocks.ServiceMock{
		StatusFunc: func(ctx context.Context) (scheduler.Status, error) { return scheduler.Status{}, nil },
	}
	srv := New(cfg, svc, "1.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/status")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
