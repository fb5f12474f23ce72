package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/scheduler"
)

type urlRequest struct {
	URL string `json:"url"`
}

type fetchRequest struct {
	URL          string `json:"url"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

type addFeedRequest struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Status(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":          "ok",
		"version":         s.version,
		"time":            time.Now().UTC(),
		"feeds":           st.Feeds,
		"refreshing":      st.Refreshing,
		"last_refresh_at": st.LastRefreshAt,
	})
}

// discoverHandler finds feeds advertised by a site page
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	feeds, err := s.svc.DiscoverFeeds(r.Context(), req.URL)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"feeds": feeds})
}

// fetchHandler fetches and normalizes a feed without subscribing to it
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.IngestOrRefresh(r.Context(), req.URL, domain.CacheValidator{ETag: req.ETag, LastModified: req.LastModified})
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// listFeedsHandler returns all subscriptions
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.svc.ListFeeds(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"feeds": feeds})
}

// addFeedHandler subscribes to a feed and returns its catalog slice
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req addFeedRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	batch, err := s.svc.AddFeed(r.Context(), req.URL, req.Tags)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, batch)
}

// deleteFeedHandler unsubscribes from a feed
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteFeed(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshFeedHandler refreshes one feed
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.RefreshFeed(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// refreshAllHandler refreshes all feeds, per-feed failures are reported in results
func (s *Server) refreshAllHandler(w http.ResponseWriter, r *http.Request) {
	results, err := s.svc.RefreshAll(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"results": results, "failed": failed})
}

// listArticlesHandler returns articles, optionally filtered by feed, saved flag and search query
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	q := scheduler.ArticleQuery{
		FeedID: r.URL.Query().Get("feed"),
		Search: r.URL.Query().Get("q"),
	}
	if savedStr := r.URL.Query().Get("saved"); savedStr != "" {
		saved, err := strconv.ParseBool(savedStr)
		if err != nil {
			renderError(w, r, fmt.Errorf("saved parameter %q: %w", savedStr, domain.ErrInvalidInput))
			return
		}
		q.SavedOnly = saved
	}

	articles, err := s.svc.ListArticles(r.Context(), q)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"articles": articles})
}

// updateArticleHandler changes read/saved flags
func (s *Server) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.ArticleStateUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	if upd.IsEmpty() {
		renderError(w, r, fmt.Errorf("nothing to update: %w", domain.ErrInvalidInput))
		return
	}
	article, err := s.svc.SetArticleState(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, article)
}

// readerHandler returns the article with readable content extracted from its page
func (s *Server) readerHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.LoadReaderView(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, view)
}

// opmlHandler exports subscriptions as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	opml, err := s.svc.ExportOPML(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="feedsync.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[WARN] failed to write OPML response: %v", err)
	}
}

// decodeJSON decodes request body into v, rendering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		renderError(w, r, fmt.Errorf("decode request: %w: %v", domain.ErrInvalidInput, strings.TrimSpace(err.Error())))
		return false
	}
	return true
}
