package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedsync/pkg/domain"
	"github.com/umputun/feedsync/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/service.go -pkg mocks -skip-ensure -fmt goimports . Service

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	svc     Service
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Service is the ingestion request surface the API exposes
type Service interface {
	Status(ctx context.Context) (scheduler.Status, error)
	DiscoverFeeds(ctx context.Context, siteURL string) ([]domain.DiscoveredFeed, error)
	IngestOrRefresh(ctx context.Context, feedURL string, validators domain.CacheValidator) (*scheduler.IngestResult, error)
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
	AddFeed(ctx context.Context, feedURL string, tags []string) (*domain.Batch, error)
	DeleteFeed(ctx context.Context, feedID string) error
	RefreshFeed(ctx context.Context, feedID string) (scheduler.RefreshResult, error)
	RefreshAll(ctx context.Context) ([]scheduler.RefreshResult, error)
	ListArticles(ctx context.Context, q scheduler.ArticleQuery) ([]domain.Article, error)
	SetArticleState(ctx context.Context, articleID string, upd domain.ArticleStateUpdate) (*domain.Article, error)
	LoadReaderView(ctx context.Context, articleID string) (*scheduler.ReaderView, error)
	ExportOPML(ctx context.Context) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, svc Service, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		svc:     svc,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedsync", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /discover", s.discoverHandler)
		r.HandleFunc("POST /fetch", s.fetchHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("POST /feeds/{id}/refresh", s.refreshFeedHandler)
		r.HandleFunc("POST /refresh", s.refreshAllHandler)

		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("PATCH /articles/{id}", s.updateArticleHandler)
		r.HandleFunc("POST /articles/{id}/reader", s.readerHandler)

		r.HandleFunc("GET /opml", s.opmlHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON, the status code is derived from the error
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorCode(err)
	if code == http.StatusInternalServerError {
		lgr.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	}
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}

// errorCode maps domain errors to http status codes
func errorCode(err error) int {
	var ue *domain.UpstreamError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRefreshInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &ue):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
