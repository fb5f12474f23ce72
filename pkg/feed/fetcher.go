package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/umputun/feedsync/pkg/domain"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBodySize  = 10 * 1024 * 1024
)

// Fetcher retrieves feed documents and html pages over HTTP with a bounded timeout
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// FetcherParams defines fetcher settings, zero values get defaults
type FetcherParams struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Client      *http.Client // optional, used in tests
}

// FetchResult is the outcome of a conditional feed fetch
type FetchResult struct {
	NotModified bool
	Body        []byte
	Validators  domain.CacheValidator // validators returned by the server for the next cycle
}

// Page is a fetched html page
type Page struct {
	URL  *url.URL // final url after redirects
	Body []byte
}

// NewFetcher creates a new fetcher
func NewFetcher(params FetcherParams) *Fetcher {
	if params.Timeout <= 0 {
		params.Timeout = defaultFetchTimeout
	}
	if params.UserAgent == "" {
		params.UserAgent = DefaultUserAgent
	}
	if params.MaxBodySize <= 0 {
		params.MaxBodySize = defaultMaxBodySize
	}
	client := params.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Fetcher{
		client:      client,
		timeout:     params.Timeout,
		userAgent:   params.UserAgent,
		maxBodySize: params.MaxBodySize,
	}
}

// Fetch retrieves a feed document. Known validators are sent as conditional headers,
// and a 304 response returns NotModified without a body.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, validators domain.CacheValidator) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := f.newRequest(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	setFeedHeaders(req, f.userAgent)
	setValidators(req, validators.ETag, validators.LastModified)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.wrapErr(feedURL, err)
	}
	defer resp.Body.Close()

	respValidators := domain.CacheValidator{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}

	if resp.StatusCode == http.StatusNotModified {
		return &FetchResult{NotModified: true, Validators: respValidators}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, &domain.UpstreamError{StatusCode: resp.StatusCode})
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, f.wrapErr(feedURL, err)
	}
	return &FetchResult{Body: body, Validators: respValidators}, nil
}

// FetchPage retrieves an html page, e.g. a site home page for feed discovery
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := f.newRequest(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	setPageHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.wrapErr(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, &domain.UpstreamError{StatusCode: resp.StatusCode})
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, f.wrapErr(pageURL, err)
	}
	return &Page{URL: resp.Request.URL, Body: body}, nil
}

func (f *Fetcher) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w: %v", rawURL, domain.ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("url %q: %w, only absolute http(s) urls are supported", rawURL, domain.ErrInvalidInput)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// readBody reads the response body up to the configured limit
func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", f.maxBodySize)
	}
	return body, nil
}

// wrapErr converts deadline and network timeout failures into domain.ErrTimeout
func (f *Fetcher) wrapErr(target string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("fetch %s: %w after %v", target, domain.ErrTimeout, f.timeout)
	}
	return fmt.Errorf("fetch %s: %w", target, err)
}
