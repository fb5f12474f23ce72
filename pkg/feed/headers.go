package feed

import "net/http"

const (
	// DefaultUserAgent identifies the client to feed servers
	DefaultUserAgent = "FeedSync/1.0 (+https://github.com/umputun/feedsync)"

	feedAccept = "application/rss+xml, application/xml, text/xml, application/atom+xml, text/html;q=0.9,*/*;q=0.8"
	pageAccept = "text/html,application/xhtml+xml"
)

// setFeedHeaders sets the fixed outbound headers for feed requests
func setFeedHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", feedAccept)
}

// setPageHeaders sets headers for html page requests, used by discovery and extraction
func setPageHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", pageAccept)
}

// setValidators adds cache-validation headers if previous values are known
func setValidators(req *http.Request, etag, lastModified string) {
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}
}
