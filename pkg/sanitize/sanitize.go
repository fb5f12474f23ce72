// Package sanitize turns untrusted HTML from feeds and article pages into safe HTML or plain text.
package sanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans HTML using allow-list policies
type Sanitizer struct {
	feed   *bluemonday.Policy
	reader *bluemonday.Policy
	strict *bluemonday.Policy
}

// New makes a sanitizer with policies for feed content, reader view content and plain text
func New() *Sanitizer {
	strict := bluemonday.StrictPolicy()
	strict.AddSpaceWhenStrippingTag(true)

	return &Sanitizer{
		feed:   feedPolicy(),
		reader: readerPolicy(),
		strict: strict,
	}
}

// feedPolicy allows common formatting plus images and code blocks, links open in a new context
func feedPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption", "pre", "code")
	p.AllowAttrs("src", "alt", "title", "width", "height", "loading").OnElements("img")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// readerPolicy is used for extracted article pages, video is allowed and only web schemes are kept
func readerPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowRelativeURLs(true)
	p.AllowElements("p", "br", "hr", "b", "i", "em", "strong", "blockquote", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6", "figure", "figcaption", "pre", "code", "table", "thead",
		"tbody", "tr", "th", "td", "caption", "span", "div", "sup", "sub")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height", "loading").OnElements("img")
	p.AllowAttrs("src", "controls", "poster").OnElements("video")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// Sanitize returns safe HTML for feed-provided content
func (s *Sanitizer) Sanitize(input string) string {
	return strings.TrimSpace(s.feed.Sanitize(input))
}

// SanitizeReader returns safe HTML for content extracted from article pages
func (s *Sanitizer) SanitizeReader(input string) string {
	return strings.TrimSpace(s.reader.Sanitize(input))
}

// StripAllMarkup removes all tags and returns plain text with entities decoded
func (s *Sanitizer) StripAllMarkup(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(input)))
}

// Snippet strips markup, collapses whitespace and cuts the result to maxLen runes
func (s *Sanitizer) Snippet(input string, maxLen int) string {
	text := strings.Join(strings.Fields(s.StripAllMarkup(input)), " ")
	return Truncate(text, maxLen)
}

// Truncate cuts text to at most maxLen runes
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLen]))
}
