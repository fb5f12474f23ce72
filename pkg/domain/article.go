package domain

import "time"

// Article represents one normalized entry belonging to exactly one feed.
// Read and Saved are owned by the user and never set by ingestion.
type Article struct {
	ID           string     `json:"id"`
	FeedID       string     `json:"feed_id"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	Author       string     `json:"author,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	DateInferred bool       `json:"date_inferred,omitempty"` // publish date was missing upstream and stamped at ingestion
	Snippet      string     `json:"snippet"`
	ContentText  string     `json:"content_text"`
	ContentHTML  *string    `json:"content_html,omitempty"`
	Read         bool       `json:"read"`
	Saved        bool       `json:"saved"`
}

// ArticleStateUpdate changes user-owned fields. Nil fields are left as is.
type ArticleStateUpdate struct {
	Read  *bool `json:"read,omitempty"`
	Saved *bool `json:"saved,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u ArticleStateUpdate) IsEmpty() bool {
	return u.Read == nil && u.Saved == nil
}

// ArticleContentUpdate changes content fields produced by reader extraction. Nil fields are left as is.
type ArticleContentUpdate struct {
	ContentText *string `json:"content_text,omitempty"`
	ContentHTML *string `json:"content_html,omitempty"`
}

// WithState returns a copy of the article with the state update applied
func (a Article) WithState(u ArticleStateUpdate) Article {
	if u.Read != nil {
		a.Read = *u.Read
	}
	if u.Saved != nil {
		a.Saved = *u.Saved
	}
	return a
}

// WithContent returns a copy of the article with the content update applied.
// User-owned fields are not reachable through this update.
func (a Article) WithContent(u ArticleContentUpdate) Article {
	if u.ContentText != nil {
		a.ContentText = *u.ContentText
	}
	if u.ContentHTML != nil {
		html := *u.ContentHTML
		a.ContentHTML = &html
	}
	return a
}

// Extraction is the readable content extracted from an article page
type Extraction struct {
	Title       string  `json:"title"`
	Byline      string  `json:"byline,omitempty"`
	ContentText string  `json:"content_text"`
	ContentHTML *string `json:"content_html,omitempty"`
}

// ContentUpdate converts extraction into a content update for the article
func (e Extraction) ContentUpdate() ArticleContentUpdate {
	text := e.ContentText
	return ArticleContentUpdate{ContentText: &text, ContentHTML: e.ContentHTML}
}
