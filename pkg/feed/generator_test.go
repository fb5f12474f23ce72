package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsync/pkg/domain"
)

func TestGenerateOPML(t *testing.T) {
	feeds := []domain.Feed{
		{ID: "1", Title: "Feed One", FeedURL: "https://x.test/feed", SiteURL: "https://x.test", Tags: []string{"go", "news"}},
		{ID: "2", Title: "Feed & Two", FeedURL: "https://y.test/rss"},
	}

	out, err := GenerateOPML(feeds, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<title>FeedSync Subscriptions</title>`)
	assert.Contains(t, out, `xmlUrl="https://x.test/feed"`)
	assert.Contains(t, out, `htmlUrl="https://x.test"`)
	assert.Contains(t, out, `category="go,news"`)
	assert.Contains(t, out, `Feed &amp; Two`)

	var doc struct {
		Body struct {
			Outlines []struct {
				XMLURL string `xml:"xmlUrl,attr"`
			} `xml:"outline"`
		} `xml:"body"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Body.Outlines, 2)
}
