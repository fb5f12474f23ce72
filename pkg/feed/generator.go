package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feedsync/pkg/domain"
)

// GenerateOPML creates an OPML document with feed subscriptions, tags go to the category attribute
func GenerateOPML(feeds []domain.Feed, now time.Time) (string, error) {
	type outline struct {
		XMLName  xml.Name `xml:"outline"`
		Text     string   `xml:"text,attr"`
		Title    string   `xml:"title,attr"`
		Type     string   `xml:"type,attr"`
		XMLUrl   string   `xml:"xmlUrl,attr"`
		HTMLUrl  string   `xml:"htmlUrl,attr,omitempty"`
		Category string   `xml:"category,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(feeds))
	for _, f := range feeds {
		outlines = append(outlines, outline{
			Text:     f.Title,
			Title:    f.Title,
			Type:     "rss",
			XMLUrl:   f.FeedURL,
			HTMLUrl:  f.SiteURL,
			Category: strings.Join(f.Tags, ","),
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "FeedSync Subscriptions",
			DateCreated: now.Format(time.RFC1123Z),
		},
		Body: body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
