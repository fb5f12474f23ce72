package feed

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the number of hex characters kept from the digest
const idLength = 16

// HashID returns a deterministic short hex id for the input
func HashID(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:idLength]
}

// FeedID returns the id of a feed identified by its URL
func FeedID(feedURL string) string {
	return HashID(feedURL)
}

// ArticleID returns the id of an article within a feed, key is the item's guid or its fallback
func ArticleID(feedID, key string) string {
	return HashID(feedID + ":" + key)
}
