// Package dedup computes stable identity fingerprints for raw items so that
// the same real-world report re-fetched on a later run collides with its
// earlier self.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/damiri/vetwatch/internal/feeds"
)

// Fingerprint derives a deterministic identity hash for an item. Identity is
// the normalized title plus URL when the item has one, otherwise the
// normalized title plus description. Ephemeral fields (published timestamps,
// adapter extras) are never hashed, so re-crawls of the same item collide.
func Fingerprint(item feeds.RawItem) string {
	title := normalize(item.Title)

	var identity string
	if url := normalizeURL(item.URL); url != "" {
		identity = title + "|" + url
	} else {
		identity = title + "|" + normalize(item.Description)
	}

	h := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(h[:])[:16]
}

// normalize lowercases and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeURL strips scheme, www prefix and trailing slash so that trivial
// syntactic variants of the same link hash identically.
func normalizeURL(u string) string {
	u = strings.TrimSpace(strings.ToLower(u))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}
