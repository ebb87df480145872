// Package feeds defines the raw item model shared by all source adapters.
package feeds

import (
	"context"
	"time"
)

// RawItem is one unclassified record from a feed or API. Title is required;
// everything else is best effort. Duplicates across sources are expected
// here and resolved downstream.
type RawItem struct {
	SourceID    string
	Title       string
	Description string
	URL         string
	Published   *time.Time
	Extra       map[string]string
}

// Source is a feed adapter. Fetch returns a finite batch of items for one
// run; a failed adapter returns an error and contributes zero items, which
// the caller records as a status token rather than propagating.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]RawItem, error)
}
