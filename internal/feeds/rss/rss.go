// Package rss fetches generic veterinary and agricultural news feeds.
package rss

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/damiri/vetwatch/internal/feeds"
	"github.com/damiri/vetwatch/internal/logger"
)

// FeedsConfig is the YAML feed list structure:
//
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Source fetches a set of RSS/Atom feeds as one adapter.
type Source struct {
	name   string
	urls   []string
	maxAge time.Duration
	parser *gofeed.Parser
}

// New creates an RSS source over the given feed URLs. Items older than
// maxAge are dropped at fetch time; zero maxAge keeps everything.
func New(name string, urls []string, maxAge time.Duration) *Source {
	return &Source{
		name:   name,
		urls:   urls,
		maxAge: maxAge,
		parser: gofeed.NewParser(),
	}
}

func (s *Source) Name() string { return s.name }

// Fetch downloads and parses all configured feeds. A single broken feed is
// logged and skipped; Fetch only errors when every feed failed.
func (s *Source) Fetch(ctx context.Context) ([]feeds.RawItem, error) {
	var items []feeds.RawItem
	successCount := 0

	for _, url := range s.urls {
		feed, err := s.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			logger.Warn("failed to parse feed", "url", url, "error", err)
			continue
		}
		successCount++

		for _, entry := range feed.Items {
			published := entry.PublishedParsed
			if published == nil {
				published = entry.UpdatedParsed
			}
			if s.maxAge > 0 && published != nil && time.Since(*published) > s.maxAge {
				continue
			}

			items = append(items, feeds.RawItem{
				SourceID:    s.name,
				Title:       entry.Title,
				Description: feeds.CleanHTML(entry.Description),
				URL:         entry.Link,
				Published:   published,
			})
		}
		logger.Debug("feed loaded", "url", url, "items", len(feed.Items))
	}

	if successCount == 0 && len(s.urls) > 0 {
		return nil, fmt.Errorf("all %d feeds failed", len(s.urls))
	}
	logger.Info("rss feeds fetched", "ok", successCount, "total", len(s.urls), "items", len(items))
	return items, nil
}
