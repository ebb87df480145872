// Package gdelt queries the GDELT DOC 2.0 global news index, one query per
// priority disease, within the configured lookback window.
package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/damiri/vetwatch/internal/feeds"
	"github.com/damiri/vetwatch/internal/logger"
	"github.com/damiri/vetwatch/internal/ratelimit"
)

const defaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// One phrase per priority disease; the detector re-classifies every hit, so
// these only need to be broad enough to surface candidates.
var defaultQueries = []string{
	`"foot and mouth disease"`,
	`"rift valley fever"`,
	`"peste des petits ruminants"`,
	`"avian influenza"`,
	`"lumpy skin disease"`,
}

// Client searches the news index.
type Client struct {
	baseURL    string
	queries    []string
	lookback   time.Duration
	maxRecords int
	limiter    *ratelimit.Limiter
	client     *http.Client
}

type artListResponse struct {
	Articles []struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		SeenDate string `json:"seendate"`
		Domain   string `json:"domain"`
		Language string `json:"language"`
	} `json:"articles"`
}

// New creates a GDELT client. Empty baseURL or queries fall back to the
// public endpoint and the built-in disease queries.
func New(baseURL string, queries []string, lookback time.Duration, maxRecords int, limiter *ratelimit.Limiter) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if len(queries) == 0 {
		queries = defaultQueries
	}
	if maxRecords <= 0 {
		maxRecords = 50
	}
	return &Client{
		baseURL:    baseURL,
		queries:    queries,
		lookback:   lookback,
		maxRecords: maxRecords,
		limiter:    limiter,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Name() string { return "GDELT" }

// Fetch runs every disease query. Individual query failures are logged and
// skipped; Fetch errors only when no query succeeded.
func (c *Client) Fetch(ctx context.Context) ([]feeds.RawItem, error) {
	var items []feeds.RawItem
	successCount := 0

	for _, q := range c.queries {
		if c.limiter != nil && !c.limiter.Allow("gdelt") {
			logger.Warn("gdelt request budget exhausted, skipping remaining queries")
			break
		}

		batch, err := c.search(ctx, q)
		if err != nil {
			logger.Warn("gdelt query failed", "query", q, "error", err)
			continue
		}
		successCount++
		items = append(items, batch...)
	}

	if successCount == 0 {
		return nil, fmt.Errorf("all gdelt queries failed")
	}
	logger.Info("gdelt articles fetched", "queries_ok", successCount, "items", len(items))
	return items, nil
}

func (c *Client) search(ctx context.Context, query string) ([]feeds.RawItem, error) {
	span := fmt.Sprintf("%dh", int(c.lookback.Hours()))
	params := url.Values{
		"query":      {query},
		"mode":       {"ArtList"},
		"format":     {"json"},
		"timespan":   {span},
		"maxrecords": {fmt.Sprintf("%d", c.maxRecords)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var artList artListResponse
	if err := json.NewDecoder(resp.Body).Decode(&artList); err != nil {
		return nil, fmt.Errorf("payload unreadable: %v", err)
	}

	items := make([]feeds.RawItem, 0, len(artList.Articles))
	for _, a := range artList.Articles {
		if a.Title == "" {
			continue
		}

		var published *time.Time
		if t, err := time.Parse("20060102T150405Z", a.SeenDate); err == nil {
			published = &t
		}

		items = append(items, feeds.RawItem{
			SourceID:  c.Name(),
			Title:     a.Title,
			URL:       a.URL,
			Published: published,
			Extra: map[string]string{
				"domain":   a.Domain,
				"language": a.Language,
			},
		})
	}
	return items, nil
}
