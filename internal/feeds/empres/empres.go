// Package empres pulls structured outbreak records from the FAO EMPRES-i
// public API. Unlike the news sources, these records already carry country
// and disease fields, which are passed downstream as detection hints.
package empres

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damiri/vetwatch/internal/feeds"
	"github.com/damiri/vetwatch/internal/logger"
	"github.com/damiri/vetwatch/internal/ratelimit"
)

const defaultBaseURL = "https://empres-i.apps.fao.org/eio/api/public/events"

// Client fetches recent outbreak events.
type Client struct {
	baseURL  string
	lookback time.Duration
	limiter  *ratelimit.Limiter
	client   *http.Client
}

type apiResponse struct {
	Events []apiEvent `json:"events"`
}

type apiEvent struct {
	EventID    int64  `json:"eventId"`
	Disease    string `json:"disease"`
	Country    string `json:"country"`
	Admin1     string `json:"admin1"`
	Locality   string `json:"locality"`
	Species    string `json:"species"`
	Status     string `json:"status"`
	ReportDate string `json:"reportDate"`
	EventLink  string `json:"eventLink"`
}

// New creates an EMPRES-i client. baseURL may be empty to use the public
// endpoint; lookback bounds how far back events are requested.
func New(baseURL string, lookback time.Duration, limiter *ratelimit.Limiter) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		lookback: lookback,
		limiter:  limiter,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Name() string { return "EMPRES-i" }

// Fetch requests outbreak events reported within the lookback window and
// converts them to raw items.
func (c *Client) Fetch(ctx context.Context) ([]feeds.RawItem, error) {
	if c.limiter != nil && !c.limiter.Allow("empres") {
		return nil, fmt.Errorf("request budget exhausted")
	}

	from := time.Now().Add(-c.lookback).Format("2006-01-02")
	reqURL := fmt.Sprintf("%s?from=%s&format=json", c.baseURL, url.QueryEscape(from))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("empres request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("empres returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("empres payload unreadable: %v", err)
	}

	items := make([]feeds.RawItem, 0, len(apiResp.Events))
	for _, ev := range apiResp.Events {
		if ev.Disease == "" || ev.Country == "" {
			logger.Debug("skipping incomplete outbreak record", "event_id", ev.EventID)
			continue
		}

		var published *time.Time
		if ev.ReportDate != "" {
			if t, err := time.Parse("2006-01-02", ev.ReportDate); err == nil {
				published = &t
			}
		}

		items = append(items, feeds.RawItem{
			SourceID:    c.Name(),
			Title:       fmt.Sprintf("%s outbreak reported in %s", ev.Disease, ev.Country),
			Description: describe(ev),
			URL:         ev.EventLink,
			Published:   published,
			Extra: map[string]string{
				"country":    ev.Country,
				"report_ref": fmt.Sprintf("EMPRES-%d", ev.EventID),
			},
		})
	}

	logger.Info("empres events fetched", "count", len(items), "from", from)
	return items, nil
}

func describe(ev apiEvent) string {
	parts := []string{}
	if ev.Admin1 != "" {
		parts = append(parts, ev.Admin1)
	}
	if ev.Locality != "" && ev.Locality != ev.Admin1 {
		parts = append(parts, ev.Locality)
	}
	if ev.Species != "" {
		parts = append(parts, "species: "+ev.Species)
	}
	if ev.Status != "" {
		parts = append(parts, "status: "+ev.Status)
	}
	return strings.Join(parts, ", ")
}
