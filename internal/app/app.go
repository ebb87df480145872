// Package app wires the source adapters, classification pipeline, state
// store and notifier into one monitoring run.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/damiri/vetwatch/internal/config"
	"github.com/damiri/vetwatch/internal/detect"
	"github.com/damiri/vetwatch/internal/feeds"
	"github.com/damiri/vetwatch/internal/feeds/empres"
	"github.com/damiri/vetwatch/internal/feeds/gdelt"
	"github.com/damiri/vetwatch/internal/feeds/rss"
	"github.com/damiri/vetwatch/internal/lexicon"
	"github.com/damiri/vetwatch/internal/logger"
	"github.com/damiri/vetwatch/internal/metrics"
	"github.com/damiri/vetwatch/internal/monitor"
	"github.com/damiri/vetwatch/internal/ratelimit"
	"github.com/damiri/vetwatch/internal/report"
	"github.com/damiri/vetwatch/internal/score"
	"github.com/damiri/vetwatch/internal/storage"
	"github.com/damiri/vetwatch/internal/telegram"
)

// notifier is the outbound message contract; satisfied by telegram.Notifier.
type notifier interface {
	Send(ctx context.Context, text string) error
}

// Run executes one monitoring batch: fetch, classify, deduplicate, report.
func Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("config: %w", err)
	}

	wl, err := config.LoadWatchlist(cfg.WatchlistConfigPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("watchlist: %w", err)
	}
	logger.Info("watchlist loaded", "primary", wl.Primary, "countries", len(wl.Countries))

	store := openStore(cfg)
	defer store.Close()

	return execute(ctx, cfg, wl, buildSources(cfg), store, telegram.New(cfg.TelegramToken, cfg.TelegramChatID))
}

// execute is the run body behind Run, with every collaborator injected.
func execute(ctx context.Context, cfg *config.Config, wl *config.Watchlist, sources []feeds.Source, store storage.SeenStore, notify notifier) error {
	if err := store.Load(); err != nil {
		// Backends already degrade to empty on corruption; this only
		// fires on genuinely unexpected failures.
		logger.Warn("state load failed, continuing with empty seen-set", "error", err)
	}
	logger.Info("seen-set loaded", "fingerprints", store.Len())

	items, statuses := fetchAll(ctx, sources, cfg.RequestTimeout)
	formatter := report.New(cfg.TopN, cfg.AlertThreshold, cfg.MaxAlerts)

	allFailed := true
	for _, st := range statuses {
		if st.OK {
			allFailed = false
			break
		}
	}
	if allFailed {
		logger.Error("every source adapter failed")
		metrics.Global.SetError("all sources failed")
		// State is deliberately not saved: nothing was classified, so the
		// seen-set must stay exactly as loaded.
		return notify.Send(ctx, formatter.NoFetch(statuses))
	}

	lex := lexicon.Default()
	assembler := monitor.New(
		detect.New(lex),
		score.New(wl.Primary, wl.Countries, wl.Weights),
		store,
		cfg.MaxItems,
	)
	events := assembler.Run(items)
	logger.Info("batch assembled", "raw_items", len(items), "new_events", len(events))

	if err := notify.Send(ctx, formatter.Digest(events, statuses)); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("digest delivery: %w", err)
	}
	for _, alert := range formatter.Alerts(events) {
		if err := notify.Send(ctx, alert); err != nil {
			logger.Error("alert delivery failed", "error", err)
		}
	}

	if err := store.Save(); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("state save: %w", err)
	}
	metrics.SeenSetSize.Set(float64(store.Len()))
	metrics.Global.SetLastRun()
	logger.Info("run complete", "events", len(events), "seen_set", store.Len())
	return nil
}

// openStore picks the configured state backend, falling back to the file
// store when SQLite cannot be opened.
func openStore(cfg *config.Config) storage.SeenStore {
	if cfg.StateBackend == "sqlite" {
		store, err := storage.NewSQLiteStore(cfg.StateDBPath)
		if err == nil {
			return store
		}
		logger.Warn("sqlite state backend unavailable, using file store", "error", err)
	}
	return storage.NewFileStore(cfg.StateFilePath)
}

// fetchAll runs every source adapter, converting failures into status
// tokens. A failed adapter contributes zero items and never aborts the run.
func fetchAll(ctx context.Context, sources []feeds.Source, timeout time.Duration) ([]feeds.RawItem, []report.SourceStatus) {
	var items []feeds.RawItem
	statuses := make([]report.SourceStatus, 0, len(sources))

	for _, src := range sources {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		batch, err := src.Fetch(fetchCtx)
		cancel()

		if err != nil {
			logger.Error("source fetch failed", "source", src.Name(), "error", err)
			metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
			statuses = append(statuses, report.SourceStatus{Name: src.Name(), Err: err.Error()})
			continue
		}
		items = append(items, batch...)
		statuses = append(statuses, report.SourceStatus{Name: src.Name(), OK: true, Items: len(batch)})
	}

	return items, statuses
}

func buildSources(cfg *config.Config) []feeds.Source {
	limiter := ratelimit.New(cfg.MaxRequestsPerSource, 0, 24*time.Hour)
	lookback := cfg.Lookback()
	sources := []feeds.Source{
		empres.New("", lookback, limiter),
		gdelt.New("", nil, lookback, 50, limiter),
	}

	urls, err := rss.LoadFeeds(cfg.SourcesConfigPath)
	if err != nil {
		logger.Warn("rss feed list unavailable", "path", cfg.SourcesConfigPath, "error", err)
		return sources
	}
	return append(sources, rss.New("RSS", urls, lookback))
}
