package monitor

import (
	"github.com/damiri/vetwatch/internal/dedup"
	"github.com/damiri/vetwatch/internal/detect"
	"github.com/damiri/vetwatch/internal/feeds"
	"github.com/damiri/vetwatch/internal/lexicon"
	"github.com/damiri/vetwatch/internal/logger"
	"github.com/damiri/vetwatch/internal/metrics"
	"github.com/damiri/vetwatch/internal/score"
	"github.com/damiri/vetwatch/internal/storage"
)

// Assembler runs the detect -> score -> dedup pipeline over one batch of
// raw items.
type Assembler struct {
	detector *detect.Detector
	scorer   *score.Scorer
	store    storage.SeenStore
	maxItems int
}

// New builds an assembler. maxItems bounds how many new events one run may
// produce; zero or negative means unbounded.
func New(detector *detect.Detector, scorer *score.Scorer, store storage.SeenStore, maxItems int) *Assembler {
	return &Assembler{
		detector: detector,
		scorer:   scorer,
		store:    store,
		maxItems: maxItems,
	}
}

// Run classifies items in their given order and returns the new events.
// Items are independent: a malformed or unclassifiable item is skipped and
// never affects the rest of the batch. Accepted fingerprints are recorded
// in the seen store as a side effect; the caller persists the store after
// the run.
func (a *Assembler) Run(items []feeds.RawItem) []Event {
	var events []Event

	for _, item := range items {
		if a.maxItems > 0 && len(events) >= a.maxItems {
			logger.Info("event limit reached, ignoring remaining items", "limit", a.maxItems)
			break
		}
		metrics.ItemsProcessed.Inc()

		if item.Title == "" && item.Description == "" {
			logger.Debug("skipping item with no text", "source", item.SourceID)
			continue
		}

		text := item.Title
		if item.Description != "" {
			text += " " + item.Description
		}

		det := a.detector.Detect(text, item.Extra["country"])
		if det.Country == "" || det.Disease == "" {
			// Most raw items are irrelevant noise; dropping them is the
			// expected path, not a failure.
			metrics.ItemsDropped.Inc()
			continue
		}

		sc := a.scorer.Score(det.Country, det.Disease)

		fp := dedup.Fingerprint(item)
		if !a.store.IsNew(fp) {
			logger.Debug("already reported", "title", item.Title, "fingerprint", fp)
			metrics.DuplicatesFiltered.Inc()
			continue
		}
		a.store.Record(fp, item.SourceID)

		region := det.Region
		if region == "" {
			region = lexicon.RegionUnspecified
		}

		events = append(events, Event{
			Country:     det.Country,
			Region:      region,
			Disease:     det.Disease,
			Score:       sc,
			Severity:    score.SeverityFor(sc),
			SourceLabel: item.SourceID,
			ReportRef:   item.Extra["report_ref"],
			Title:       item.Title,
			Link:        item.URL,
		})
		metrics.EventsEmitted.Inc()
		logger.Info("new event",
			"country", det.Country, "disease", det.Disease,
			"region", region, "score", sc, "source", item.SourceID)
	}

	return events
}
