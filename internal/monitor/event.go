// Package monitor assembles raw feed items into scored, deduplicated events.
package monitor

import "github.com/damiri/vetwatch/internal/score"

// Event is a classified, scored, deduplicated disease mention ready for
// reporting. Country and Disease are always non-empty; items that fail to
// resolve either never become events. Score and Severity always agree with
// the fixed thresholds.
type Event struct {
	Country     string
	Region      string
	Disease     string
	Score       int
	Severity    score.Severity
	SourceLabel string
	ReportRef   string
	Title       string
	Link        string
}
