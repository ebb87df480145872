package report

import (
	"strings"
	"testing"
	"time"

	"github.com/damiri/vetwatch/internal/lexicon"
	"github.com/damiri/vetwatch/internal/monitor"
	"github.com/damiri/vetwatch/internal/score"
)

func newFormatter(topN, threshold, maxAlerts int) *Formatter {
	f := New(topN, threshold, maxAlerts)
	f.now = func() time.Time {
		return time.Date(2025, 8, 15, 9, 30, 0, 0, time.UTC)
	}
	return f
}

func event(country, disease string, sc int) monitor.Event {
	return monitor.Event{
		Country:     country,
		Region:      lexicon.RegionUnspecified,
		Disease:     disease,
		Score:       sc,
		Severity:    score.SeverityFor(sc),
		SourceLabel: "RSS",
		Title:       disease + " in " + country,
		Link:        "https://example.org/item",
	}
}

func TestDigestWithoutEventsReportsAllClear(t *testing.T) {
	f := newFormatter(10, 80, 5)

	msg := f.Digest(nil, []SourceStatus{{Name: "RSS", OK: true, Items: 12}})
	if !strings.Contains(msg, "لا توجد إشارات جديدة") {
		t.Errorf("expected no-signals notice, got:\n%s", msg)
	}
	if !strings.Contains(msg, "النظام يعمل بشكل طبيعي") {
		t.Errorf("expected all-clear footer, got:\n%s", msg)
	}
	if !strings.Contains(msg, "RSS") {
		t.Errorf("expected source status line, got:\n%s", msg)
	}
	// 12:30 KSA for 09:30 UTC.
	if !strings.Contains(msg, "2025-08-15 12:30") {
		t.Errorf("expected KSA timestamp, got:\n%s", msg)
	}
}

func TestDigestListsEventsByDescendingScore(t *testing.T) {
	f := newFormatter(10, 80, 5)

	events := []monitor.Event{
		event("Sudan", lexicon.DiseaseLSD, 40),
		event("Saudi Arabia", lexicon.DiseaseRVF, 85),
		event("Jordan", lexicon.DiseaseFMD, 50),
	}
	msg := f.Digest(events, nil)

	if !strings.Contains(msg, "إشارات جديدة: 3") {
		t.Errorf("expected event count, got:\n%s", msg)
	}
	iHigh := strings.Index(msg, "Saudi Arabia")
	iMid := strings.Index(msg, "Jordan")
	iLow := strings.Index(msg, "Sudan")
	if !(iHigh < iMid && iMid < iLow) {
		t.Errorf("expected descending score order, got positions %d/%d/%d in:\n%s", iHigh, iMid, iLow, msg)
	}
}

func TestDigestTruncatesToTopN(t *testing.T) {
	f := newFormatter(2, 80, 5)

	events := []monitor.Event{
		event("Sudan", lexicon.DiseaseLSD, 40),
		event("Saudi Arabia", lexicon.DiseaseRVF, 85),
		event("Jordan", lexicon.DiseaseFMD, 50),
	}
	msg := f.Digest(events, nil)

	if strings.Contains(msg, "Sudan") {
		t.Errorf("lowest-scored event should be cut by top-N, got:\n%s", msg)
	}
	if !strings.Contains(msg, "Saudi Arabia") || !strings.Contains(msg, "Jordan") {
		t.Errorf("top two events missing:\n%s", msg)
	}
}

func TestNoFetchMessage(t *testing.T) {
	f := newFormatter(10, 80, 5)

	msg := f.NoFetch([]SourceStatus{
		{Name: "RSS", Err: "all 3 feeds failed"},
		{Name: "GDELT", Err: "status 503"},
	})
	if !strings.Contains(msg, "تعذّر جلب البيانات") {
		t.Errorf("expected could-not-fetch notice, got:\n%s", msg)
	}
	if !strings.Contains(msg, "status 503") {
		t.Errorf("expected failure detail, got:\n%s", msg)
	}
}

func TestAlertsRespectThresholdAndCap(t *testing.T) {
	f := newFormatter(10, 80, 2)

	events := []monitor.Event{
		event("Saudi Arabia", lexicon.DiseaseRVF, 85),
		event("Saudi Arabia", lexicon.DiseaseAI, 85),
		event("Saudi Arabia", lexicon.DiseaseFMD, 80),
		event("Jordan", lexicon.DiseaseFMD, 50),
	}
	alerts := f.Alerts(events)

	if len(alerts) != 2 {
		t.Fatalf("expected cap of 2 alerts, got %d", len(alerts))
	}
	for _, a := range alerts {
		if !strings.Contains(a, "تنبيه عاجل") {
			t.Errorf("alert missing header:\n%s", a)
		}
	}
}

func TestAlertsEmptyBelowThreshold(t *testing.T) {
	f := newFormatter(10, 80, 5)

	alerts := f.Alerts([]monitor.Event{event("Jordan", lexicon.DiseaseFMD, 50)})
	if len(alerts) != 0 {
		t.Errorf("expected no alerts below threshold, got %d", len(alerts))
	}
}

func TestAlertIncludesRegionWhenSpecified(t *testing.T) {
	f := newFormatter(10, 80, 5)

	ev := event("Saudi Arabia", lexicon.DiseaseRVF, 85)
	ev.Region = "Jazan"
	ev.ReportRef = "EMPRES-12345"
	alerts := f.Alerts([]monitor.Event{ev})

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if !strings.Contains(alerts[0], "Jazan") {
		t.Errorf("expected region in alert:\n%s", alerts[0])
	}
	if !strings.Contains(alerts[0], "EMPRES-12345") {
		t.Errorf("expected report reference in alert:\n%s", alerts[0])
	}
}
