// Package report renders event lists into the Arabic digest and alert texts
// sent to the notification channel. It produces plain strings; message
// length limits are the notifier's concern.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/damiri/vetwatch/internal/lexicon"
	"github.com/damiri/vetwatch/internal/monitor"
	"github.com/damiri/vetwatch/internal/score"
)

// SourceStatus is one adapter's outcome for the run, surfaced in every
// report so a silent feed is visible to the reader.
type SourceStatus struct {
	Name  string
	OK    bool
	Items int
	Err   string
}

// Reports are timestamped in Saudi time, matching the audience.
var ksaTZ = time.FixedZone("AST", 3*60*60)

const separator = "════════════════════"

// Formatter renders digests and alerts. now is injectable for tests.
type Formatter struct {
	topN           int
	alertThreshold int
	maxAlerts      int
	now            func() time.Time
}

// New builds a formatter. topN caps the digest listing, alertThreshold is
// the minimum score for a standalone alert, maxAlerts caps alerts per run.
func New(topN, alertThreshold, maxAlerts int) *Formatter {
	return &Formatter{
		topN:           topN,
		alertThreshold: alertThreshold,
		maxAlerts:      maxAlerts,
		now:            time.Now,
	}
}

// Digest renders the run report: the no-signals notice when events is
// empty, otherwise the count, per-source status and the top events by
// descending score.
func (f *Formatter) Digest(events []monitor.Event, statuses []SourceStatus) string {
	var b strings.Builder
	f.writeHeader(&b)

	if len(events) == 0 {
		b.WriteString("🟢 لا توجد إشارات جديدة.\n\n")
		writeStatuses(&b, statuses)
		b.WriteString("\n🟢 النظام يعمل بشكل طبيعي.")
		return b.String()
	}

	fmt.Fprintf(&b, "🔔 إشارات جديدة: %d\n\n", len(events))
	writeStatuses(&b, statuses)
	b.WriteString("\n")

	ranked := rankByScore(events)
	if f.topN > 0 && len(ranked) > f.topN {
		ranked = ranked[:f.topN]
	}
	for i, ev := range ranked {
		fmt.Fprintf(&b, "%d. %s", i+1, formatEvent(ev))
		if i < len(ranked)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// NoFetch renders the report for a run where every source adapter failed.
func (f *Formatter) NoFetch(statuses []SourceStatus) string {
	var b strings.Builder
	f.writeHeader(&b)
	b.WriteString("⚠️ تعذّر جلب البيانات من جميع المصادر.\n\n")
	writeStatuses(&b, statuses)
	return b.String()
}

// Alerts renders one standalone message per event at or above the alert
// threshold, highest score first, capped at the configured maximum.
func (f *Formatter) Alerts(events []monitor.Event) []string {
	var hot []monitor.Event
	for _, ev := range events {
		if ev.Score >= f.alertThreshold {
			hot = append(hot, ev)
		}
	}
	if len(hot) == 0 {
		return nil
	}

	hot = rankByScore(hot)
	if f.maxAlerts > 0 && len(hot) > f.maxAlerts {
		hot = hot[:f.maxAlerts]
	}

	msgs := make([]string, 0, len(hot))
	for _, ev := range hot {
		var b strings.Builder
		b.WriteString("🚨 تنبيه عاجل\n\n")
		fmt.Fprintf(&b, "🦠 %s\n", ev.Disease)
		fmt.Fprintf(&b, "🌍 %s", ev.Country)
		if ev.Region != lexicon.RegionUnspecified {
			fmt.Fprintf(&b, " — %s", ev.Region)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "📊 درجة الخطورة: %d (%s)\n", ev.Score, severityArabic(ev.Severity))
		if ev.Title != "" {
			fmt.Fprintf(&b, "📰 %s\n", ev.Title)
		}
		if ev.Link != "" {
			fmt.Fprintf(&b, "🔗 %s\n", ev.Link)
		}
		if ev.ReportRef != "" {
			fmt.Fprintf(&b, "📎 المرجع: %s\n", ev.ReportRef)
		}
		fmt.Fprintf(&b, "\n🕒 %s بتوقيت السعودية", f.now().In(ksaTZ).Format("2006-01-02 15:04"))
		msgs = append(msgs, b.String())
	}
	return msgs
}

func (f *Formatter) writeHeader(b *strings.Builder) {
	b.WriteString("📄 تقرير رصد الأمراض الحيوانية\n\n")
	fmt.Fprintf(b, "🕒 %s بتوقيت السعودية\n", f.now().In(ksaTZ).Format("2006-01-02 15:04"))
	b.WriteString(separator + "\n")
}

func writeStatuses(b *strings.Builder, statuses []SourceStatus) {
	if len(statuses) == 0 {
		return
	}
	b.WriteString("📡 المصادر:\n")
	for _, st := range statuses {
		if st.OK {
			fmt.Fprintf(b, "- %s: ✅ %d عنصر\n", st.Name, st.Items)
		} else {
			fmt.Fprintf(b, "- %s: ⚠️ %s\n", st.Name, st.Err)
		}
	}
}

func formatEvent(ev monitor.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — %s", severityEmoji(ev.Severity), ev.Disease, ev.Country)
	if ev.Region != lexicon.RegionUnspecified {
		fmt.Fprintf(&b, " (%s)", ev.Region)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "   📊 الدرجة: %d (%s) | المصدر: %s\n", ev.Score, severityArabic(ev.Severity), ev.SourceLabel)
	if ev.Title != "" {
		fmt.Fprintf(&b, "   %s\n", ev.Title)
	}
	if ev.Link != "" {
		fmt.Fprintf(&b, "   %s\n", ev.Link)
	}
	return b.String()
}

// rankByScore returns a copy sorted by descending score; title breaks ties
// so output order is stable across runs.
func rankByScore(events []monitor.Event) []monitor.Event {
	ranked := make([]monitor.Event, len(events))
	copy(ranked, events)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Title < ranked[j].Title
	})
	return ranked
}

func severityArabic(s score.Severity) string {
	switch s {
	case score.SeverityHigh:
		return "عالية"
	case score.SeverityMedium:
		return "متوسطة"
	default:
		return "منخفضة"
	}
}

func severityEmoji(s score.Severity) string {
	switch s {
	case score.SeverityHigh:
		return "🔴"
	case score.SeverityMedium:
		return "🟠"
	default:
		return "🟡"
	}
}
