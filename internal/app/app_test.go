package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/damiri/vetwatch/internal/config"
	"github.com/damiri/vetwatch/internal/feeds"
)

type fakeSource struct {
	name  string
	items []feeds.RawItem
	err   error
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(ctx context.Context) ([]feeds.RawItem, error) {
	return s.items, s.err
}

type fakeStore struct {
	seen      map[string]string
	loadCalls int
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]string)}
}

func (s *fakeStore) Load() error { s.loadCalls++; return nil }
func (s *fakeStore) Save() error { s.saveCalls++; return nil }
func (s *fakeStore) IsNew(fp string) bool {
	_, ok := s.seen[fp]
	return !ok
}
func (s *fakeStore) Record(fp, source string) {
	if _, ok := s.seen[fp]; !ok {
		s.seen[fp] = source
	}
}
func (s *fakeStore) Len() int     { return len(s.seen) }
func (s *fakeStore) Close() error { return nil }

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Send(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxItems:       25,
		MaxAlerts:      5,
		AlertThreshold: 80,
		TopN:           10,
		RequestTimeout: time.Second,
	}
}

func TestAllSourcesFailedSkipsStateSave(t *testing.T) {
	store := newFakeStore()
	store.seen["preexisting"] = "EMPRES-i"
	notify := &fakeNotifier{}
	sources := []feeds.Source{
		&fakeSource{name: "EMPRES-i", err: errors.New("timeout")},
		&fakeSource{name: "GDELT", err: errors.New("status 503")},
	}

	err := execute(context.Background(), testConfig(), config.DefaultWatchlist(), sources, store, notify)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if store.saveCalls != 0 {
		t.Errorf("seen-set must not be saved when every source failed, Save called %d times", store.saveCalls)
	}
	if len(store.seen) != 1 {
		t.Errorf("seen-set changed on failed run: %d fingerprints", len(store.seen))
	}
	if len(notify.messages) != 1 {
		t.Fatalf("expected exactly one status message, got %d", len(notify.messages))
	}
	if !strings.Contains(notify.messages[0], "تعذّر جلب البيانات") {
		t.Errorf("expected the no-fetch message, got %q", notify.messages[0])
	}
}

func TestSuccessfulRunSavesState(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	sources := []feeds.Source{
		&fakeSource{name: "EMPRES-i", err: errors.New("timeout")},
		&fakeSource{name: "RSS", items: []feeds.RawItem{{
			SourceID:    "RSS",
			Title:       "Rift valley fever outbreak confirmed in Saudi Arabia",
			Description: "Cases reported among sheep in Jazan.",
			URL:         "https://news.example/rvf-jazan",
		}}},
	}

	err := execute(context.Background(), testConfig(), config.DefaultWatchlist(), sources, store, notify)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if store.saveCalls != 1 {
		t.Errorf("expected one Save, got %d", store.saveCalls)
	}
	if len(store.seen) != 1 {
		t.Errorf("expected one recorded fingerprint, got %d", len(store.seen))
	}
	// Primary country plus a 40-weight disease scores 85, above the alert
	// threshold, so a digest and one alert go out.
	if len(notify.messages) != 2 {
		t.Fatalf("expected digest plus one alert, got %d messages", len(notify.messages))
	}
	if !strings.Contains(notify.messages[0], "إشارات جديدة") {
		t.Errorf("expected digest message first, got %q", notify.messages[0])
	}
}
