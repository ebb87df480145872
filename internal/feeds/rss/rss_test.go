package rss

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `feeds:
  - https://example.org/a.xml
  - https://example.org/b.xml
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://example.org/a.xml" {
		t.Errorf("unexpected feed list: %v", urls)
	}
}

func TestLoadFeedsMissingFile(t *testing.T) {
	if _, err := LoadFeeds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing feed list")
	}
}
