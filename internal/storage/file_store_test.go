package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreLoadAbsentFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	if err := fs.Load(); err != nil {
		t.Fatalf("absent state file should not error: %v", err)
	}
	if fs.Len() != 0 {
		t.Errorf("expected empty store, got %d items", fs.Len())
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileStore(path)
	if err := fs.Load(); err != nil {
		t.Fatalf("corrupt state must degrade to empty, not error: %v", err)
	}
	if fs.Len() != 0 {
		t.Errorf("expected empty store after corrupt load, got %d", fs.Len())
	}
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fs := NewFileStore(path)
	fs.Record("abc123", "GDELT")
	fs.Record("def456", "EMPRES-i")
	if err := fs.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded := NewFileStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 items after reload, got %d", reloaded.Len())
	}
	if reloaded.IsNew("abc123") {
		t.Errorf("abc123 should be known after reload")
	}
	if !reloaded.IsNew("zzz999") {
		t.Errorf("unknown fingerprint should be new")
	}
}

func TestFileStoreRecordIsIdempotent(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	fs.Record("abc123", "GDELT")
	first := fs.items["abc123"].FirstSeen

	time.Sleep(5 * time.Millisecond)
	fs.Record("abc123", "RSS")

	rec := fs.items["abc123"]
	if !rec.FirstSeen.Equal(first) {
		t.Errorf("re-recording must not overwrite first_seen")
	}
	if rec.Source != "GDELT" {
		t.Errorf("re-recording must not overwrite source, got %q", rec.Source)
	}
	if fs.Len() != 1 {
		t.Errorf("expected 1 item, got %d", fs.Len())
	}
}

func TestFileStoreSaveIsAtomicOverExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fs := NewFileStore(path)
	fs.Record("abc123", "RSS")
	if err := fs.Save(); err != nil {
		t.Fatal(err)
	}
	fs.Record("def456", "RSS")
	if err := fs.Save(); err != nil {
		t.Fatalf("second save over existing file failed: %v", err)
	}

	reloaded := NewFileStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("expected 2 items, got %d", reloaded.Len())
	}
}
