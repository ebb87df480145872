package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/damiri/vetwatch/internal/logger"
)

// FileStore keeps the seen-set in a JSON file. It is the default backend:
// one small file next to the binary, readable by hand when debugging why
// something was or wasn't reported.
type FileStore struct {
	filePath string
	items    map[string]SeenRecord
	mu       sync.RWMutex
}

// NewFileStore creates a file-backed seen store. Nothing is read until Load.
func NewFileStore(filePath string) *FileStore {
	return &FileStore{
		filePath: filePath,
		items:    make(map[string]SeenRecord),
	}
}

// Load reads the state file. An absent, empty or unparseable file leaves the
// store empty and returns nil: a lost seen-set means re-notification at
// worst, which beats crashing the run.
func (fs *FileStore) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		logger.Warn("failed to read state file, starting empty", "path", fs.filePath, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var items map[string]SeenRecord
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("state file is corrupted, starting empty", "path", fs.filePath, "error", err)
		fs.items = make(map[string]SeenRecord)
		return nil
	}

	fs.items = items
	return nil
}

// Save writes the state atomically: marshal to a temp file in the same
// directory, then rename over the old state so an interrupted run never
// leaves a half-written file behind.
func (fs *FileStore) Save() error {
	fs.mu.RLock()
	data, err := json.MarshalIndent(fs.items, "", "  ")
	fs.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal state: %v", err)
	}

	dir := filepath.Dir(fs.filePath)
	tmp, err := os.CreateTemp(dir, ".seen-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %v", err)
	}

	if err := os.Rename(tmpName, fs.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %v", err)
	}
	return nil
}

// IsNew reports whether the fingerprint has not been recorded yet.
func (fs *FileStore) IsNew(fingerprint string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, exists := fs.items[fingerprint]
	return !exists
}

// Record remembers a fingerprint. Re-recording keeps the original
// first-seen timestamp.
func (fs *FileStore) Record(fingerprint, source string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.items[fingerprint]; exists {
		return
	}
	fs.items[fingerprint] = SeenRecord{
		FirstSeen: time.Now(),
		Source:    source,
	}
}

// Len returns the number of recorded fingerprints.
func (fs *FileStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.items)
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error { return nil }
