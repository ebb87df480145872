// Package storage persists the cross-run seen-set of reported fingerprints.
package storage

import "time"

// SeenRecord is the metadata kept per reported fingerprint.
type SeenRecord struct {
	FirstSeen time.Time `json:"first_seen"`
	Source    string    `json:"source"`
}

// SeenStore is the seen-set contract shared by the file and SQLite backends.
// Load is called once at the start of a run and must treat an absent or
// corrupted state as empty rather than failing; Save is called once at the
// end of a successful run. Record is idempotent: re-recording a fingerprint
// never overwrites its first-seen timestamp.
type SeenStore interface {
	Load() error
	Save() error
	IsNew(fingerprint string) bool
	Record(fingerprint, source string)
	Len() int
	Close() error
}
