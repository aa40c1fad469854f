// Package autosave persists the current form as a local snapshot file,
// the payload shape plus a meta.savedAt timestamp. Reading it back uses
// the same defaulting rules as restoring a shared payload, so a
// corrupt or stale autosave degrades to an empty form.
package autosave

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yeonsu-kang/dutchpay/internal/domain"
)

// record is the on-disk shape: the assembled payload with a meta
// envelope carrying the save time.
type record struct {
	*domain.Payload
	Meta meta `json:"meta"`
}

type meta struct {
	SavedAt string `json:"savedAt"`
}

// Save assembles the snapshot and writes it to path, creating parent
// directories as needed.
func Save(path string, snap *domain.Snapshot, now time.Time) error {
	rec := record{
		Payload: snap.Assemble(),
		Meta:    meta{SavedAt: now.UTC().Format(time.RFC3339)},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal autosave: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create autosave dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write autosave: %w", err)
	}
	return nil
}

// Load reads the autosave at path back into a snapshot. Returns false
// when there is nothing usable to restore: no file, unreadable file, or
// a document that is not JSON.
func Load(path string) (*domain.Snapshot, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if !json.Valid(data) {
		return nil, false
	}
	snap, _ := domain.Restore(data)
	return snap, true
}

// Clear removes the autosave file. Missing files are not an error.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
