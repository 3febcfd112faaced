// Package persist stores the application snapshot as a single JSON value
// under a string key in an embedded key-value store.
package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

// SnapshotKey is the single entry the whole application state lives under.
const SnapshotKey = "financeData"

// KV is the minimal key-value contract the adapter needs. Values are
// strings; a missing key is reported via the bool, not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Adapter loads and saves snapshots through a KV store.
type Adapter struct {
	kv KV
}

func New(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load reads the persisted snapshot. It fails soft: a missing key,
// a read error or malformed JSON all yield (zero, false) so the caller
// starts from the built-in defaults.
func (a *Adapter) Load() (finance.Snapshot, bool) {
	raw, found, err := a.kv.Get(SnapshotKey)
	if err != nil {
		slog.Warn("failed to read snapshot, starting fresh", "error", err)
		return finance.Snapshot{}, false
	}

	if !found {
		return finance.Snapshot{}, false
	}

	var snap finance.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		slog.Warn("persisted snapshot is malformed, starting fresh", "error", err)
		return finance.Snapshot{}, false
	}

	return snap, true
}

// Save serializes and writes the snapshot.
func (a *Adapter) Save(snap finance.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := a.kv.Set(SnapshotKey, string(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
