package cart

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is bumped whenever the persisted layout changes, so old
// snapshots can be migrated deliberately instead of silently dropping fields.
const snapshotVersion = 1

// snapshot is the persisted cart. Items are stored as an ordered list so
// display order survives the round trip.
type snapshot struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// EncodeSnapshot serialises the line items for storage.
func EncodeSnapshot(items []Item) (string, error) {
	raw, err := json.Marshal(snapshot{Version: snapshotVersion, Items: items})
	if err != nil {
		return "", fmt.Errorf("cart: encode snapshot: %w", err)
	}
	return string(raw), nil
}

// DecodeSnapshot parses a stored snapshot. Unknown versions and garbage are
// errors; the caller discards the snapshot and starts from an empty cart.
func DecodeSnapshot(raw string) ([]Item, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("cart: decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("cart: unsupported snapshot version %d", snap.Version)
	}
	return snap.Items, nil
}
