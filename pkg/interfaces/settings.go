package interfaces

import "context"

// SettingsStore is the key-value configuration surface the sync module reads
// its runtime settings from. Values are stored as strings; structured
// settings are persisted as JSON-encoded payloads under well-known keys.
//
// Get returns def when the key has never been written. Implementations must
// treat Get as read-only and side-effect free so the module can snapshot
// configuration once per event.
type SettingsStore interface {
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
}
