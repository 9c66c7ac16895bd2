package prefs

import "context"

// Backend makes a PlayerPrefs cache durable.
type Backend interface {
	// Load returns every persisted entry.
	Load(ctx context.Context) (map[string]Value, error)
	// Save upserts the given entries and removes the deleted keys in one transaction.
	Save(ctx context.Context, upserts map[string]Value, deletes []string) error
	Close(ctx context.Context) error
}
