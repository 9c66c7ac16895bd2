package prefs

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultSaveTimeout bounds a single Save against the backend.
const DefaultSaveTimeout = 5 * time.Second

var _ SnapshotStore = &PlayerPrefs{}

// PlayerPrefs is an in-memory Store that tracks pending changes and
// writes them to an optional Backend on Save.
type PlayerPrefs struct {
	lock        sync.RWMutex
	entries     map[string]Value
	dirty       map[string]struct{}
	deleted     map[string]struct{}
	backend     Backend
	saveTimeout time.Duration
}

// NewInMemoryStore creates a store with no backend. Save only clears pending changes.
func NewInMemoryStore() *PlayerPrefs {
	return &PlayerPrefs{
		entries:     make(map[string]Value),
		dirty:       make(map[string]struct{}),
		deleted:     make(map[string]struct{}),
		saveTimeout: DefaultSaveTimeout,
	}
}

// Open loads every entry from backend into a new store.
// The caller is responsible for calling Close on the store.
func Open(ctx context.Context, backend Backend) (*PlayerPrefs, error) {
	entries, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prefs: %w", err)
	}
	p := NewInMemoryStore()
	p.backend = backend
	for k, v := range entries {
		p.entries[k] = v
	}
	return p, nil
}

func (p *PlayerPrefs) get(key string) (Value, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	v, ok := p.entries[key]
	return v, ok
}

func (p *PlayerPrefs) set(key string, value Value) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.entries[key] = value
	p.dirty[key] = struct{}{}
	delete(p.deleted, key)
}

func (p *PlayerPrefs) HasKey(key string) bool {
	_, ok := p.get(key)
	return ok
}

// Lookup returns the raw entry for key.
func (p *PlayerPrefs) Lookup(key string) (Value, error) {
	v, ok := p.get(key)
	if !ok {
		return Value{}, &ErrNotFound{Key: key}
	}
	return v, nil
}

// GetInt returns the int stored at key, or defaultValue if the key is
// missing or holds another kind.
func (p *PlayerPrefs) GetInt(key string, defaultValue int) int {
	v, ok := p.get(key)
	if !ok || v.Kind != KindInt {
		return defaultValue
	}
	return v.Int
}

func (p *PlayerPrefs) SetInt(key string, value int) {
	p.set(key, IntValue(value))
}

func (p *PlayerPrefs) GetFloat(key string, defaultValue float64) float64 {
	v, ok := p.get(key)
	if !ok || v.Kind != KindFloat {
		return defaultValue
	}
	return v.Float
}

func (p *PlayerPrefs) SetFloat(key string, value float64) {
	p.set(key, FloatValue(value))
}

func (p *PlayerPrefs) GetString(key string, defaultValue string) string {
	v, ok := p.get(key)
	if !ok || v.Kind != KindString {
		return defaultValue
	}
	return v.String
}

func (p *PlayerPrefs) SetString(key string, value string) {
	p.set(key, StringValue(value))
}

func (p *PlayerPrefs) DeleteKey(key string) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if _, ok := p.entries[key]; !ok {
		return
	}
	delete(p.entries, key)
	delete(p.dirty, key)
	p.deleted[key] = struct{}{}
}

// Pending returns the number of keys changed since the last successful Save.
func (p *PlayerPrefs) Pending() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.dirty) + len(p.deleted)
}

// Save writes pending changes to the backend. On failure the changes stay
// pending and are retried by the next Save.
func (p *PlayerPrefs) Save() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.dirty) == 0 && len(p.deleted) == 0 {
		return nil
	}

	if p.backend != nil {
		upserts := make(map[string]Value, len(p.dirty))
		for k := range p.dirty {
			upserts[k] = p.entries[k]
		}
		deletes := make([]string, 0, len(p.deleted))
		for k := range p.deleted {
			deletes = append(deletes, k)
		}

		ctx, cancel := context.WithTimeout(context.Background(), p.saveTimeout)
		defer cancel()
		if err := p.backend.Save(ctx, upserts, deletes); err != nil {
			return fmt.Errorf("failed to save prefs: %w", err)
		}
	}

	p.dirty = make(map[string]struct{})
	p.deleted = make(map[string]struct{})
	return nil
}

// Entries returns a copy of every entry.
func (p *PlayerPrefs) Entries() map[string]Value {
	p.lock.RLock()
	defer p.lock.RUnlock()
	out := make(map[string]Value, len(p.entries))
	for k, v := range p.entries {
		out[k] = v
	}
	return out
}

// Restore replaces the whole store with entries. Changes are pending until Save.
func (p *PlayerPrefs) Restore(entries map[string]Value) {
	p.lock.Lock()
	defer p.lock.Unlock()
	for k := range p.entries {
		if _, ok := entries[k]; !ok {
			delete(p.dirty, k)
			p.deleted[k] = struct{}{}
		}
	}
	p.entries = make(map[string]Value, len(entries))
	for k, v := range entries {
		p.entries[k] = v
		p.dirty[k] = struct{}{}
		delete(p.deleted, k)
	}
}

// Close saves pending changes and closes the backend.
func (p *PlayerPrefs) Close(ctx context.Context) error {
	if err := p.Save(); err != nil {
		return err
	}
	if p.backend == nil {
		return nil
	}
	return p.backend.Close(ctx)
}
