package prefs

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Snapshot is the exported form of a store.
type Snapshot struct {
	Version int              `json:"version"`
	Entries map[string]Value `json:"entries"`
}

const snapshotVersion = 1

// WriteSnapshot writes entries to w as zstd-compressed JSON.
func WriteSnapshot(w io.Writer, entries map[string]Value) error {
	compWriter, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	snapshot := &Snapshot{
		Version: snapshotVersion,
		Entries: entries,
	}
	if err := json.NewEncoder(compWriter).Encode(snapshot); err != nil {
		compWriter.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := compWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (map[string]Value, error) {
	compReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer compReader.Close()

	snapshot := &Snapshot{}
	if err := json.NewDecoder(compReader).Decode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", snapshot.Version)
	}
	if snapshot.Entries == nil {
		snapshot.Entries = make(map[string]Value)
	}
	for key, v := range snapshot.Entries {
		switch v.Kind {
		case KindInt, KindFloat, KindString:
		default:
			return nil, fmt.Errorf("invalid kind %d for key %s", v.Kind, key)
		}
	}
	return snapshot.Entries, nil
}
