package checkpoint

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/livingdex/dexsync/internal/config"
)

// Record is the opaque per-entity cache payload.
type Record = json.RawMessage

// Store is a durable key→record map used to make fetch stages resumable.
// The usage contract is: Load once at stage start, mutate the map in memory,
// Save after every completed batch so a crash loses at most one batch.
type Store interface {
	// Load returns the full persisted map. A missing or corrupt backing
	// file yields an empty map, never an error.
	Load(ctx context.Context) (map[Key]Record, error)

	// Save persists the map. Existing records under other keys in the
	// same backing store are preserved (merge-on-write).
	Save(ctx context.Context, records map[Key]Record) error

	Close() error
}

// Open returns the configured Store implementation for the named stage.
// Bare (unprefixed) keys in the stage's store decode as bareKind.
func Open(cfg config.CheckpointConfig, stage string, bareKind Kind) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(filepath.Join(cfg.Dir, stage+".json"), bareKind), nil
	case "sqlite":
		return NewSQLiteStore(cfg.DatabasePath, stage, bareKind)
	default:
		return nil, eris.Errorf("checkpoint: unknown driver %q", cfg.Driver)
	}
}

// Marshal encodes a value as a checkpoint record.
func Marshal(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "checkpoint: marshal record")
	}
	return data, nil
}

// Unmarshal decodes a checkpoint record into v. Undecodable records are
// reported so the caller can drop them and refetch.
func Unmarshal(rec Record, v any) error {
	if err := json.Unmarshal(rec, v); err != nil {
		return eris.Wrap(err, "checkpoint: unmarshal record")
	}
	return nil
}
