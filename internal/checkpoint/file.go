package checkpoint

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FileStore persists the checkpoint map as a single JSON object keyed by
// the encoded key strings. Writes go through a temp file and rename so a
// crash mid-save cannot corrupt the previous checkpoint.
type FileStore struct {
	path     string
	bareKind Kind
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string, bareKind Kind) *FileStore {
	return &FileStore{path: path, bareKind: bareKind}
}

// Load reads the backing file. Missing and corrupt files both return an
// empty map: the stage simply refetches everything.
func (s *FileStore) Load(_ context.Context) (map[Key]Record, error) {
	records := make(map[Key]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("checkpoint file unreadable, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return records, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		zap.L().Warn("checkpoint file corrupt, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return records, nil
	}

	for k, v := range raw {
		records[DecodeKey(k, s.bareKind)] = Record(v)
	}
	return records, nil
}

// Save merges the given records over the persisted map and writes the
// result atomically.
func (s *FileStore) Save(ctx context.Context, records map[Key]Record) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}

	raw := make(map[string]json.RawMessage, len(existing)+len(records))
	for k, v := range existing {
		raw[k.String()] = json.RawMessage(v)
	}
	for k, v := range records {
		raw[k.String()] = json.RawMessage(v)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return eris.Wrapf(err, "checkpoint: marshal %s", s.path)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrapf(err, "checkpoint: create dir for %s", s.path)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "checkpoint: write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrapf(err, "checkpoint: rename %s", s.path)
	}
	return nil
}

// Close is a no-op for file-backed stores.
func (s *FileStore) Close() error { return nil }
