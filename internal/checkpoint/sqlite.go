package checkpoint

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists checkpoint records in a shared sqlite database,
// one logical namespace per fetch stage. Save upserts record by record,
// so concurrent stages writing to disjoint namespaces never clobber each
// other and a re-run with identical data is a no-op.
type SQLiteStore struct {
	db       *sql.DB
	stage    string
	bareKind Kind
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS checkpoint (
	stage  TEXT NOT NULL,
	k      TEXT NOT NULL,
	record TEXT NOT NULL,
	PRIMARY KEY (stage, k)
);
`

// NewSQLiteStore opens (creating if needed) the checkpoint database at path
// and scopes the store to the given stage namespace.
func NewSQLiteStore(path, stage string, bareKind Kind) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrapf(err, "checkpoint: create dir for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "checkpoint: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "checkpoint: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "checkpoint: migrate")
	}

	return &SQLiteStore{db: db, stage: stage, bareKind: bareKind}, nil
}

// Load returns every record in the store's namespace.
func (s *SQLiteStore) Load(ctx context.Context) (map[Key]Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT k, record FROM checkpoint WHERE stage = ?", s.stage)
	if err != nil {
		return nil, eris.Wrapf(err, "checkpoint: load stage %s", s.stage)
	}
	defer rows.Close() //nolint:errcheck

	records := make(map[Key]Record)
	for rows.Next() {
		var k, rec string
		if err := rows.Scan(&k, &rec); err != nil {
			return nil, eris.Wrap(err, "checkpoint: scan row")
		}
		records[DecodeKey(k, s.bareKind)] = Record(rec)
	}
	return records, rows.Err()
}

// Save upserts all records in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, records map[Key]Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "checkpoint: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO checkpoint (stage, k, record) VALUES (?, ?, ?)
		ON CONFLICT (stage, k) DO UPDATE SET record = excluded.record`)
	if err != nil {
		return eris.Wrap(err, "checkpoint: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	for k, rec := range records {
		if _, err := stmt.ExecContext(ctx, s.stage, k.String(), string(rec)); err != nil {
			return eris.Wrapf(err, "checkpoint: upsert %s", k.String())
		}
	}

	return eris.Wrap(tx.Commit(), "checkpoint: commit")
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
