// Package sqlitestore is the durable token store used by the client. A single
// kv table in a SQLite file keeps the session bundle across restarts.
package sqlitestore

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/careplus/go-frontdesk-client/tokenstore"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

var _ tokenstore.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open creates (or reopens) the store at path. Parent directories are
// created as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.Open] mkdir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.Open] sql.Open")
	}

	// A single connection avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[sqlitestore.Open] create schema")
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", tokenstore.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[sqlitestore.Get] query")
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return errors.Wrap(err, "[sqlitestore.Set] upsert")
}

func (s *Store) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return errors.Wrap(err, "[sqlitestore.Remove] delete")
}

func (s *Store) Close() error {
	return s.db.Close()
}
