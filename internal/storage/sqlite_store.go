package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"prayertrack/internal/structures"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the primary backend: a durable per-user kv table with
// zstd-compressed values. Probe doubles as the capability check: if
// the database cannot be opened the adapter runs fallback-only.
type SQLiteStore struct {
	path string
	comp Compressor
	db   *sql.DB
}

func NewSQLiteStore(conf *structures.Config, comp Compressor) *SQLiteStore {
	return &SQLiteStore{
		path: conf.Storage.PrimaryPath,
		comp: comp,
	}
}

func (s *SQLiteStore) Name() string { return "primary" }

func (s *SQLiteStore) Probe() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		db.Close()
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrUnavailable
	}

	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	data, err := s.comp.Decompress(blob)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	blob, err := s.comp.Compress([]byte(value))
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, blob,
	)
	return err
}

func (s *SQLiteStore) Delete(key string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Keys() ([]string, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return ErrUnavailable
	}
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
