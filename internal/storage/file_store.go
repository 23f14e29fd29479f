package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prayertrack/internal/structures"
)

const fileExt = ".json"

// FileStore is the fallback backend: one file per key, written
// synchronously with a temp-file+rename so a reader in the same
// process always sees either the old or the new value, never a torn
// write.
type FileStore struct {
	dir string
}

func NewFileStore(conf *structures.Config) *FileStore {
	return &FileStore{dir: conf.Storage.FallbackDir}
}

func (s *FileStore) Name() string { return "fallback" }

func (s *FileStore) Probe() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	probe := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	os.Remove(probe)
	return nil
}

// fileName maps a storage key to a file name. Keys are flat
// identifiers; path separators are flattened defensively.
func (s *FileStore) fileName(key string) string {
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key+fileExt)
}

func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.fileName(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	path := s.fileName(key)
	tmpFile := path + ".tmp"

	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if _, err = file.WriteString(value); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.fileName(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Keys() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*"+fileExt))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, strings.TrimSuffix(filepath.Base(f), fileExt))
	}
	return keys, nil
}

func (s *FileStore) Clear() error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
