package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a key does not exist
var ErrNotFound = goerr.New("key not found")

// keyPattern restricts keys to names that are safe as file names
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Store is a durable key/value store backed by one JSON file per key
// under a state directory. Writes go through a temp file and rename so
// a crash mid-write never corrupts an existing value.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates the state directory if needed and returns a store over it
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, goerr.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create state directory", goerr.V("dir", dir))
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", goerr.New("invalid store key", goerr.V("key", key))
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Put marshals and stores a value under the key
func (s *Store) Put(ctx context.Context, key string, value any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal value", goerr.V("key", key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("key", key))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to write temp file", goerr.V("key", key))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to close temp file", goerr.V("key", key))
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace value file", goerr.V("key", key))
	}
	return nil
}

// Get unmarshals the value stored under the key into out
func (s *Store) Get(ctx context.Context, key string, out any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	raw, err := os.ReadFile(path) // #nosec G304 - path is derived from a validated key
	s.mu.Unlock()

	if err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrNotFound, "no value for key", goerr.V("key", key))
		}
		return goerr.Wrap(err, "failed to read value file", goerr.V("key", key))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to unmarshal value", goerr.V("key", key))
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to delete value file", goerr.V("key", key))
	}
	return nil
}

// Close is a no-op; files are flushed on every Put
func (s *Store) Close() error {
	return nil
}
