package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a key does not exist
var ErrNotFound = goerr.New("key not found")

// Store is an in-memory key/value store for development and tests.
// Values are stored as marshaled JSON so callers observe the same
// serialization round-trip as durable backends.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Put marshals and stores a value under the key
func (s *Store) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal value", goerr.V("key", key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// Get unmarshals the value stored under the key into out
func (s *Store) Get(ctx context.Context, key string, out any) error {
	s.mu.RLock()
	raw, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return goerr.Wrap(ErrNotFound, "no value for key", goerr.V("key", key))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to unmarshal value", goerr.V("key", key))
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}
