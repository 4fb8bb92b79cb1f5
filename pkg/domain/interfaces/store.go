package interfaces

import "context"

// Store is a generic durable key/value store. It persists the session
// snapshot, the version ring, URL history, recently-used Notion databases,
// the project list, and credential-present flags. Raw credential values
// are never stored here.
type Store interface {
	// Put marshals and stores a value under the key
	Put(ctx context.Context, key string, value any) error

	// Get unmarshals the value stored under the key into out.
	// Returns an error wrapping the backend's ErrNotFound when absent.
	Get(ctx context.Context, key string, out any) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases backend resources
	Close() error
}
