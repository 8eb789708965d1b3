package localstorage

import "context"

// Repository mirrors the Web Storage API.
type Repository interface {
	// GetItem returns the value for key; ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem creates or overwrites the value for key.
	SetItem(ctx context.Context, key string, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Keys lists stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}
