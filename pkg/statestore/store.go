package statestore

import (
	"context"
	"errors"
)

// Store is the durable key-value gateway the state container writes through.
type Store interface {
	// Get returns the stored value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores the value under key, persisting synchronously.
	Set(ctx context.Context, key, value string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetOr returns the stored value for key, or fallback when the key is absent.
// Other errors propagate.
func GetOr(ctx context.Context, s Store, key, fallback string) (string, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
