package statestore

import "errors"

var (
	// ErrKeyNotFound indicates the requested key has no stored value.
	ErrKeyNotFound = errors.New("statestore: key not found")

	// ErrPersistFailed indicates a mutation could not be written through to
	// durable storage.
	ErrPersistFailed = errors.New("statestore: failed to persist state")

	// ErrFailedToParseConnString indicates the Redis connection URL is invalid.
	ErrFailedToParseConnString = errors.New("statestore: failed to parse redis connection string")

	// ErrStoreNotReady indicates the Redis backend could not be reached.
	ErrStoreNotReady = errors.New("statestore: redis not ready")
)
