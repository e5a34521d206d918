// Package kvstore defines the string key-value slot capability that the cart
// persists through, along with in-process implementations.
package kvstore

import (
	"context"
	"fmt"
	"strings"
)

// Store is a durable string key-value capability.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendNull     Backend = "null"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMemory, BackendRedis, BackendPostgres, BackendNull:
		return b, nil
	default:
		return "", fmt.Errorf("unknown kv backend %q", s)
	}
}
