// Package kv holds the persistent key-value media the table store writes to.
//
// A Medium is deliberately dumb: string keys, string values, whole-value
// replacement. Anything row-shaped lives one layer up in tablestore.
package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks any failure of the underlying medium: network,
	// disk, closed handle, quota.
	ErrUnavailable = errors.New("kv: storage unavailable")

	// ErrQuotaExceeded is returned by size-limited media when a write would
	// exceed the configured budget. It always also matches ErrUnavailable.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Medium is a flat namespace of string values.
type Medium interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
