// Package cache provides durable stores for the session cache entry: the
// opaque serialization of the last known user record, written by the session
// machine and read once at startup to seed rehydration.
//
// The entry is a hint, never a source of truth. Stores hold exactly one
// value under the fixed key "user"; Load after Clear (or before any Save)
// returns [ErrNoEntry].
package cache

import (
	"context"
	"errors"
)

// Key is the single key every store writes the session entry under.
const Key = "user"

// ErrNoEntry is returned by Load when no session entry is cached.
var ErrNoEntry = errors.New("no cached session entry")

// Store persists the serialized session cache entry.
type Store interface {
	// Load returns the cached entry, or ErrNoEntry when absent.
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the cached entry.
	Save(ctx context.Context, entry []byte) error
	// Clear removes the cached entry. Clearing an absent entry is not an
	// error.
	Clear(ctx context.Context) error
}
