// Package kv is the key-value substrate every NicheScope store is built on.
//
// A Store maps string keys to string values. It has no knowledge of the
// schemas written into it, no expiry and no cross-key atomicity. Every write
// is visible to the next read in the same process; durability is a property
// of the backend (MemoryStore forgets on exit, SQLStore persists).
//
// Higher layers that rewrite a whole collection under one key go through
// Update, which uses a backend transaction when the store offers one.
package kv

import (
	"context"
	"errors"
)

// Store is the Key-Value Store Adapter contract.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// UpdateFunc receives the current value of a key (ok is false when absent)
// and returns the value to write. Returning ErrNoChange skips the write.
type UpdateFunc func(value string, ok bool) (string, error)

// Updater is implemented by stores that can run an UpdateFunc atomically.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns the sorted keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ErrNotListable is returned by Keys and Clear for stores without Lister.
var ErrNotListable = errors.New("store cannot list keys")

// ErrNoChange is returned by an UpdateFunc to leave the key untouched.
// Update itself then returns nil.
var ErrNoChange = errors.New("no change")

// Update runs a read-modify-write cycle on key. Stores implementing Updater
// do it atomically; for others it is a plain Get followed by Set.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	value, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(value, found)
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.Set(ctx, key, next)
}

// Keys returns the sorted keys of s starting with prefix.
func Keys(ctx context.Context, s Store, prefix string) ([]string, error) {
	l, ok := s.(Lister)
	if !ok {
		return nil, ErrNotListable
	}
	return l.Keys(ctx, prefix)
}

// Clear removes every key s lists and returns how many were removed.
// Through a PrefixedStore only that prefix is touched.
func Clear(ctx context.Context, s Store) (int, error) {
	keys, err := Keys(ctx, s, "")
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}
