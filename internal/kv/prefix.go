package kv

import (
	"context"
	"strings"
)

// PrefixedStore adds a fixed prefix to every key before it reaches the
// underlying store, so "accounts" is stored as "<prefix>accounts".
type PrefixedStore struct {
	next   Store
	prefix string
}

// Prefixed wraps s. An empty prefix returns s unchanged.
func Prefixed(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &PrefixedStore{next: s, prefix: prefix}
}

func (p *PrefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *PrefixedStore) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *PrefixedStore) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}

func (p *PrefixedStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return Update(ctx, p.next, p.prefix+key, fn)
}

// Keys lists the keys of the underlying store under the prefix, with the
// prefix stripped.
func (p *PrefixedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := Keys(ctx, p.next, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, p.prefix)
	}
	return keys, nil
}
