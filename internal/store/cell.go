package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Item is a single typed cell persisted under a fixed key, JSON-encoded.
type Item[T any] struct {
	key string
}

func NewItem[T any](key string) Item[T] {
	return Item[T]{key: key}
}

// Load reads the cell; a missing key is an error.
func (it Item[T]) Load(kv KV) (T, error) {
	var v T
	raw, err := kv.Get([]byte(it.key))
	if err != nil {
		return v, fmt.Errorf("load %s: %w", it.key, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", it.key, err)
	}
	return v, nil
}

// MayLoad reads the cell, reporting absence instead of failing on it.
func (it Item[T]) MayLoad(kv KV) (T, bool, error) {
	var v T
	raw, err := kv.Get([]byte(it.key))
	if errors.Is(err, ErrKeyNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", it.key, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", it.key, err)
	}
	return v, true, nil
}

func (it Item[T]) Save(kv KV, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", it.key, err)
	}
	if err := kv.Set([]byte(it.key), raw); err != nil {
		return fmt.Errorf("save %s: %w", it.key, err)
	}
	return nil
}

// Map is a typed keyspace under a common prefix, JSON-encoded per entry.
type Map[V any] struct {
	prefix string
}

func NewMap[V any](prefix string) Map[V] {
	return Map[V]{prefix: prefix}
}

func (m Map[V]) cell(key string) Item[V] {
	return NewItem[V](m.prefix + "/" + key)
}

func (m Map[V]) Load(kv KV, key string) (V, error) {
	return m.cell(key).Load(kv)
}

func (m Map[V]) MayLoad(kv KV, key string) (V, bool, error) {
	return m.cell(key).MayLoad(kv)
}

func (m Map[V]) Save(kv KV, key string, v V) error {
	return m.cell(key).Save(kv, v)
}
