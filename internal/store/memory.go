package store

import (
	"slices"
	"time"
)

// Map is a Backend held entirely in process memory.
type Map struct {
	data    map[string][]byte
	updated map[string]time.Time
}

func NewMap() *Map {
	return &Map{
		data:    make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

func (m *Map) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Map) Set(key string, value []byte) error {
	m.data[key] = slices.Clone(value)
	m.updated[key] = time.Now().UTC()
	return nil
}

// UpdatedAt returns when key was last written.
func (m *Map) UpdatedAt(key string) (time.Time, error) {
	ts, ok := m.updated[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return ts, nil
}

func (m *Map) Close() error { return nil }
