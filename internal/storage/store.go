// Package storage persists saved recipes and meal plans as JSON files in
// the data directory, one file per collection.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("item not found")
	// ErrCapacityReached is returned when saving a new item would exceed
	// the collection's capacity.
	ErrCapacityReached = errors.New("storage capacity reached")
	// ErrBadImport is returned when import data is not a JSON array of
	// items. The collection is left untouched.
	ErrBadImport = errors.New("import data is not a valid collection")
)

// Item is anything the store can persist.
type Item interface {
	ItemID() int64
	SetItemID(int64)
	ItemCreatedAt() time.Time
	SetItemCreatedAt(time.Time)
}

// ImportMode controls how imported items combine with existing ones.
type ImportMode string

const (
	// ImportReplace discards the existing collection.
	ImportReplace ImportMode = "replace"
	// ImportMerge upserts imported items by id.
	ImportMerge ImportMode = "merge"
)

// Info describes how full a collection is.
type Info struct {
	Count       int     `json:"count"`
	Capacity    int     `json:"capacity"`
	PercentUsed float64 `json:"percentUsed"`
	FileSize    int64   `json:"fileSize"`
}

// store is a bounded collection of items persisted to one JSON file. All
// operations are safe for concurrent use; every mutation rewrites the file.
type store[T Item] struct {
	path     string
	capacity int

	mu    sync.Mutex
	items []T
}

func newStore[T Item](path string, capacity int) (*store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &store[T]{path: path, capacity: capacity}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// flush rewrites the collection file. Callers hold the mutex.
func (s *store[T]) flush() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *store[T]) indexOf(id int64) int {
	for i, item := range s.items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// cloneItem deep-copies an item through a JSON round-trip. The collection
// owns copies, never the caller's pointers: mutating an item after Save or
// after reading it back must not touch stored state.
func cloneItem[T Item](item T) (T, error) {
	var out T
	data, err := json.Marshal(item)
	if err != nil {
		return out, fmt.Errorf("failed to copy item: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to copy item: %w", err)
	}
	return out, nil
}

// snapshot copies the item slice so a failed flush can roll back. Callers
// hold the mutex.
func (s *store[T]) snapshot() []T {
	return append([]T(nil), s.items...)
}

// All returns a deep copy of the collection in insertion order.
func (s *store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		c, err := cloneItem(item)
		if err != nil {
			c = item
		}
		out = append(out, c)
	}
	return out
}

// Get returns a copy of the item with the given id.
func (s *store[T]) Get(id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return cloneItem(s.items[i])
}

// Save upserts one item by id. New items get an id and createdAt when
// missing; updates keep the original createdAt unless the caller set one.
// The collection stores a copy, so later mutations of the caller's item do
// not leak in. Saving a new item into a full collection fails without
// mutating anything, and a failed write rolls the collection back.
func (s *store[T]) Save(item T) error {
	// Assign the id on the caller's item so they can find it again.
	if item.ItemID() == 0 {
		item.SetItemID(shared.NextID())
	}
	c, err := cloneItem(item)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()
	if err := s.put(c); err != nil {
		return err
	}
	if err := s.flush(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// SaveAll upserts several items in one write. Items that would exceed
// capacity are skipped, matching merge-import semantics.
func (s *store[T]) SaveAll(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()
	for _, item := range items {
		if item.ItemID() == 0 {
			item.SetItemID(shared.NextID())
		}
		c, err := cloneItem(item)
		if err != nil {
			s.items = prev
			return err
		}
		if err := s.put(c); err != nil && !errors.Is(err, ErrCapacityReached) {
			s.items = prev
			return err
		}
	}
	if err := s.flush(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// put upserts without flushing. Callers hold the mutex.
func (s *store[T]) put(item T) error {
	if item.ItemID() == 0 {
		item.SetItemID(shared.NextID())
	}

	i := s.indexOf(item.ItemID())
	if i >= 0 {
		if item.ItemCreatedAt().IsZero() {
			item.SetItemCreatedAt(s.items[i].ItemCreatedAt())
		}
		s.items[i] = item
		return nil
	}

	if len(s.items) >= s.capacity {
		return fmt.Errorf("%w (%d items)", ErrCapacityReached, s.capacity)
	}
	if item.ItemCreatedAt().IsZero() {
		item.SetItemCreatedAt(time.Now())
	}
	s.items = append(s.items, item)
	return nil
}

// Delete removes the item with the given id.
func (s *store[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.flush()
}

// Len returns the number of stored items.
func (s *store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes every item.
func (s *store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.flush()
}

// Export renders the collection as indented JSON for backup or sharing.
func (s *store[T]) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.MarshalIndent(s.items, "", "  ")
}

// Import loads a previously exported collection. Invalid data leaves the
// collection untouched. Merging upserts by id and skips appends past the
// capacity ceiling; a failed write rolls the collection back.
func (s *store[T]) Import(data []byte, mode ImportMode) error {
	var imported []T
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("%w: %v", ErrBadImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot()
	if mode == ImportReplace {
		if len(imported) > s.capacity {
			imported = imported[:s.capacity]
		}
		s.items = imported
	} else {
		for _, item := range imported {
			if i := s.indexOf(item.ItemID()); i >= 0 {
				s.items[i] = item
			} else if len(s.items) < s.capacity {
				s.items = append(s.items, item)
			}
		}
	}
	if err := s.flush(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// Info reports collection usage.
func (s *store[T]) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	var size int64
	if fi, err := os.Stat(s.path); err == nil {
		size = fi.Size()
	}
	return Info{
		Count:       len(s.items),
		Capacity:    s.capacity,
		PercentUsed: float64(len(s.items)) / float64(s.capacity) * 100,
		FileSize:    size,
	}
}
