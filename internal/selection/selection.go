// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection holds the ordered, in-memory set of documents chosen
// for conversion. The store is the single source of truth for what gets
// converted; it is never persisted and dies with the process.
package selection

import (
	"sync"

	"github.com/pdiddy/docmerge/pkg/types"
)

// Store is an ordered, mutable sequence of accepted documents.
// Insertion order is preserved and duplicates by name are permitted.
// All methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	docs []types.Document
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append concatenates docs to the end of the store, preserving prior order.
func (s *Store) Append(docs ...types.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
}

// RemoveAt removes the document at index, shifting subsequent documents
// down by one. An out-of-range index is a no-op; the return value
// reports whether a document was removed.
func (s *Store) RemoveAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.docs) {
		return false
	}
	s.docs = append(s.docs[:index], s.docs[index+1:]...)
	return true
}

// Remove removes the document with the given ID. An unknown ID is a
// no-op; the return value reports whether a document was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if doc.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true
		}
	}
	return false
}

// Documents returns a snapshot copy of the store's current contents.
// Later mutations do not affect the returned slice.
func (s *Store) Documents() []types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of documents currently selected.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
}
