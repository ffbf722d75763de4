// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"sync"

	"github.com/pdiddy/docmerge/pkg/types"
)

// Event labels an auth-state change delivered to watchers.
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Watchers is an explicit auth-state subscription registry: subscribe
// at startup, unsubscribe at teardown. Notifications run synchronously
// on the notifying goroutine, in no particular subscriber order.
type Watchers struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event, *types.Session)
}

// NewWatchers returns an empty registry.
func NewWatchers() *Watchers {
	return &Watchers{subs: make(map[int]func(Event, *types.Session))}
}

// Subscribe registers fn and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (w *Watchers) Subscribe(fn func(Event, *types.Session)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next
	w.next++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Notify delivers an auth-state change to every current subscriber.
func (w *Watchers) Notify(event Event, s *types.Session) {
	w.mu.Lock()
	fns := make([]func(Event, *types.Session), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(event, s)
	}
}
