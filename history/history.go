// Package history keeps a bounded undo/redo trail of viewports.
//
// The scheduler emits the final viewport of every completed interaction
// through its completion callback; wiring that callback to Push is all an
// application needs for undo support. The core retains no history itself.
package history

import "github.com/gogpu/mandel"

// DefaultLimit bounds the trail so a long session cannot grow memory
// without bound.
const DefaultLimit = 256

// Store is an undo/redo stack of viewports. The last pushed viewport is
// the current one.
//
// Thread safety: Store is NOT safe for concurrent use. Interaction
// callbacks and undo commands arrive on the same UI flow, which is the
// intended usage.
type Store struct {
	past   []mandel.Viewport
	future []mandel.Viewport
	limit  int
}

// New creates a store keeping at most limit entries; zero or negative
// means DefaultLimit.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit}
}

// Push records a new current viewport and clears the redo trail.
func (s *Store) Push(v mandel.Viewport) {
	s.past = append(s.past, v)
	s.future = s.future[:0]
	if len(s.past) > s.limit {
		copy(s.past, s.past[len(s.past)-s.limit:])
		s.past = s.past[:s.limit]
	}
}

// Current returns the viewport on top of the trail.
func (s *Store) Current() (mandel.Viewport, bool) {
	if len(s.past) == 0 {
		return mandel.Viewport{}, false
	}
	return s.past[len(s.past)-1], true
}

// Undo steps back one viewport and returns the new current one.
// It fails when there is nothing before the current viewport.
func (s *Store) Undo() (mandel.Viewport, bool) {
	if len(s.past) < 2 {
		return mandel.Viewport{}, false
	}
	last := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, last)
	return s.past[len(s.past)-1], true
}

// Redo reapplies the most recently undone viewport.
func (s *Store) Redo() (mandel.Viewport, bool) {
	if len(s.future) == 0 {
		return mandel.Viewport{}, false
	}
	v := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, v)
	return v, true
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool { return len(s.past) >= 2 }

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool { return len(s.future) > 0 }

// Len returns the number of recorded viewports.
func (s *Store) Len() int { return len(s.past) }
