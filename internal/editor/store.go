// Package editor holds the in-memory document of one editing session and
// applies every change through a single-writer draft/commit cycle.
package editor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"resume-builder/internal/model"
)

// ErrStale is returned by ApplyAt when the document moved past the
// version the caller based its change on.
var ErrStale = errors.New("document changed since the expected version")

// Mutator edits a draft in place. It is invoked exactly once per commit.
type Mutator func(draft *model.ResumeData)

// Edit is a Mutator that may decline to commit. Returning changed=false or
// an error discards the draft: no version is published and no listener
// runs.
type Edit func(draft *model.ResumeData) (changed bool, err error)

// Snapshot is an immutable published state.
type Snapshot struct {
	Version uint64
	Data    *model.ResumeData
}

// Listener observes commits in commit order.
type Listener func(s Snapshot)

// Precommit sees the next state before it is published. A non-nil error
// discards the draft and is returned to the writer.
type Precommit func(next Snapshot) error

// Option configures a Store.
type Option func(*Store)

// WithPrecommit installs fn to run under the writer lock ahead of every
// publish, e.g. to save the next state first.
func WithPrecommit(fn Precommit) Option {
	return func(s *Store) { s.precommit = fn }
}

type state struct {
	version uint64
	data    *model.ResumeData
}

// Store is the state container for one open document. Writers are
// serialized; readers always see a complete committed state.
type Store struct {
	mu        sync.Mutex
	cur       atomic.Pointer[state]
	listeners map[int]Listener
	order     []int
	nextID    int
	precommit Precommit
}

// New returns a store seeded with a private copy of data at version 0.
func New(data *model.ResumeData, opts ...Option) *Store {
	return NewAt(data, 0, opts...)
}

// NewAt seeds the store at a given version, e.g. when resuming a session.
func NewAt(data *model.ResumeData, version uint64, opts ...Option) *Store {
	if data == nil {
		data = model.Default()
	}
	s := &Store{listeners: map[int]Listener{}}
	for _, opt := range opts {
		opt(s)
	}
	s.cur.Store(&state{version: version, data: data.Clone()})
	return s
}

// Version returns the current committed version.
func (s *Store) Version() uint64 {
	return s.cur.Load().version
}

// Snapshot returns a deep copy of the current committed state.
func (s *Store) Snapshot() Snapshot {
	st := s.cur.Load()
	return Snapshot{Version: st.version, Data: st.data.Clone()}
}

// Apply runs mutator against a draft copy of the current document and
// publishes the result as the next version in one step. If mutator
// panics, nothing is published and the panic propagates. A precommit
// failure leaves the current state in place; use Edit to observe it.
func (s *Store) Apply(mutator Mutator) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _, _ := s.commit(always(mutator))
	return snap
}

// Edit runs fn like Apply but only publishes when fn reports a change.
// When nothing is published the returned snapshot is the current state.
func (s *Store) Edit(fn Edit) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(fn)
}

// ApplyAt is Apply with a precondition: the change is rejected with
// ErrStale, and mutator never runs, if the current version differs from
// expected.
func (s *Store) ApplyAt(expected uint64, mutator Mutator) (Snapshot, error) {
	snap, _, err := s.EditAt(expected, always(mutator))
	return snap, err
}

// EditAt is Edit guarded by the same version precondition as ApplyAt.
func (s *Store) EditAt(expected uint64, fn Edit) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.cur.Load().version; v != expected {
		return Snapshot{}, false, fmt.Errorf("%w: expected %d, current %d", ErrStale, expected, v)
	}
	return s.commit(fn)
}

// Replace swaps in a whole new document, e.g. after an import.
func (s *Store) Replace(data *model.ResumeData) Snapshot {
	fresh := data.Clone()
	return s.Apply(func(draft *model.ResumeData) { *draft = *fresh })
}

func always(m Mutator) Edit {
	return func(draft *model.ResumeData) (bool, error) {
		m(draft)
		return true, nil
	}
}

func (s *Store) commit(fn Edit) (Snapshot, bool, error) {
	prev := s.cur.Load()
	draft := prev.data.Clone()
	changed, err := fn(draft)
	if err != nil || !changed {
		return Snapshot{Version: prev.version, Data: prev.data.Clone()}, false, err
	}
	draft.Normalize()

	// fn may have kept pointers into draft; publish a copy it cannot reach
	next := &state{version: prev.version + 1, data: draft.Clone()}
	if s.precommit != nil {
		if err := s.precommit(Snapshot{Version: next.version, Data: next.data.Clone()}); err != nil {
			return Snapshot{Version: prev.version, Data: prev.data.Clone()}, false, err
		}
	}
	s.cur.Store(next)

	for _, id := range s.order {
		s.listeners[id](Snapshot{Version: next.version, Data: next.data.Clone()})
	}
	return Snapshot{Version: next.version, Data: next.data.Clone()}, true, nil
}

// Subscribe registers l for every subsequent commit. Listeners run while
// the writer lock is held and must not call Apply.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
