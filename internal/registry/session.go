package registry

import (
	"sync"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Session is the edit state of one editor: Idle, or Editing exactly one
// entity. It also holds the validation error currently shown next to the
// editor's forms.
type Session struct {
	mu        sync.Mutex
	editingID string
	editing   bool
	lastErr   error
}

// Begin enters Editing(id). Any edit already in progress is abandoned and the
// pending validation error is cleared.
func (s *Session) Begin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = id
	s.editing = true
	s.lastErr = nil
}

// Cancel returns to Idle, discarding the edit and clearing the error.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Editing reports the ID being edited, if any.
func (s *Session) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editing
}

// Err returns the last validation error recorded by the editor, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// commit runs apply against the entity being edited. On success the session
// returns to Idle; on failure it stays in Editing and records the error.
func (s *Session) commit(apply func(id string) error) error {
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		return types.ErrNotEditing
	}
	id := s.editingID
	s.mu.Unlock()

	err := apply(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	if s.editing && s.editingID == id {
		s.reset()
	}
	return nil
}

// record stores the outcome of a create: an error is kept for display, a
// success clears it.
func (s *Session) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// forget leaves Editing if id is the entity being edited.
func (s *Session) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing && s.editingID == id {
		s.reset()
	}
}

func (s *Session) reset() {
	s.editingID = ""
	s.editing = false
	s.lastErr = nil
}
