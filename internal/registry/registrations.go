package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// OfferingSource is the read-only view of offerings that registrations need.
type OfferingSource interface {
	Lookup(id string) (types.CourseOffering, bool)
	FilterByCourseType(courseTypeName string) []types.CourseOffering
	CourseTypeNames() []string
}

// RegistrationInput carries the editable fields of a registration.
type RegistrationInput struct {
	StudentName      string
	CourseOfferingID string
	Email            string
	Phone            string // optional
}

// RegistrationStore is the editor for student registrations.
type RegistrationStore struct {
	mu        sync.RWMutex
	offerings OfferingSource
	ids       IDFunc
	clock     Clock
	log       zerolog.Logger
	col       *collection[types.StudentRegistration]
	edit      Session
}

func newRegistrationStore(kv types.KVStore, offerings OfferingSource, o options) *RegistrationStore {
	log := o.log.With().Str("collection", types.KeyStudentRegistrations).Logger()
	return &RegistrationStore{
		offerings: offerings,
		ids:       o.ids,
		clock:     o.clock,
		log:       log,
		col:       loadCollection[types.StudentRegistration](kv, types.KeyStudentRegistrations, log),
	}
}

// List returns every registration in insertion order.
func (s *RegistrationStore) List() []types.StudentRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.list()
}

// Len returns the number of registrations.
func (s *RegistrationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.col.items)
}

// Lookup returns the registration with id, if present.
func (s *RegistrationStore) Lookup(id string) (types.StudentRegistration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.find(id)
}

// Get returns the registration with id or ErrNotFound.
func (s *RegistrationStore) Get(id string) (types.StudentRegistration, error) {
	if r, ok := s.Lookup(id); ok {
		return r, nil
	}
	return types.StudentRegistration{}, fmt.Errorf("student registration %q: %w", id, types.ErrNotFound)
}

// Create registers a student against an offering. The offering's current
// name is copied into the registration and RegistrationDate is set to now.
func (s *RegistrationStore) Create(in RegistrationInput) (types.StudentRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.create(in)
	s.edit.record(err)
	return r, err
}

func (s *RegistrationStore) create(in RegistrationInput) (types.StudentRegistration, error) {
	r := types.StudentRegistration{ID: s.ids()}
	if err := s.apply(&r, in); err != nil {
		return types.StudentRegistration{}, err
	}
	r.RegistrationDate = s.clock().UTC().Truncate(time.Millisecond)

	if err := s.col.commit(s.col.appended(r)); err != nil {
		return types.StudentRegistration{}, err
	}
	s.log.Info().Str("id", r.ID).Str("offering", r.CourseOfferingName).Msg("created student registration")
	return r, nil
}

// Update replaces the editable fields of the registration with id and
// refreshes the cached offering name. RegistrationDate is left unchanged.
func (s *RegistrationStore) Update(id string, in RegistrationInput) (types.StudentRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.col.index(id)
	if i < 0 {
		return types.StudentRegistration{}, fmt.Errorf("student registration %q: %w", id, types.ErrNotFound)
	}
	r := s.col.items[i]
	if err := s.apply(&r, in); err != nil {
		return types.StudentRegistration{}, err
	}
	if err := s.col.commit(s.col.replaced(i, r)); err != nil {
		return types.StudentRegistration{}, err
	}
	s.log.Info().Str("id", id).Str("offering", r.CourseOfferingName).Msg("updated student registration")
	return r, nil
}

// Delete removes the registration once confirm approves.
func (s *RegistrationStore) Delete(id string, confirm Confirmer) (bool, error) {
	if !confirmed(confirm, "Are you sure you want to delete this student registration?") {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.col.index(id)
	if i < 0 {
		return false, nil
	}
	if err := s.col.commit(s.col.without(i)); err != nil {
		return false, err
	}
	s.edit.forget(id)
	s.log.Info().Str("id", id).Msg("deleted student registration")
	return true, nil
}

// BeginEdit enters Editing(id). Returns ErrNotFound for unknown ids.
func (s *RegistrationStore) BeginEdit(id string) error {
	if _, ok := s.Lookup(id); !ok {
		return fmt.Errorf("student registration %q: %w", id, types.ErrNotFound)
	}
	s.edit.Begin(id)
	return nil
}

// CommitEdit applies in to the registration being edited.
func (s *RegistrationStore) CommitEdit(in RegistrationInput) (types.StudentRegistration, error) {
	var out types.StudentRegistration
	err := s.edit.commit(func(id string) error {
		r, err := s.Update(id, in)
		out = r
		return err
	})
	return out, err
}

// CancelEdit discards the edit in progress.
func (s *RegistrationStore) CancelEdit() { s.edit.Cancel() }

// Session exposes the editor's edit state.
func (s *RegistrationStore) Session() *Session { return &s.edit }

func (s *RegistrationStore) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.save()
}

// apply validates in and copies it into r, snapshotting the offering name.
// When the offering is gone and r already points at it, the existing
// snapshot is kept. The caller holds s.mu; r.ID identifies r for the
// duplicate check.
func (s *RegistrationStore) apply(r *types.StudentRegistration, in RegistrationInput) error {
	name := strings.TrimSpace(in.StudentName)
	offeringID := strings.TrimSpace(in.CourseOfferingID)
	email := strings.TrimSpace(in.Email)

	if name == "" || offeringID == "" || email == "" {
		return types.NewValidationError("Student name, course offering, and email are required")
	}
	if !strings.Contains(email, "@") {
		return types.NewValidationError("Please enter a valid email address")
	}
	offeringName := r.CourseOfferingName
	if offering, ok := s.offerings.Lookup(offeringID); ok {
		offeringName = offering.Name
	} else if r.CourseOfferingID != offeringID {
		// An orphaned registration stays editable while it keeps its offering.
		return types.NewValidationError("Selected course offering does not exist")
	}
	for _, existing := range s.col.items {
		if existing.ID == r.ID || existing.CourseOfferingID != offeringID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(existing.StudentName), name) {
			return types.NewValidationError("This student is already registered for this course offering")
		}
	}

	r.StudentName = name
	r.CourseOfferingID = offeringID
	r.CourseOfferingName = offeringName
	r.Email = email
	r.Phone = strings.TrimSpace(in.Phone)
	return nil
}
