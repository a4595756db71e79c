package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// MissingPlaceholder is shown in place of a name whose entity was deleted.
const MissingPlaceholder = "(missing)"

// CourseTypeLookup resolves course types by ID without mutating them.
type CourseTypeLookup interface {
	Lookup(id string) (types.CourseType, bool)
}

// CourseLookup resolves courses by ID without mutating them.
type CourseLookup interface {
	Lookup(id string) (types.Course, bool)
}

// OfferingStore is the editor for course offerings.
type OfferingStore struct {
	mu          sync.RWMutex
	courseTypes CourseTypeLookup
	courses     CourseLookup
	ids         IDFunc
	log         zerolog.Logger
	col         *collection[types.CourseOffering]
	edit        Session
}

func newOfferingStore(kv types.KVStore, courseTypes CourseTypeLookup, courses CourseLookup, o options) *OfferingStore {
	log := o.log.With().Str("collection", types.KeyCourseOfferings).Logger()
	return &OfferingStore{
		courseTypes: courseTypes,
		courses:     courses,
		ids:         o.ids,
		log:         log,
		col:         loadCollection[types.CourseOffering](kv, types.KeyCourseOfferings, log),
	}
}

// List returns every offering in insertion order.
func (s *OfferingStore) List() []types.CourseOffering {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.list()
}

// Len returns the number of offerings.
func (s *OfferingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.col.items)
}

// Lookup returns the offering with id, if present.
func (s *OfferingStore) Lookup(id string) (types.CourseOffering, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.find(id)
}

// Get returns the offering with id or ErrNotFound.
func (s *OfferingStore) Get(id string) (types.CourseOffering, error) {
	if o, ok := s.Lookup(id); ok {
		return o, nil
	}
	return types.CourseOffering{}, fmt.Errorf("course offering %q: %w", id, types.ErrNotFound)
}

// Create pairs a course type with a course. Both parents must exist and the
// derived name "{type} - {course}" must not already be used. The parents'
// names are copied into the offering.
func (s *OfferingStore) Create(courseTypeID, courseID string) (types.CourseOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.create(courseTypeID, courseID)
	s.edit.record(err)
	return o, err
}

func (s *OfferingStore) create(courseTypeID, courseID string) (types.CourseOffering, error) {
	o := types.CourseOffering{ID: s.ids()}
	if err := s.resolve(&o, courseTypeID, courseID); err != nil {
		return types.CourseOffering{}, err
	}
	if err := s.col.commit(s.col.appended(o)); err != nil {
		return types.CourseOffering{}, err
	}
	s.log.Info().Str("id", o.ID).Str("name", o.Name).Msg("created course offering")
	return o, nil
}

// Update re-points the offering at the given parents, re-deriving its name
// and refreshing both cached parent names. This is the only path that
// refreshes the snapshot.
func (s *OfferingStore) Update(id, courseTypeID, courseID string) (types.CourseOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.col.index(id)
	if i < 0 {
		return types.CourseOffering{}, fmt.Errorf("course offering %q: %w", id, types.ErrNotFound)
	}
	o := s.col.items[i]
	if err := s.resolve(&o, courseTypeID, courseID); err != nil {
		return types.CourseOffering{}, err
	}
	if err := s.col.commit(s.col.replaced(i, o)); err != nil {
		return types.CourseOffering{}, err
	}
	s.log.Info().Str("id", id).Str("name", o.Name).Msg("updated course offering")
	return o, nil
}

// Delete removes the offering once confirm approves. Registrations pointing
// at it are left in place.
func (s *OfferingStore) Delete(id string, confirm Confirmer) (bool, error) {
	if !confirmed(confirm, "Are you sure you want to delete this course offering?") {
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
	s.log.Info().Str("id", id).Msg("deleted course offering")
	return true, nil
}

// BeginEdit enters Editing(id). Returns ErrNotFound for unknown ids.
func (s *OfferingStore) BeginEdit(id string) error {
	if _, ok := s.Lookup(id); !ok {
		return fmt.Errorf("course offering %q: %w", id, types.ErrNotFound)
	}
	s.edit.Begin(id)
	return nil
}

// CommitEdit applies the selection to the offering being edited.
func (s *OfferingStore) CommitEdit(courseTypeID, courseID string) (types.CourseOffering, error) {
	var out types.CourseOffering
	err := s.edit.commit(func(id string) error {
		o, err := s.Update(id, courseTypeID, courseID)
		out = o
		return err
	})
	return out, err
}

// CancelEdit discards the edit in progress.
func (s *OfferingStore) CancelEdit() { s.edit.Cancel() }

// Session exposes the editor's edit state.
func (s *OfferingStore) Session() *Session { return &s.edit }

func (s *OfferingStore) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.save()
}

// CourseTypeNames returns the distinct cached course type names across all
// offerings, in first-seen order. These are the filter options for rosters.
func (s *OfferingStore) CourseTypeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := []string{}
	for _, o := range s.col.items {
		if !slices.Contains(names, o.CourseTypeName) {
			names = append(names, o.CourseTypeName)
		}
	}
	return names
}

// FilterByCourseType returns offerings whose cached course type name equals
// courseTypeName. An empty name returns every offering. The filter reads the
// snapshot, not the live course type.
func (s *OfferingStore) FilterByCourseType(courseTypeName string) []types.CourseOffering {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if courseTypeName == "" {
		return s.col.list()
	}
	out := []types.CourseOffering{}
	for _, o := range s.col.items {
		if o.CourseTypeName == courseTypeName {
			out = append(out, o)
		}
	}
	return out
}

// resolve validates the selection and snapshots the parents into o. The
// caller holds s.mu; o.ID identifies o for the duplicate check.
func (s *OfferingStore) resolve(o *types.CourseOffering, courseTypeID, courseID string) error {
	courseTypeID = strings.TrimSpace(courseTypeID)
	courseID = strings.TrimSpace(courseID)
	if courseTypeID == "" || courseID == "" {
		return types.NewValidationError("Please select both course type and course")
	}

	ct, ok := s.courseTypes.Lookup(courseTypeID)
	if !ok {
		return types.NewValidationError("Selected course type does not exist")
	}
	c, ok := s.courses.Lookup(courseID)
	if !ok {
		return types.NewValidationError("Selected course does not exist")
	}

	name := types.OfferingName(ct.Name, c.Name)
	for _, existing := range s.col.items {
		if existing.ID != o.ID && existing.Name == name {
			return types.NewValidationError("This course offering already exists")
		}
	}

	o.Snapshot(ct, c)
	return nil
}
