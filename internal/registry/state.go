package registry

import (
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// State is the application state container: the four collections, loaded
// from one KVStore and handed to every editor that needs them.
type State struct {
	CourseTypes   *NamedStore[types.CourseType]
	Courses       *NamedStore[types.Course]
	Offerings     *OfferingStore
	Registrations *RegistrationStore
}

// Open loads every collection from kv. Missing or corrupt values yield empty
// collections; Open never fails. The caller keeps ownership of kv and
// detaches it when done.
func Open(kv types.KVStore, opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &State{}
	s.CourseTypes = newNamedStore(kv, types.KeyCourseTypes, "course type",
		func(id, name string) types.CourseType { return types.CourseType{ID: id, Name: name} }, o)
	s.Courses = newNamedStore(kv, types.KeyCourses, "course",
		func(id, name string) types.Course { return types.Course{ID: id, Name: name} }, o)
	s.Offerings = newOfferingStore(kv, s.CourseTypes, s.Courses, o)
	s.Registrations = newRegistrationStore(kv, s.Offerings, o)
	return s
}

// Persist writes every collection to the store, creating keys that were
// missing. A collection that failed to load is rewritten as empty.
func (s *State) Persist() error {
	for _, save := range []func() error{
		s.CourseTypes.save,
		s.Courses.save,
		s.Offerings.save,
		s.Registrations.save,
	} {
		if err := save(); err != nil {
			return err
		}
	}
	return nil
}
