package registry

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// DashboardLimit is the number of entries per collection the dashboard
// shows.
const DashboardLimit = 5

// Summary is the dashboard view: collection sizes plus the first entries of
// each collection.
type Summary struct {
	CourseTypeCount   int `json:"courseTypeCount"`
	CourseCount       int `json:"courseCount"`
	OfferingCount     int `json:"courseOfferingCount"`
	RegistrationCount int `json:"studentRegistrationCount"`

	CourseTypes   []types.CourseType          `json:"courseTypes"`
	Courses       []types.Course              `json:"courses"`
	Offerings     []types.CourseOffering      `json:"courseOfferings"`
	Registrations []types.StudentRegistration `json:"studentRegistrations"`
}

// Summary reports the size of every collection and its first limit entries.
// A non-positive limit means DashboardLimit.
func (s *State) Summary(limit int) Summary {
	if limit <= 0 {
		limit = DashboardLimit
	}
	courseTypes := s.CourseTypes.List()
	courses := s.Courses.List()
	offerings := s.Offerings.List()
	registrations := s.Registrations.List()

	return Summary{
		CourseTypeCount:   len(courseTypes),
		CourseCount:       len(courses),
		OfferingCount:     len(offerings),
		RegistrationCount: len(registrations),
		CourseTypes:       head(courseTypes, limit),
		Courses:           head(courses, limit),
		Offerings:         head(offerings, limit),
		Registrations:     head(registrations, limit),
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// DanglingRef is a soft reference whose target no longer exists.
type DanglingRef struct {
	Collection string `json:"collection"` // key of the collection holding the reference
	ID         string `json:"id"`         // ID of the referencing entity
	Name       string `json:"name"`       // display name of the referencing entity
	Field      string `json:"field"`      // JSON name of the reference field
	Target     string `json:"target"`     // the missing ID
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s %s (%s): %s %s is missing", d.Collection, d.ID, d.Name, d.Field, d.Target)
}

// Check lists references left dangling by deletes. Deletes never cascade, so
// offerings can outlive their course type or course and registrations can
// outlive their offering.
func (s *State) Check() []DanglingRef {
	refs := []DanglingRef{}
	for _, o := range s.Offerings.List() {
		if _, ok := s.CourseTypes.Lookup(o.CourseTypeID); !ok {
			refs = append(refs, DanglingRef{
				Collection: types.KeyCourseOfferings, ID: o.ID, Name: o.Name,
				Field: "courseTypeId", Target: o.CourseTypeID,
			})
		}
		if _, ok := s.Courses.Lookup(o.CourseID); !ok {
			refs = append(refs, DanglingRef{
				Collection: types.KeyCourseOfferings, ID: o.ID, Name: o.Name,
				Field: "courseId", Target: o.CourseID,
			})
		}
	}
	for _, r := range s.Registrations.List() {
		if _, ok := s.Offerings.Lookup(r.CourseOfferingID); !ok {
			refs = append(refs, DanglingRef{
				Collection: types.KeyStudentRegistrations, ID: r.ID, Name: r.StudentName,
				Field: "courseOfferingId", Target: r.CourseOfferingID,
			})
		}
	}
	return refs
}
