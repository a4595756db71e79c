package registry

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Roster pairs an offering with the students registered for it.
type Roster struct {
	Offering      types.CourseOffering
	Registrations []types.StudentRegistration
}

// CountLabel renders the roster size, e.g. "1 student registered".
func (r Roster) CountLabel() string {
	n := len(r.Registrations)
	if n == 1 {
		return "1 student registered"
	}
	return fmt.Sprintf("%d students registered", n)
}

// GroupByOffering groups registrations by CourseOfferingID, preserving
// insertion order within each group. Registrations whose offering was
// deleted still appear under their dangling ID.
func (s *RegistrationStore) GroupByOffering() map[string][]types.StudentRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string][]types.StudentRegistration)
	for _, r := range s.col.items {
		groups[r.CourseOfferingID] = append(groups[r.CourseOfferingID], r)
	}
	return groups
}

// ForOffering returns the registrations for one offering.
func (s *RegistrationStore) ForOffering(offeringID string) []types.StudentRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []types.StudentRegistration{}
	for _, r := range s.col.items {
		if r.CourseOfferingID == offeringID {
			out = append(out, r)
		}
	}
	return out
}

// CourseTypeFilterOptions returns the course type names offered by the
// roster filter, taken from the offerings' cached names.
func (s *RegistrationStore) CourseTypeFilterOptions() []string {
	return s.offerings.CourseTypeNames()
}

// FilterOfferings returns the offerings selectable under the course type
// filter. An empty filter selects every offering.
func (s *RegistrationStore) FilterOfferings(courseTypeName string) []types.CourseOffering {
	return s.offerings.FilterByCourseType(courseTypeName)
}

// Rosters returns one Roster per offering selected by the course type
// filter, in offering order.
func (s *RegistrationStore) Rosters(courseTypeName string) []Roster {
	offerings := s.FilterOfferings(courseTypeName)
	groups := s.GroupByOffering()

	rosters := make([]Roster, 0, len(offerings))
	for _, o := range offerings {
		regs := groups[o.ID]
		if regs == nil {
			regs = []types.StudentRegistration{}
		}
		rosters = append(rosters, Roster{Offering: o, Registrations: regs})
	}
	return rosters
}
