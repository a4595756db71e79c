package types

// CourseType is a category label applied to a Course when forming an
// offering, for example "Individual" or "Group".
type CourseType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetID returns the course type ID.
func (c CourseType) GetID() string { return c.ID }

// GetName returns the course type name.
func (c CourseType) GetName() string { return c.Name }

// Course is a named subject, for example "English".
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetID returns the course ID.
func (c Course) GetID() string { return c.ID }

// GetName returns the course name.
func (c Course) GetName() string { return c.Name }
