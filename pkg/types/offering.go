package types

// OfferingNameSeparator joins the course type and course names in an
// offering's display name.
const OfferingNameSeparator = " - "

// CourseOffering pairs one CourseType with one Course. CourseTypeName,
// CourseName, and Name are snapshots taken when the offering was created or
// last updated; renaming a parent later does not change them.
type CourseOffering struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CourseTypeID   string `json:"courseTypeId"`
	CourseID       string `json:"courseId"`
	CourseTypeName string `json:"courseTypeName"`
	CourseName     string `json:"courseName"`
}

// OfferingName derives the display name of an offering from its parents'
// names: "{courseTypeName} - {courseName}".
func OfferingName(courseTypeName, courseName string) string {
	return courseTypeName + OfferingNameSeparator + courseName
}

// GetID returns the offering ID.
func (o CourseOffering) GetID() string { return o.ID }

// GetName returns the cached display name.
func (o CourseOffering) GetName() string { return o.Name }

// Snapshot copies the parents' current names into the offering and re-derives
// its display name. The parent IDs are set as well.
func (o *CourseOffering) Snapshot(ct CourseType, c Course) {
	o.CourseTypeID = ct.ID
	o.CourseID = c.ID
	o.CourseTypeName = ct.Name
	o.CourseName = c.Name
	o.Name = OfferingName(ct.Name, c.Name)
}
