package types

// Storage keys, one per entity collection. Each key holds the whole collection
// encoded as a JSON array.
const (
	KeyCourseTypes          = "courseTypes"
	KeyCourses              = "courses"
	KeyCourseOfferings      = "courseOfferings"
	KeyStudentRegistrations = "studentRegistrations"
)

// StorageKeys lists every storage key in load order. Upstream collections come
// first so downstream stores can resolve references after loading.
var StorageKeys = []string{
	KeyCourseTypes,
	KeyCourses,
	KeyCourseOfferings,
	KeyStudentRegistrations,
}
