package types

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the persisted form of RegistrationDate: UTC with
// exactly three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// StudentRegistration is a student's enrollment against one CourseOffering.
// CourseOfferingName is a snapshot of the offering's display name at write
// time. RegistrationDate is set once at creation and never updated.
type StudentRegistration struct {
	ID                 string    `json:"id"`
	StudentName        string    `json:"studentName"`
	CourseOfferingID   string    `json:"courseOfferingId"`
	CourseOfferingName string    `json:"courseOfferingName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	RegistrationDate   time.Time `json:"registrationDate"`
}

// MarshalJSON writes RegistrationDate in TimestampLayout. Decoding uses the
// default RFC 3339 parser, which accepts any fractional precision.
func (r StudentRegistration) MarshalJSON() ([]byte, error) {
	type plain StudentRegistration
	return json.Marshal(struct {
		plain
		RegistrationDate string `json:"registrationDate"`
	}{
		plain:            plain(r),
		RegistrationDate: r.RegistrationDate.UTC().Format(TimestampLayout),
	})
}

// GetID returns the registration ID.
func (r StudentRegistration) GetID() string { return r.ID }

// GetName returns the student name.
func (r StudentRegistration) GetName() string { return r.StudentName }
