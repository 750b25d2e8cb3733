package booking

import (
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// Draft is the in-progress, not-yet-submitted appointment selection set.
// Selections form a strict dependency chain: department, doctor, date, time.
// Changing any link clears everything downstream of it.
type Draft struct {
	Doctors     []entities.Doctor    `json:"doctors"`
	Departments []string             `json:"departments"`
	Department  string               `json:"selectedDepartment"`
	DoctorID    string               `json:"selectedDoctorId"`
	Doctor      *entities.Doctor     `json:"selectedDoctor"`
	Slots       []entities.Slot      `json:"availableSlots"`
	Date        string               `json:"selectedDate"`
	Time        string               `json:"selectedTime"`
	Comments    string               `json:"comments"`
	Attachment  *entities.Attachment `json:"reportFile"`

	// FetchToken identifies the slot fetch belonging to the current doctor
	// selection. Slot results stamped with an older token are discarded.
	FetchToken string `json:"-"`
}

// Transition is a named mutation of the draft. Apply treats transition kinds
// it does not recognize as no-ops.
type Transition interface {
	isTransition()
}

// SetDoctors replaces the doctor list and recomputes the department set.
type SetDoctors struct {
	Doctors []entities.Doctor
}

// SetDepartment selects a department and clears all downstream selections.
type SetDepartment struct {
	Department string
}

// SetDoctorID selects a doctor and clears date and time. Slots are left in
// place; the controller repopulates them in reaction to this transition,
// stamping the fetch with FetchToken.
type SetDoctorID struct {
	DoctorID   string
	FetchToken string
}

// SetSelectedDoctor caches the full doctor record for the selected id.
type SetSelectedDoctor struct {
	Doctor     entities.Doctor
	FetchToken string
}

// SetAvailableSlots replaces the slot list for the current doctor selection.
type SetAvailableSlots struct {
	Slots      []entities.Slot
	FetchToken string
}

// SetDate selects a date and clears the time.
type SetDate struct {
	Date string
}

// SetTime selects a time slot.
type SetTime struct {
	Time string
}

// SetComments updates the free-text comments.
type SetComments struct {
	Text string
}

// SetAttachment stores the uploaded report file.
type SetAttachment struct {
	Attachment *entities.Attachment
}

// Reset discards the draft back to its initial empty state.
type Reset struct{}

func (SetDoctors) isTransition()        {}
func (SetDepartment) isTransition()     {}
func (SetDoctorID) isTransition()       {}
func (SetSelectedDoctor) isTransition() {}
func (SetAvailableSlots) isTransition() {}
func (SetDate) isTransition()           {}
func (SetTime) isTransition()           {}
func (SetComments) isTransition()       {}
func (SetAttachment) isTransition()     {}
func (Reset) isTransition()             {}

// Apply returns the draft produced by tr. It never mutates d and never fails;
// unknown transitions return the draft unchanged.
func Apply(d Draft, tr Transition) Draft {
	switch t := tr.(type) {
	case SetDoctors:
		d.Doctors = t.Doctors
		d.Departments = entities.Departments(t.Doctors)
		return d

	case SetDepartment:
		d.Department = t.Department
		d.DoctorID = ""
		d.Doctor = nil
		d.Date = ""
		d.Time = ""
		d.Slots = nil
		return d

	case SetDoctorID:
		d.DoctorID = t.DoctorID
		d.Date = ""
		d.Time = ""
		d.FetchToken = t.FetchToken
		return d

	case SetSelectedDoctor:
		if t.FetchToken != d.FetchToken {
			return d
		}
		doc := t.Doctor
		d.Doctor = &doc
		return d

	case SetAvailableSlots:
		if t.FetchToken != d.FetchToken {
			return d
		}
		d.Slots = t.Slots
		return d

	case SetDate:
		d.Date = t.Date
		d.Time = ""
		return d

	case SetTime:
		d.Time = t.Time
		return d

	case SetComments:
		d.Comments = t.Text
		return d

	case SetAttachment:
		d.Attachment = t.Attachment
		return d

	case Reset:
		return Draft{}

	default:
		return d
	}
}

// DateLayout is the wire format for selected dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether raw parses as a calendar date that is not before
// the current day. Past dates are a presentation-layer rejection; callers flag
// them without dispatching SetDate.
func ValidDate(raw string, now time.Time) bool {
	day, err := time.ParseInLocation(DateLayout, raw, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}

// Submittable reports whether the draft carries everything a booking needs.
func (d Draft) Submittable() bool {
	return d.Doctor != nil && d.Date != "" && d.Time != ""
}
