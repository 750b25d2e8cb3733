package entities

import "time"

// Appointment is a scheduled appointment as returned by the upstream API.
// Older records carry separate date and time strings; newer ones a combined
// dateTime. EffectiveTime prefers the combined field.
type Appointment struct {
	ID               string `json:"_id"`
	DoctorID         string `json:"doctorId"`
	DoctorName       string `json:"doctorName"`
	DoctorDepartment string `json:"doctorDepartment"`
	DateTime         string `json:"dateTime,omitempty"`
	Date             string `json:"date,omitempty"`
	Time             string `json:"time,omitempty"`
}

var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// EffectiveTime resolves the appointment's date-time, preferring DateTime and
// falling back to Date. Returns false when neither field parses.
func (a Appointment) EffectiveTime(loc *time.Location) (time.Time, bool) {
	for _, raw := range []string{a.DateTime, a.Date} {
		if raw == "" {
			continue
		}
		for _, layout := range appointmentTimeLayouts {
			if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// EffectiveClock returns the display time: the explicit Time field when set,
// otherwise the clock portion of the parsed date-time.
func (a Appointment) EffectiveClock(loc *time.Location) string {
	if a.Time != "" {
		return a.Time
	}
	if ts, ok := a.EffectiveTime(loc); ok {
		return ts.Format("15:04")
	}
	return ""
}
