package booking

import (
	"sort"
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// JoinEligibility classifies whether an appointment's join action is open.
type JoinEligibility int

const (
	// EligibilityUnknown means the appointment date could not be parsed.
	EligibilityUnknown JoinEligibility = iota
	// EligibilityPassed means the appointment day is before today.
	EligibilityPassed
	// EligibilityUpcoming means the appointment day is after today.
	EligibilityUpcoming
	// EligibilityJoinable means the appointment falls on the current calendar day.
	EligibilityJoinable
)

// JoinState gates the join action at day granularity: an appointment is
// joinable exactly when its date is today's calendar date, regardless of
// time-of-day on either side. An appointment earlier today stays joinable for
// the rest of the day; yesterday's and tomorrow's never are.
func JoinState(a entities.Appointment, now time.Time) JoinEligibility {
	ts, ok := a.EffectiveTime(now.Location())
	if !ok {
		return EligibilityUnknown
	}
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		return EligibilityPassed
	case day.After(today):
		return EligibilityUpcoming
	default:
		return EligibilityJoinable
	}
}

// Years returns the distinct calendar years across appointments, ascending.
// Appointments with unparseable dates are skipped.
func Years(appointments []entities.Appointment, loc *time.Location) []int {
	seen := make(map[int]struct{})
	for _, a := range appointments {
		if ts, ok := a.EffectiveTime(loc); ok {
			seen[ts.Year()] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// FilterByYear keeps the appointments whose effective date-time falls in year.
func FilterByYear(appointments []entities.Appointment, year int, loc *time.Location) []entities.Appointment {
	var filtered []entities.Appointment
	for _, a := range appointments {
		if ts, ok := a.EffectiveTime(loc); ok && ts.Year() == year {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
