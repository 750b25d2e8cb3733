package booking

import (
	"testing"
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

func TestYears_DistinctSortedAscending(t *testing.T) {
	appointments := []entities.Appointment{
		{ID: "a1", Date: "2023-05-01"},
		{ID: "a2", DateTime: "2024-01-01T09:00:00Z"},
		{ID: "a3", Date: "2024-06-15"},
		{ID: "a4", Date: "not-a-date"},
	}

	years := Years(appointments, time.UTC)
	if len(years) != 2 || years[0] != 2023 || years[1] != 2024 {
		t.Fatalf("expected [2023 2024], got %v", years)
	}
}

func TestFilterByYear(t *testing.T) {
	appointments := []entities.Appointment{
		{ID: "a1", Date: "2023-05-01"},
		{ID: "a2", DateTime: "2024-01-01T09:00:00Z"},
		{ID: "a3", Date: "2024-06-15"},
	}

	filtered := FilterByYear(appointments, 2024, time.UTC)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 appointments in 2024, got %d", len(filtered))
	}
	for _, a := range filtered {
		if a.ID == "a1" {
			t.Fatalf("2023 appointment leaked through the 2024 filter")
		}
	}
}

func TestJoinState_SameCalendarDayOnly(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		appt entities.Appointment
		want JoinEligibility
	}{
		{
			name: "earlier today stays joinable all day",
			appt: entities.Appointment{DateTime: "2026-09-14T08:00:00Z"},
			want: EligibilityJoinable,
		},
		{
			name: "later today joinable",
			appt: entities.Appointment{DateTime: "2026-09-14T23:30:00Z"},
			want: EligibilityJoinable,
		},
		{
			name: "yesterday never joinable",
			appt: entities.Appointment{Date: "2026-09-13"},
			want: EligibilityPassed,
		},
		{
			name: "tomorrow never joinable even within 24h",
			appt: entities.Appointment{DateTime: "2026-09-15T08:00:00Z"},
			want: EligibilityUpcoming,
		},
		{
			name: "date-only field on today joinable",
			appt: entities.Appointment{Date: "2026-09-14"},
			want: EligibilityJoinable,
		},
		{
			name: "unparseable date",
			appt: entities.Appointment{Date: "soon"},
			want: EligibilityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinState(tt.appt, now); got != tt.want {
				t.Fatalf("JoinState() = %v, want %v", got, tt.want)
			}
		})
	}
}
