package booking

import (
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// SlotOption is a slot prepared for presentation. Booked slots never become
// options; slots whose computed date-time has passed are kept but disabled.
type SlotOption struct {
	ID       string `json:"_id"`
	Time     string `json:"time"`
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// SelectableSlots builds the presentable slot list for a selected date.
// A slot's date-time is date plus the slot's clock time; when that moment is
// at or before now the slot is soft-disabled rather than removed.
func SelectableSlots(slots []entities.Slot, date string, now time.Time) []SlotOption {
	options := make([]SlotOption, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBooked {
			continue
		}
		opt := SlotOption{ID: slot.ID, Time: slot.Time, Label: slot.Time}
		if ts, ok := slotMoment(date, slot.Time, now.Location()); ok && !ts.After(now) {
			opt.Disabled = true
			opt.Label = slot.Time + " (Unavailable)"
		}
		options = append(options, opt)
	}
	return options
}

func slotMoment(date, clock string, loc *time.Location) (time.Time, bool) {
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if ts, err := time.ParseInLocation(layout, date+"T"+clock, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
