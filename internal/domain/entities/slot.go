package entities

// Slot is a discrete bookable time unit for a specific doctor on a specific date.
type Slot struct {
	ID       string `json:"_id"`
	Time     string `json:"time"`
	IsBooked bool   `json:"isBooked"`
}
