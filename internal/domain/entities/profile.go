package entities

// Profile holds the patient's contact details as stored upstream.
type Profile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone" validate:"omitempty,e164|numeric"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}
