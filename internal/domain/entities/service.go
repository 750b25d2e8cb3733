package entities

// Service is a care service offered by the clinic.
type Service struct {
	Name string `json:"name"`
}
