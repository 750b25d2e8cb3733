package entities

// Attachment is an uploaded report file forwarded with a booking.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}
