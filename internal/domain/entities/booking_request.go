package entities

// BookingRequest is the payload for the upstream bookAppointment call.
// It is sent as multipart form data so the optional report file can ride along.
type BookingRequest struct {
	UserID           string
	DoctorID         string
	DoctorName       string
	DoctorDepartment string
	Time             string
	Date             string
	Comments         string
	Report           *Attachment
}
