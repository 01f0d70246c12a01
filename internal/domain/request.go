package domain

import "time"

// RequestStatus enumerates emergency-request states. Resolved requests are
// currently removed outright rather than flipped to StatusResolved, so the
// value never appears in stored data; it is kept so such records would still
// parse if an archive were introduced later.
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusResolved RequestStatus = "Resolved"
)

// EmergencyRequest is an open, seeker-submitted call for blood.
type EmergencyRequest struct {
	ID            string        `json:"id"`
	PatientName   string        `json:"patientName"`
	BloodGroup    BloodGroup    `json:"bloodGroup"`
	District      string        `json:"district"`
	Upazila       string        `json:"upazila"`
	HospitalName  string        `json:"hospitalName"`
	NeededDate    Date          `json:"neededDate"`
	ContactNumber string        `json:"contactNumber"`
	Description   string        `json:"description,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}
