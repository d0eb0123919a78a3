package entities

// Dentist represents a practitioner appointments can be booked with
type Dentist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// CreateDentistRequest is the payload for POST /dentists
type CreateDentistRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}
