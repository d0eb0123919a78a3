package entities

import (
	"strings"
	"time"
)

// PhotoData is an inline image attached to a patient record
type PhotoData struct {
	Base64      string `json:"base64"`
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
}

// Patient represents a practice patient. ID and CreatedAtUTC are assigned by the backend.
type Patient struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Address      string     `json:"address"`
	Photo        *PhotoData `json:"photo,omitempty"`
	CreatedAtUTC time.Time  `json:"createdAtUtc"`
}

// NewPatientRequest is the intake payload for POST /patients
type NewPatientRequest struct {
	FullName string     `json:"fullName"`
	Address  string     `json:"address"`
	Photo    *PhotoData `json:"photo"`
}

// UpdatePatientRequest is the payload for PUT /patients/{id}; nil fields are left unchanged
type UpdatePatientRequest struct {
	FullName *string    `json:"fullName,omitempty"`
	Address  *string    `json:"address,omitempty"`
	Photo    *PhotoData `json:"photo,omitempty"`
}

// MatchesQuery reports whether the patient's name or address contains q, ignoring case
func (p *Patient) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.FullName), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}
