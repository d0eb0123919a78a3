package entities

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// UnmarshalText rejects statuses outside the enumeration
func (s *AppointmentStatus) UnmarshalText(text []byte) error {
	status := AppointmentStatus(text)
	if !status.Valid() {
		return fmt.Errorf("invalid appointment status %q", string(text))
	}
	*s = status
	return nil
}

// Appointment represents a scheduled visit
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	DentistID   string            `json:"dentistId"`
	TreatmentID string            `json:"treatmentId"`
	DateTime    time.Time         `json:"appointmentDateTime"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
}

// IsUpcoming reports whether the appointment starts at or after now
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return !a.DateTime.Before(now)
}

// CreateAppointmentRequest is the payload for POST /appointments
type CreateAppointmentRequest struct {
	PatientID   string    `json:"patientId"`
	DentistID   string    `json:"dentistId"`
	TreatmentID string    `json:"treatmentId"`
	DateTime    time.Time `json:"appointmentDateTime"`
	Notes       string    `json:"notes,omitempty"`
}

// UpdateAppointmentRequest is the payload for PUT /appointments/{id}; nil fields are left unchanged
type UpdateAppointmentRequest struct {
	ID          string             `json:"id"`
	PatientID   *string            `json:"patientId,omitempty"`
	DentistID   *string            `json:"dentistId,omitempty"`
	TreatmentID *string            `json:"treatmentId,omitempty"`
	DateTime    *time.Time         `json:"appointmentDateTime,omitempty"`
	Status      *AppointmentStatus `json:"status,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}
