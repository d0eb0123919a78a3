package api

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// AppointmentAdapter implements AppointmentRepository against /appointments
type AppointmentAdapter struct {
	client Requester
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client Requester) repositories.AppointmentRepository {
	return &AppointmentAdapter{client: client}
}

// List retrieves all appointments
func (a *AppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	return a.list(ctx, AppointmentsEndpoint, "list")
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	path, err := resourcePath(AppointmentsEndpoint, id)
	if err != nil {
		return nil, err
	}

	var appointment entities.Appointment
	if err := a.client.Get(ctx, path, &appointment); err != nil {
		logFailure(ctx, "appointments", "get", err).Str("appointment_id", id).Msg("Error fetching appointment")
		return nil, err
	}
	return &appointment, nil
}

// ListByPatient retrieves appointments for a patient via /appointments/patient/{id}
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	path, err := resourcePath(AppointmentsEndpoint+"/patient", patientID)
	if err != nil {
		return nil, err
	}
	return a.list(ctx, path, "list_by_patient")
}

// ListUpcoming retrieves upcoming appointments
func (a *AppointmentAdapter) ListUpcoming(ctx context.Context) ([]*entities.Appointment, error) {
	return a.list(ctx, AppointmentsEndpoint+"/upcoming", "list_upcoming")
}

// ListToday retrieves today's appointments
func (a *AppointmentAdapter) ListToday(ctx context.Context) ([]*entities.Appointment, error) {
	return a.list(ctx, AppointmentsEndpoint+"/today", "list_today")
}

// Create schedules an appointment. Dates are not checked locally; the backend decides.
func (a *AppointmentAdapter) Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	var appointment entities.Appointment
	if err := a.client.Post(ctx, AppointmentsEndpoint, req, &appointment); err != nil {
		logFailure(ctx, "appointments", "create", err).
			Str("patient_id", req.PatientID).
			Msg("Error scheduling appointment")
		return nil, err
	}
	return &appointment, nil
}

// Update updates an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, req *entities.UpdateAppointmentRequest) (*entities.Appointment, error) {
	path, err := resourcePath(AppointmentsEndpoint, req.ID)
	if err != nil {
		return nil, err
	}

	var appointment entities.Appointment
	if err := a.client.Put(ctx, path, req, &appointment); err != nil {
		logFailure(ctx, "appointments", "update", err).Str("appointment_id", req.ID).Msg("Error updating appointment")
		return nil, err
	}
	return &appointment, nil
}

// Delete deletes an appointment
func (a *AppointmentAdapter) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(AppointmentsEndpoint, id)
	if err != nil {
		return err
	}

	if err := a.client.Delete(ctx, path, nil); err != nil {
		logFailure(ctx, "appointments", "delete", err).Str("appointment_id", id).Msg("Error deleting appointment")
		return err
	}
	return nil
}

func (a *AppointmentAdapter) list(ctx context.Context, path, operation string) ([]*entities.Appointment, error) {
	var appointments []*entities.Appointment
	if err := a.client.Get(ctx, path, &appointments); err != nil {
		logFailure(ctx, "appointments", operation, err).Str("path", path).Msg("Error fetching appointments")
		return nil, err
	}
	return nonNil(appointments), nil
}
