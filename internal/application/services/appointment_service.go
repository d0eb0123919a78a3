package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// AppointmentService handles appointment booking logic
type AppointmentService struct {
	repo repositories.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Schedule books an appointment. Only missing references are checked here;
// whether the date is acceptable is up to the backend.
func (s *AppointmentService) Schedule(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	fields := map[string][]string{}
	if strings.TrimSpace(req.PatientID) == "" {
		fields["patientId"] = []string{"Patient is required"}
	}
	if strings.TrimSpace(req.DentistID) == "" {
		fields["dentistId"] = []string{"Dentist is required"}
	}
	if strings.TrimSpace(req.TreatmentID) == "" {
		fields["treatmentId"] = []string{"Treatment is required"}
	}
	if req.DateTime.IsZero() {
		fields["appointmentDateTime"] = []string{"Date and time are required"}
	}
	if len(fields) > 0 {
		return nil, apierrors.NewValidationError("Please fill in all required fields", fields)
	}

	appointment, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Time("at", appointment.DateTime).
		Msg("Appointment scheduled")
	return appointment, nil
}

// Cancel marks an appointment cancelled
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.setStatus(ctx, id, entities.AppointmentStatusCancelled)
}

// Complete marks an appointment completed
func (s *AppointmentService) Complete(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.setStatus(ctx, id, entities.AppointmentStatusCompleted)
}

// Reschedule moves a scheduled appointment to a new time
func (s *AppointmentService) Reschedule(ctx context.Context, id string, at time.Time) (*entities.Appointment, error) {
	if at.IsZero() {
		return nil, apierrors.NewValidationError("", map[string][]string{
			"appointmentDateTime": {"Date and time are required"},
		})
	}
	return s.repo.Update(ctx, &entities.UpdateAppointmentRequest{ID: id, DateTime: &at})
}

func (s *AppointmentService) setStatus(ctx context.Context, id string, status entities.AppointmentStatus) (*entities.Appointment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if current.Status != entities.AppointmentStatusScheduled {
		return nil, fmt.Errorf("appointment %s is %s and cannot be marked %s", id, current.Status, status)
	}

	updated, err := s.repo.Update(ctx, &entities.UpdateAppointmentRequest{ID: id, Status: &status})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", id).
		Str("status", string(status)).
		Msg("Appointment status updated")
	return updated, nil
}
