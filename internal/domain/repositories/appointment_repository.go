package repositories

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// AppointmentRepository defines the operations the backend offers on appointments
type AppointmentRepository interface {
	// List retrieves all appointments
	List(ctx context.Context) ([]*entities.Appointment, error)

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// ListByPatient retrieves appointments for a patient
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)

	// ListUpcoming retrieves appointments the backend considers upcoming
	ListUpcoming(ctx context.Context) ([]*entities.Appointment, error)

	// ListToday retrieves today's appointments
	ListToday(ctx context.Context) ([]*entities.Appointment, error)

	// Create schedules a new appointment
	Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error)

	// Update updates an appointment
	Update(ctx context.Context, req *entities.UpdateAppointmentRequest) (*entities.Appointment, error)

	// Delete deletes an appointment
	Delete(ctx context.Context, id string) error
}
