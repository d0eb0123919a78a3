package repositories

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// PatientRepository defines the operations the backend offers on patients
type PatientRepository interface {
	// List retrieves all patients
	List(ctx context.Context) ([]*entities.Patient, error)

	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// Search retrieves patients matching a free-text query
	Search(ctx context.Context, query string) ([]*entities.Patient, error)

	// Create registers a new patient and returns it with its assigned ID
	Create(ctx context.Context, req *entities.NewPatientRequest) (*entities.Patient, error)

	// Update updates a patient
	Update(ctx context.Context, id string, req *entities.UpdatePatientRequest) (*entities.Patient, error)

	// Delete deletes a patient
	Delete(ctx context.Context, id string) error
}
