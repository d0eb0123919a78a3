package api

import (
	"context"
	"net/url"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// PatientAdapter implements PatientRepository against /patients
type PatientAdapter struct {
	client Requester
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client Requester) repositories.PatientRepository {
	return &PatientAdapter{client: client}
}

// List retrieves all patients
func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	var patients []*entities.Patient
	if err := a.client.Get(ctx, PatientsEndpoint, &patients); err != nil {
		logFailure(ctx, "patients", "list", err).Msg("Error fetching all patients")
		return nil, err
	}
	return nonNil(patients), nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	path, err := resourcePath(PatientsEndpoint, id)
	if err != nil {
		return nil, err
	}

	var patient entities.Patient
	if err := a.client.Get(ctx, path, &patient); err != nil {
		logFailure(ctx, "patients", "get", err).Str("patient_id", id).Msg("Error fetching patient")
		return nil, err
	}
	return &patient, nil
}

// Search retrieves patients matching query via /patients/search?q=
func (a *PatientAdapter) Search(ctx context.Context, query string) ([]*entities.Patient, error) {
	path := PatientsEndpoint + "/search?q=" + url.QueryEscape(query)

	var patients []*entities.Patient
	if err := a.client.Get(ctx, path, &patients); err != nil {
		logFailure(ctx, "patients", "search", err).Str("query", query).Msg("Error searching patients")
		return nil, err
	}
	return nonNil(patients), nil
}

// Create registers a new patient
func (a *PatientAdapter) Create(ctx context.Context, req *entities.NewPatientRequest) (*entities.Patient, error) {
	var patient entities.Patient
	if err := a.client.Post(ctx, PatientsEndpoint, req, &patient); err != nil {
		logFailure(ctx, "patients", "create", err).Str("full_name", req.FullName).Msg("Error adding patient")
		return nil, err
	}
	return &patient, nil
}

// Update updates a patient
func (a *PatientAdapter) Update(ctx context.Context, id string, req *entities.UpdatePatientRequest) (*entities.Patient, error) {
	path, err := resourcePath(PatientsEndpoint, id)
	if err != nil {
		return nil, err
	}

	var patient entities.Patient
	if err := a.client.Put(ctx, path, req, &patient); err != nil {
		logFailure(ctx, "patients", "update", err).Str("patient_id", id).Msg("Error updating patient")
		return nil, err
	}
	return &patient, nil
}

// Delete deletes a patient
func (a *PatientAdapter) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(PatientsEndpoint, id)
	if err != nil {
		return err
	}

	if err := a.client.Delete(ctx, path, nil); err != nil {
		logFailure(ctx, "patients", "delete", err).Str("patient_id", id).Msg("Error deleting patient")
		return err
	}
	return nil
}
