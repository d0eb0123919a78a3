package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// PatientIntake is the new-patient form
type PatientIntake struct {
	FullName  string
	Address   string
	PhotoPath string // optional
}

// PatientIntakeService registers new patients
type PatientIntakeService struct {
	patients repositories.PatientRepository
	readFile func(name string) ([]byte, error)
}

// NewPatientIntakeService creates a new patient intake service
func NewPatientIntakeService(patients repositories.PatientRepository) *PatientIntakeService {
	return &PatientIntakeService{
		patients: patients,
		readFile: os.ReadFile,
	}
}

// Register trims the form, checks the required fields and creates the patient.
// Missing fields fail locally with a validation error before any request is sent.
func (s *PatientIntakeService) Register(ctx context.Context, form PatientIntake) (*entities.Patient, error) {
	req := &entities.NewPatientRequest{
		FullName: strings.TrimSpace(form.FullName),
		Address:  strings.TrimSpace(form.Address),
	}

	fields := map[string][]string{}
	if req.FullName == "" {
		fields["fullName"] = []string{"Full name is required"}
	}
	if req.Address == "" {
		fields["address"] = []string{"Address is required"}
	}
	if len(fields) > 0 {
		return nil, apierrors.NewValidationError("Please fill in all required fields", fields)
	}

	if path := strings.TrimSpace(form.PhotoPath); path != "" {
		photo, err := s.PhotoFromFile(path)
		if err != nil {
			return nil, err
		}
		req.Photo = photo
	}

	patient, err := s.patients.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("patient_id", patient.ID).
		Bool("has_photo", req.Photo != nil).
		Msg("Patient registered")
	return patient, nil
}

// PhotoFromFile reads an image into the inline photo format
func (s *PatientIntakeService) PhotoFromFile(path string) (*entities.PhotoData, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return &entities.PhotoData{
		Base64:      base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		FileName:    filepath.Base(path),
	}, nil
}
