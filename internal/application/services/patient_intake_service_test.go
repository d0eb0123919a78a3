package services_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPatientIntakeService_Register(t *testing.T) {
	t.Run("requires name and address", func(t *testing.T) {
		repo := new(MockPatientRepository)
		service := services.NewPatientIntakeService(repo)

		_, err := service.Register(context.Background(), services.PatientIntake{FullName: "   ", Address: ""})

		require.Error(t, err)
		assert.True(t, apierrors.IsValidation(err))
		fields := apierrors.FieldErrors(err)
		assert.Contains(t, fields, "fullName")
		assert.Contains(t, fields, "address")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("trims fields and attaches photo", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "smile.png")
		require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

		repo := new(MockPatientRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(req *entities.NewPatientRequest) bool {
			return req.FullName == "Ann Lee" &&
				req.Address == "1 Main St" &&
				req.Photo != nil &&
				req.Photo.FileName == "smile.png" &&
				req.Photo.ContentType == "image/png" &&
				req.Photo.Base64 == base64.StdEncoding.EncodeToString(pngHeader)
		})).Return(&entities.Patient{ID: "p9", FullName: "Ann Lee"}, nil)

		service := services.NewPatientIntakeService(repo)
		patient, err := service.Register(context.Background(), services.PatientIntake{
			FullName:  "  Ann Lee ",
			Address:   " 1 Main St",
			PhotoPath: path,
		})

		require.NoError(t, err)
		assert.Equal(t, "p9", patient.ID)
		repo.AssertExpectations(t)
	})

	t.Run("no photo sends null photo", func(t *testing.T) {
		repo := new(MockPatientRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(req *entities.NewPatientRequest) bool {
			return req.Photo == nil
		})).Return(&entities.Patient{ID: "p10"}, nil)

		service := services.NewPatientIntakeService(repo)
		_, err := service.Register(context.Background(), services.PatientIntake{FullName: "Bob", Address: "2 High St"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing photo file fails before create", func(t *testing.T) {
		repo := new(MockPatientRepository)
		service := services.NewPatientIntakeService(repo)

		_, err := service.Register(context.Background(), services.PatientIntake{
			FullName:  "Bob",
			Address:   "2 High St",
			PhotoPath: filepath.Join(t.TempDir(), "nope.jpg"),
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPatientIntakeService_PhotoFromFileSniffsContentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	photo, err := services.NewPatientIntakeService(new(MockPatientRepository)).PhotoFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, "photo", photo.FileName)
}
