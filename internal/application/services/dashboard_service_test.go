package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

func testPatients(n int) []*entities.Patient {
	patients := make([]*entities.Patient, n)
	for i := range patients {
		patients[i] = &entities.Patient{
			ID:       fmt.Sprintf("p%d", i+1),
			FullName: fmt.Sprintf("Patient %d", i+1),
			Address:  fmt.Sprintf("%d Main St", i+1),
		}
	}
	return patients
}

func appointmentAt(id, patientID, dentistID, treatmentID string, at time.Time, status entities.AppointmentStatus) *entities.Appointment {
	return &entities.Appointment{
		ID:          id,
		PatientID:   patientID,
		DentistID:   dentistID,
		TreatmentID: treatmentID,
		DateTime:    at,
		Status:      status,
	}
}

func TestDashboardService_Load(t *testing.T) {
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("joins patients, appointments and stats", func(t *testing.T) {
		patientRepo := new(MockPatientRepository)
		appointmentRepo := new(MockAppointmentRepository)
		statsRepo := new(MockStatsRepository)

		patientRepo.On("List", mock.Anything).Return(testPatients(8), nil)
		appointmentRepo.On("List", mock.Anything).Return([]*entities.Appointment{
			appointmentAt("a1", "p1", "d1", "t1", day.Add(48*time.Hour), entities.AppointmentStatusScheduled),
			appointmentAt("a2", "p1", "d2", "t1", day, entities.AppointmentStatusScheduled),
			appointmentAt("a3", "p1", "d1", "t2", day.Add(-24*time.Hour), entities.AppointmentStatusCompleted),
		}, nil)
		statsRepo.On("Get", mock.Anything).Return(&entities.Stats{TotalPatients: 8}, nil)

		service := services.NewDashboardService(patientRepo, appointmentRepo, statsRepo)
		dashboard, err := service.Load(context.Background(), services.DashboardFilter{})
		require.NoError(t, err)

		assert.Equal(t, 8, dashboard.Stats.TotalPatients)
		require.Len(t, dashboard.Patients, 8)

		first := dashboard.Patients[0]
		require.Len(t, first.Scheduled, 2)
		assert.Equal(t, "a2", first.Scheduled[0].ID)
		assert.Equal(t, "a1", first.Scheduled[1].ID)
		assert.Empty(t, dashboard.Patients[1].Scheduled)

		assert.Equal(t, 2, dashboard.TotalPages(services.PatientsPerPage))
		assert.Len(t, dashboard.Page(1, services.PatientsPerPage), 6)
		assert.Len(t, dashboard.Page(2, services.PatientsPerPage), 2)
		assert.Empty(t, dashboard.Page(3, services.PatientsPerPage))
		assert.Empty(t, dashboard.Page(0, services.PatientsPerPage))

		patientRepo.AssertExpectations(t)
		appointmentRepo.AssertExpectations(t)
		statsRepo.AssertExpectations(t)
	})

	t.Run("filters by dentist and date", func(t *testing.T) {
		patientRepo := new(MockPatientRepository)
		appointmentRepo := new(MockAppointmentRepository)
		statsRepo := new(MockStatsRepository)

		patientRepo.On("List", mock.Anything).Return(testPatients(3), nil)
		appointmentRepo.On("List", mock.Anything).Return([]*entities.Appointment{
			appointmentAt("a1", "p1", "d1", "t1", day, entities.AppointmentStatusScheduled),
			appointmentAt("a2", "p2", "d2", "t1", day, entities.AppointmentStatusScheduled),
			appointmentAt("a3", "p3", "d2", "t1", day.Add(24*time.Hour), entities.AppointmentStatusScheduled),
		}, nil)
		statsRepo.On("Get", mock.Anything).Return(&entities.Stats{}, nil)

		service := services.NewDashboardService(patientRepo, appointmentRepo, statsRepo)

		dashboard, err := service.Load(context.Background(), services.DashboardFilter{DentistID: "d2"})
		require.NoError(t, err)
		require.Len(t, dashboard.Patients, 2)
		assert.Equal(t, "p2", dashboard.Patients[0].Patient.ID)
		assert.Equal(t, "p3", dashboard.Patients[1].Patient.ID)

		dashboard, err = service.Load(context.Background(), services.DashboardFilter{DentistID: "d2", Date: "2025-06-01"})
		require.NoError(t, err)
		require.Len(t, dashboard.Patients, 1)
		assert.Equal(t, "p2", dashboard.Patients[0].Patient.ID)
	})

	t.Run("returns the first failure unchanged", func(t *testing.T) {
		patientRepo := new(MockPatientRepository)
		appointmentRepo := new(MockAppointmentRepository)
		statsRepo := new(MockStatsRepository)

		statsErr := errors.New("stats unavailable")
		patientRepo.On("List", mock.Anything).Return(testPatients(1), nil).Maybe()
		appointmentRepo.On("List", mock.Anything).Return([]*entities.Appointment{}, nil).Maybe()
		statsRepo.On("Get", mock.Anything).Return(nil, statsErr)

		service := services.NewDashboardService(patientRepo, appointmentRepo, statsRepo)
		dashboard, err := service.Load(context.Background(), services.DashboardFilter{})

		assert.Nil(t, dashboard)
		assert.ErrorIs(t, err, statsErr)
	})
}

func TestFilterPatients(t *testing.T) {
	patients := []*entities.Patient{
		{ID: "p1", FullName: "Ann Lee", Address: "1 Main St"},
		{ID: "p2", FullName: "Bob Stone", Address: "22 Lee Road"},
		{ID: "p3", FullName: "Cara Diaz", Address: "3 High St"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "blank", query: "  ", want: []string{"p1", "p2", "p3"}},
		{name: "name or address", query: "lee", want: []string{"p1", "p2"}},
		{name: "case insensitive", query: "DIAZ", want: []string{"p3"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, p := range services.FilterPatients(patients, tt.query) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
