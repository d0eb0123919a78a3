package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func seededStore() *Store {
	s := NewStore(func() time.Time { return testNow })
	s.Seed()
	return s
}

func TestStore_StatsAreComputedPerCall(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	stats, err := s.Stats().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalPatients)
	assert.Equal(t, 4, stats.TotalTreatments)
	assert.Equal(t, 4, stats.TotalUpcomingAppointments)
	assert.Equal(t, 0, stats.TotalAppointmentsToday)
	assert.Empty(t, stats.RecentActivity)

	_, err = s.Appointments().Create(ctx, &entities.CreateAppointmentRequest{
		PatientID: "4", DentistID: "2", TreatmentID: "1", DateTime: testNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	stats, err = s.Stats().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalUpcomingAppointments)
	assert.Equal(t, 1, stats.TotalAppointmentsToday)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, entities.ActivityTypeAppointment, stats.RecentActivity[0].Type)
	assert.Contains(t, stats.RecentActivity[0].Description, "Lisa Anderson")
}

func TestStore_AppointmentValidation(t *testing.T) {
	s := seededStore()

	_, err := s.Appointments().Create(context.Background(), &entities.CreateAppointmentRequest{
		PatientID: "nope", DentistID: "1", TreatmentID: "9",
	})
	require.Error(t, err)
	fields := apierrors.FieldErrors(err)
	assert.Contains(t, fields, "patientId")
	assert.Contains(t, fields, "treatmentId")
	assert.Contains(t, fields, "appointmentDateTime")
	assert.NotContains(t, fields, "dentistId")
}

func TestStore_DeletePatientRemovesAppointments(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	require.NoError(t, s.Patients().Delete(ctx, "1"))

	_, err := s.Appointments().ListByPatient(ctx, "1")
	assert.Equal(t, 404, apierrors.StatusOf(err))

	all, err := s.Appointments().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Equal(t, 404, apierrors.StatusOf(s.Patients().Delete(ctx, "1")))
}

func TestStore_ListsAreOrderedCopies(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	appointments, err := s.Appointments().ListByPatient(ctx, "1")
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	assert.Equal(t, "5", appointments[0].ID)
	assert.Equal(t, "1", appointments[1].ID)
	assert.Equal(t, "4", appointments[2].ID)

	appointments[0].Notes = "changed"
	again, err := s.Appointments().GetByID(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "Regular checkup", again.Notes)

	patients, err := s.Patients().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", patients[0].FullName)
}

func TestStore_UpdateLeavesNilFieldsUnchanged(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	address := "1 New Rd"
	updated, err := s.Patients().Update(ctx, "2", &entities.UpdatePatientRequest{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Maria Garcia", updated.FullName)
	assert.Equal(t, "1 New Rd", updated.Address)

	empty := " "
	_, err = s.Patients().Update(ctx, "2", &entities.UpdatePatientRequest{FullName: &empty})
	assert.True(t, apierrors.IsValidation(err))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Patients().Create(ctx, &entities.NewPatientRequest{FullName: "Same Name", Address: "Same St"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	patients, err := s.Patients().List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 20)
}
