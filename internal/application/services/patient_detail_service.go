package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/dentaldesk/internal/application/loaders"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
)

// Clock returns the current time
type Clock func() time.Time

// UnknownName is shown when a referenced dentist or treatment cannot be resolved
const UnknownName = "Unknown"

// AppointmentView is an appointment with its references resolved to names
type AppointmentView struct {
	*entities.Appointment
	DentistName   string `json:"dentistName"`
	TreatmentName string `json:"treatmentName"`
}

// PatientDetail is the patient page: the record plus its appointment history
type PatientDetail struct {
	Patient  *entities.Patient `json:"patient"`
	Upcoming []AppointmentView `json:"upcoming"` // soonest first
	Past     []AppointmentView `json:"past"`     // most recent first
}

// PatientDetailService assembles the patient page
type PatientDetailService struct {
	patients     repositories.PatientRepository
	appointments repositories.AppointmentRepository
	dentists     repositories.DentistRepository
	treatments   repositories.TreatmentRepository
	now          Clock
}

// NewPatientDetailService creates a new patient detail service. A nil clock uses time.Now.
func NewPatientDetailService(
	patients repositories.PatientRepository,
	appointments repositories.AppointmentRepository,
	dentists repositories.DentistRepository,
	treatments repositories.TreatmentRepository,
	now Clock,
) *PatientDetailService {
	if now == nil {
		now = time.Now
	}
	return &PatientDetailService{
		patients:     patients,
		appointments: appointments,
		dentists:     dentists,
		treatments:   treatments,
		now:          now,
	}
}

// Get loads the patient and their appointments concurrently, then resolves
// dentist and treatment names in one batch each. Name lookups that fail fall
// back to UnknownName; patient or appointment failures are returned unchanged.
func (s *PatientDetailService) Get(ctx context.Context, patientID string) (*PatientDetail, error) {
	var (
		patient      *entities.Patient
		appointments []*entities.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patient, err = s.patients.GetByID(gctx, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = s.appointments.ListByPatient(gctx, patientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l := loaders.For(ctx)
	if l == nil {
		l = loaders.NewLoaders(s.dentists, s.treatments)
	}
	views := s.resolve(ctx, l, appointments)

	now := s.now()
	detail := &PatientDetail{Patient: patient, Upcoming: []AppointmentView{}, Past: []AppointmentView{}}
	for _, v := range views {
		if v.IsUpcoming(now) {
			detail.Upcoming = append(detail.Upcoming, v)
		} else {
			detail.Past = append(detail.Past, v)
		}
	}
	sort.SliceStable(detail.Upcoming, func(i, j int) bool {
		return detail.Upcoming[i].DateTime.Before(detail.Upcoming[j].DateTime)
	})
	sort.SliceStable(detail.Past, func(i, j int) bool {
		return detail.Past[i].DateTime.After(detail.Past[j].DateTime)
	})

	return detail, nil
}

func (s *PatientDetailService) resolve(ctx context.Context, l *loaders.Loaders, appointments []*entities.Appointment) []AppointmentView {
	dentistIDs := make([]string, len(appointments))
	treatmentIDs := make([]string, len(appointments))
	for i, a := range appointments {
		dentistIDs[i] = a.DentistID
		treatmentIDs[i] = a.TreatmentID
	}

	var (
		dentists      []*entities.Dentist
		dentistErrs   []error
		treatments    []*entities.Treatment
		treatmentErrs []error
	)
	if len(appointments) > 0 {
		dentists, dentistErrs = l.LoadDentists(ctx, dentistIDs)
		treatments, treatmentErrs = l.LoadTreatments(ctx, treatmentIDs)
	}

	logger := observability.LoggerFromContext(ctx)
	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = AppointmentView{Appointment: a, DentistName: UnknownName, TreatmentName: UnknownName}

		if err := errAt(dentistErrs, i); err != nil {
			logger.Debug().Err(err).Str("dentist_id", a.DentistID).Msg("Dentist not resolved")
		} else if i < len(dentists) && dentists[i] != nil && dentists[i].Name != "" {
			views[i].DentistName = dentists[i].Name
		}

		if err := errAt(treatmentErrs, i); err != nil {
			logger.Debug().Err(err).Str("treatment_id", a.TreatmentID).Msg("Treatment not resolved")
		} else if i < len(treatments) && treatments[i] != nil && treatments[i].Name != "" {
			views[i].TreatmentName = treatments[i].Name
		}
	}
	return views
}

// errAt indexes a dataloader error slice, which is nil when every key resolved
func errAt(errs []error, i int) error {
	if i < len(errs) {
		return errs[i]
	}
	return nil
}
