package services

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// PatientsPerPage is the dashboard page size
const PatientsPerPage = 6

// DashboardFilter narrows the dashboard to patients with a matching appointment.
// Empty fields match everything.
type DashboardFilter struct {
	Date        string // YYYY-MM-DD, compared in the appointment's own zone
	DentistID   string
	TreatmentID string
}

// IsZero reports whether no filter is set
func (f DashboardFilter) IsZero() bool {
	return f.Date == "" && f.DentistID == "" && f.TreatmentID == ""
}

func (f DashboardFilter) matches(a *entities.Appointment) bool {
	if f.Date != "" && a.DateTime.Format("2006-01-02") != f.Date {
		return false
	}
	if f.DentistID != "" && a.DentistID != f.DentistID {
		return false
	}
	if f.TreatmentID != "" && a.TreatmentID != f.TreatmentID {
		return false
	}
	return true
}

// PatientSummary is one patient card: the patient plus their scheduled appointments
type PatientSummary struct {
	Patient   *entities.Patient       `json:"patient"`
	Scheduled []*entities.Appointment `json:"scheduled"`
}

// Dashboard is the joined home-page view
type Dashboard struct {
	Stats    *entities.Stats  `json:"stats"`
	Patients []PatientSummary `json:"patients"`
}

// TotalPages returns the page count for size, at least 1 when there are patients
func (d *Dashboard) TotalPages(size int) int {
	if size <= 0 {
		size = PatientsPerPage
	}
	return (len(d.Patients) + size - 1) / size
}

// Page returns the 1-based page n. Out of range pages are empty.
func (d *Dashboard) Page(n, size int) []PatientSummary {
	if size <= 0 {
		size = PatientsPerPage
	}
	start := (n - 1) * size
	if n < 1 || start >= len(d.Patients) {
		return []PatientSummary{}
	}
	end := start + size
	if end > len(d.Patients) {
		end = len(d.Patients)
	}
	return d.Patients[start:end]
}

// DashboardService loads the practice overview
type DashboardService struct {
	patients     repositories.PatientRepository
	appointments repositories.AppointmentRepository
	stats        repositories.StatsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(patients repositories.PatientRepository, appointments repositories.AppointmentRepository, stats repositories.StatsRepository) *DashboardService {
	return &DashboardService{
		patients:     patients,
		appointments: appointments,
		stats:        stats,
	}
}

// Load fetches appointments, patients and stats concurrently and joins them.
// The first failure cancels the others and is returned unchanged.
func (s *DashboardService) Load(ctx context.Context, filter DashboardFilter) (*Dashboard, error) {
	var (
		patients     []*entities.Patient
		appointments []*entities.Appointment
		stats        *entities.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = s.appointments.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = s.patients.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.stats.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scheduled := make(map[string][]*entities.Appointment)
	matched := make(map[string]bool)
	for _, a := range appointments {
		if a.Status == entities.AppointmentStatusScheduled {
			scheduled[a.PatientID] = append(scheduled[a.PatientID], a)
		}
		if !filter.IsZero() && filter.matches(a) {
			matched[a.PatientID] = true
		}
	}

	dashboard := &Dashboard{Stats: stats, Patients: make([]PatientSummary, 0, len(patients))}
	for _, p := range patients {
		if !filter.IsZero() && !matched[p.ID] {
			continue
		}
		upcoming := scheduled[p.ID]
		sort.SliceStable(upcoming, func(i, j int) bool {
			return upcoming[i].DateTime.Before(upcoming[j].DateTime)
		})
		dashboard.Patients = append(dashboard.Patients, PatientSummary{Patient: p, Scheduled: upcoming})
	}

	return dashboard, nil
}

// FilterPatients returns the patients whose name or address contains query,
// ignoring case. A blank query returns every patient.
func FilterPatients(patients []*entities.Patient, query string) []*entities.Patient {
	if strings.TrimSpace(query) == "" {
		return patients
	}
	filtered := make([]*entities.Patient, 0, len(patients))
	for _, p := range patients {
		if p.MatchesQuery(query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
