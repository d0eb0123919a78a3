// Package memory is an in-process implementation of the dental backend's
// repositories. It serves the fake API and tests; nothing is persisted.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// CodeNotFound is returned for unknown ids
const CodeNotFound = "NOT_FOUND"

const maxActivity = 10

// Store holds every resource behind one lock
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	patients     map[string]*entities.Patient
	appointments map[string]*entities.Appointment
	dentists     map[string]*entities.Dentist
	treatments   map[string]*entities.Treatment
	activity     []entities.ActivityItem
}

// NewStore creates an empty store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:          now,
		patients:     make(map[string]*entities.Patient),
		appointments: make(map[string]*entities.Appointment),
		dentists:     make(map[string]*entities.Dentist),
		treatments:   make(map[string]*entities.Treatment),
	}
}

// Patients returns the patient repository view
func (s *Store) Patients() repositories.PatientRepository { return patientStore{s} }

// Appointments returns the appointment repository view
func (s *Store) Appointments() repositories.AppointmentRepository { return appointmentStore{s} }

// Dentists returns the dentist repository view
func (s *Store) Dentists() repositories.DentistRepository { return dentistStore{s} }

// Treatments returns the treatment repository view
func (s *Store) Treatments() repositories.TreatmentRepository { return treatmentStore{s} }

// Stats returns the stats repository view
func (s *Store) Stats() repositories.StatsRepository { return statsStore{s} }

func notFound(kind, id string) error {
	return apierrors.NewAPIError(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

func (s *Store) record(kind entities.ActivityType, description string) {
	item := entities.ActivityItem{
		ID:          uuid.NewString(),
		Type:        kind,
		Description: description,
		Timestamp:   s.now().UTC(),
	}
	s.activity = append([]entities.ActivityItem{item}, s.activity...)
	if len(s.activity) > maxActivity {
		s.activity = s.activity[:maxActivity]
	}
}

type validation map[string][]string

func (v validation) require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v[field] = append(v[field], message)
	}
}

func (v validation) err() error {
	if len(v) == 0 {
		return nil
	}
	return apierrors.NewValidationError("One or more validation errors occurred.", v)
}

// patients

type patientStore struct{ *Store }

func (s patientStore) List(ctx context.Context) ([]*entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedPatients(func(*entities.Patient) bool { return true }), nil
}

func (s patientStore) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, notFound("patient", id)
	}
	copied := *p
	return &copied, nil
}

func (s patientStore) Search(ctx context.Context, query string) ([]*entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedPatients(func(p *entities.Patient) bool { return p.MatchesQuery(query) }), nil
}

func (s patientStore) Create(ctx context.Context, req *entities.NewPatientRequest) (*entities.Patient, error) {
	v := validation{}
	v.require("fullName", req.FullName, "Full name is required")
	v.require("address", req.Address, "Address is required")
	if req.Photo != nil && req.Photo.Base64 != "" && !strings.HasPrefix(req.Photo.ContentType, "image/") {
		v["photo"] = append(v["photo"], "Photo must be an image")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &entities.Patient{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(req.FullName),
		Address:      strings.TrimSpace(req.Address),
		Photo:        req.Photo,
		CreatedAtUTC: s.now().UTC(),
	}
	s.patients[p.ID] = p
	s.record(entities.ActivityTypePatient, "New patient registered: "+p.FullName)

	copied := *p
	return &copied, nil
}

func (s patientStore) Update(ctx context.Context, id string, req *entities.UpdatePatientRequest) (*entities.Patient, error) {
	v := validation{}
	if req.FullName != nil {
		v.require("fullName", *req.FullName, "Full name is required")
	}
	if req.Address != nil {
		v.require("address", *req.Address, "Address is required")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok {
		return nil, notFound("patient", id)
	}
	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Address != nil {
		p.Address = strings.TrimSpace(*req.Address)
	}
	if req.Photo != nil {
		p.Photo = req.Photo
	}

	copied := *p
	return &copied, nil
}

func (s patientStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[id]; !ok {
		return notFound("patient", id)
	}
	delete(s.patients, id)
	for aid, a := range s.appointments {
		if a.PatientID == id {
			delete(s.appointments, aid)
		}
	}
	return nil
}

// sortedPatients returns copies ordered by creation time, caller holds the lock
func (s *Store) sortedPatients(keep func(*entities.Patient) bool) []*entities.Patient {
	out := make([]*entities.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		if keep(p) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUTC.Equal(out[j].CreatedAtUTC) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAtUTC.Before(out[j].CreatedAtUTC)
	})
	return out
}

// appointments

type appointmentStore struct{ *Store }

func (s appointmentStore) List(ctx context.Context) ([]*entities.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedAppointments(func(*entities.Appointment) bool { return true }), nil
}

func (s appointmentStore) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, notFound("appointment", id)
	}
	copied := *a
	return &copied, nil
}

func (s appointmentStore) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.patients[patientID]; !ok {
		return nil, notFound("patient", patientID)
	}
	return s.sortedAppointments(func(a *entities.Appointment) bool { return a.PatientID == patientID }), nil
}

func (s appointmentStore) ListUpcoming(ctx context.Context) ([]*entities.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	return s.sortedAppointments(func(a *entities.Appointment) bool {
		return a.Status == entities.AppointmentStatusScheduled && a.IsUpcoming(now)
	}), nil
}

func (s appointmentStore) ListToday(ctx context.Context) ([]*entities.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	today := s.now().UTC().Format("2006-01-02")
	return s.sortedAppointments(func(a *entities.Appointment) bool {
		return a.DateTime.UTC().Format("2006-01-02") == today
	}), nil
}

func (s appointmentStore) Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.validateReferences(req.PatientID, req.DentistID, req.TreatmentID)
	switch {
	case req.DateTime.IsZero():
		v["appointmentDateTime"] = append(v["appointmentDateTime"], "Appointment date and time is required")
	case req.DateTime.Before(s.now()):
		v["appointmentDateTime"] = append(v["appointmentDateTime"], "Appointment must be in the future")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	a := &entities.Appointment{
		ID:          uuid.NewString(),
		PatientID:   req.PatientID,
		DentistID:   req.DentistID,
		TreatmentID: req.TreatmentID,
		DateTime:    req.DateTime.UTC(),
		Status:      entities.AppointmentStatusScheduled,
		Notes:       req.Notes,
	}
	s.appointments[a.ID] = a
	s.record(entities.ActivityTypeAppointment, fmt.Sprintf("Appointment scheduled for %s", s.patients[a.PatientID].FullName))

	copied := *a
	return &copied, nil
}

func (s appointmentStore) Update(ctx context.Context, req *entities.UpdateAppointmentRequest) (*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[req.ID]
	if !ok {
		return nil, notFound("appointment", req.ID)
	}

	patientID, dentistID, treatmentID := a.PatientID, a.DentistID, a.TreatmentID
	if req.PatientID != nil {
		patientID = *req.PatientID
	}
	if req.DentistID != nil {
		dentistID = *req.DentistID
	}
	if req.TreatmentID != nil {
		treatmentID = *req.TreatmentID
	}
	v := s.validateReferences(patientID, dentistID, treatmentID)
	if req.Status != nil && !req.Status.Valid() {
		v["status"] = append(v["status"], "Unknown status")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	a.PatientID, a.DentistID, a.TreatmentID = patientID, dentistID, treatmentID
	if req.DateTime != nil {
		a.DateTime = req.DateTime.UTC()
	}
	if req.Status != nil && *req.Status != a.Status {
		a.Status = *req.Status
		if a.Status == entities.AppointmentStatusCompleted {
			if t, ok := s.treatments[a.TreatmentID]; ok {
				s.record(entities.ActivityTypeTreatment, t.Name+" completed")
			}
		}
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	copied := *a
	return &copied, nil
}

func (s appointmentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return notFound("appointment", id)
	}
	delete(s.appointments, id)
	return nil
}

// validateReferences checks that referenced records exist, caller holds the lock
func (s *Store) validateReferences(patientID, dentistID, treatmentID string) validation {
	v := validation{}
	if _, ok := s.patients[patientID]; !ok {
		v["patientId"] = append(v["patientId"], "Patient does not exist")
	}
	if _, ok := s.dentists[dentistID]; !ok {
		v["dentistId"] = append(v["dentistId"], "Dentist does not exist")
	}
	if _, ok := s.treatments[treatmentID]; !ok {
		v["treatmentId"] = append(v["treatmentId"], "Treatment does not exist")
	}
	return v
}

// sortedAppointments returns copies ordered by date, caller holds the lock
func (s *Store) sortedAppointments(keep func(*entities.Appointment) bool) []*entities.Appointment {
	out := make([]*entities.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		if keep(a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}

// dentists

type dentistStore struct{ *Store }

func (s dentistStore) List(ctx context.Context) ([]*entities.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Dentist, 0, len(s.dentists))
	for _, d := range s.dentists {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s dentistStore) GetByID(ctx context.Context, id string) (*entities.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dentists[id]
	if !ok {
		return nil, notFound("dentist", id)
	}
	copied := *d
	return &copied, nil
}

func (s dentistStore) Create(ctx context.Context, req *entities.CreateDentistRequest) (*entities.Dentist, error) {
	v := validation{}
	v.require("name", req.Name, "Name is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := &entities.Dentist{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Specialization: req.Specialization,
		Email:          req.Email,
		Phone:          req.Phone,
	}
	s.dentists[d.ID] = d

	copied := *d
	return &copied, nil
}

// treatments

type treatmentStore struct{ *Store }

func (s treatmentStore) List(ctx context.Context) ([]*entities.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Treatment, 0, len(s.treatments))
	for _, t := range s.treatments {
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s treatmentStore) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.treatments[id]
	if !ok {
		return nil, notFound("treatment", id)
	}
	copied := *t
	return &copied, nil
}

func (s treatmentStore) Create(ctx context.Context, req *entities.CreateTreatmentRequest) (*entities.Treatment, error) {
	v := validation{}
	v.require("name", req.Name, "Name is required")
	if req.Duration != nil && *req.Duration <= 0 {
		v["duration"] = append(v["duration"], "Duration must be positive")
	}
	if req.Price != nil && *req.Price < 0 {
		v["price"] = append(v["price"], "Price must not be negative")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &entities.Treatment{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
	}
	s.treatments[t.ID] = t

	copied := *t
	return &copied, nil
}

// stats

type statsStore struct{ *Store }

// Get computes the snapshot on every call
func (s statsStore) Get(ctx context.Context) (*entities.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := now.UTC().Format("2006-01-02")
	stats := &entities.Stats{
		TotalPatients:   len(s.patients),
		TotalDentists:   len(s.dentists),
		TotalTreatments: len(s.treatments),
		RecentActivity:  append([]entities.ActivityItem(nil), s.activity...),
	}
	for _, a := range s.appointments {
		if a.Status == entities.AppointmentStatusScheduled && a.IsUpcoming(now) {
			stats.TotalUpcomingAppointments++
		}
		if a.DateTime.UTC().Format("2006-01-02") == today {
			stats.TotalAppointmentsToday++
		}
	}
	return stats, nil
}
