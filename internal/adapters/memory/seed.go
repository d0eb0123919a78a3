package memory

import (
	"time"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func dayAt(base time.Time, days, hour, minute int) time.Time {
	d := base.UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

// Seed loads the demo practice. Appointment dates are relative to the store clock
// so the dashboard always has upcoming visits.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	for _, d := range []*entities.Dentist{
		{ID: "1", Name: "Dr. Sarah Johnson", Specialization: "General Dentistry"},
		{ID: "2", Name: "Dr. Michael Chen", Specialization: "Orthodontics"},
		{ID: "3", Name: "Dr. Emily Rodriguez", Specialization: "Oral Surgery"},
		{ID: "4", Name: "Dr. David Thompson", Specialization: "Periodontics"},
	} {
		s.dentists[d.ID] = d
	}

	for _, t := range []*entities.Treatment{
		{ID: "1", Name: "Regular Cleaning", Duration: intPtr(60), Price: floatPtr(120)},
		{ID: "2", Name: "Dental Filling", Duration: intPtr(90), Price: floatPtr(180)},
		{ID: "3", Name: "Root Canal Treatment", Duration: intPtr(120), Price: floatPtr(800)},
		{ID: "4", Name: "Teeth Whitening", Duration: intPtr(45), Price: floatPtr(300)},
	} {
		s.treatments[t.ID] = t
	}

	for _, p := range []*entities.Patient{
		{ID: "1", FullName: "John Smith", Address: "123 Main St, Anytown, ST 12345", CreatedAtUTC: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "2", FullName: "Maria Garcia", Address: "456 Oak Ave, Somewhere, ST 67890", CreatedAtUTC: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", FullName: "Robert Johnson", Address: "789 Pine Rd, Elsewhere, ST 13579", CreatedAtUTC: time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC)},
		{ID: "4", FullName: "Lisa Anderson", Address: "321 Elm St, Nowhere, ST 24680", CreatedAtUTC: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "5", FullName: "Michael Brown", Address: "654 Maple Dr, Anywhere, ST 97531", CreatedAtUTC: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
	} {
		s.patients[p.ID] = p
	}

	for _, a := range []*entities.Appointment{
		{ID: "1", PatientID: "1", DentistID: "1", TreatmentID: "1", DateTime: dayAt(now, 1, 9, 0), Status: entities.AppointmentStatusScheduled, Notes: "Regular checkup"},
		{ID: "2", PatientID: "2", DentistID: "2", TreatmentID: "2", DateTime: dayAt(now, 2, 14, 30), Status: entities.AppointmentStatusScheduled, Notes: "Cavity filling"},
		{ID: "3", PatientID: "3", DentistID: "3", TreatmentID: "3", DateTime: dayAt(now, 3, 10, 15), Status: entities.AppointmentStatusScheduled, Notes: "Root canal procedure"},
		{ID: "4", PatientID: "1", DentistID: "1", TreatmentID: "4", DateTime: dayAt(now, 8, 11, 0), Status: entities.AppointmentStatusScheduled, Notes: "Whitening treatment"},
		{ID: "5", PatientID: "1", DentistID: "1", TreatmentID: "1", DateTime: dayAt(now, -180, 9, 0), Status: entities.AppointmentStatusCompleted, Notes: "Regular checkup"},
	} {
		s.appointments[a.ID] = a
	}
}
