package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

const displayTime = "2006-01-02 15:04"

func (a *App) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes rows under header; every row must have len(header) cells
func (a *App) table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return tw.Flush()
}

func localTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(displayTime)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *App) printPatients(patients []*entities.Patient) error {
	if a.json {
		return a.printJSON(patients)
	}
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		photo := "no"
		if p.Photo != nil && p.Photo.Base64 != "" {
			photo = "yes"
		}
		rows = append(rows, []string{p.ID, p.FullName, p.Address, photo, p.CreatedAtUTC.Format("2006-01-02")})
	}
	return a.table([]string{"ID", "NAME", "ADDRESS", "PHOTO", "REGISTERED"}, rows)
}

func (a *App) printPatient(p *entities.Patient) error {
	if a.json {
		return a.printJSON(p)
	}
	return a.printPatients([]*entities.Patient{p})
}

func (a *App) printAppointments(appointments []*entities.Appointment) error {
	if a.json {
		return a.printJSON(appointments)
	}
	rows := make([][]string, 0, len(appointments))
	for _, ap := range appointments {
		rows = append(rows, []string{ap.ID, localTime(ap.DateTime), string(ap.Status), ap.PatientID, ap.DentistID, ap.TreatmentID, orDash(ap.Notes)})
	}
	return a.table([]string{"ID", "WHEN", "STATUS", "PATIENT", "DENTIST", "TREATMENT", "NOTES"}, rows)
}

func (a *App) printAppointment(ap *entities.Appointment) error {
	if a.json {
		return a.printJSON(ap)
	}
	return a.printAppointments([]*entities.Appointment{ap})
}

func (a *App) printDentists(dentists []*entities.Dentist) error {
	if a.json {
		return a.printJSON(dentists)
	}
	rows := make([][]string, 0, len(dentists))
	for _, d := range dentists {
		rows = append(rows, []string{d.ID, d.Name, orDash(d.Specialization), orDash(d.Email), orDash(d.Phone)})
	}
	return a.table([]string{"ID", "NAME", "SPECIALIZATION", "EMAIL", "PHONE"}, rows)
}

func (a *App) printTreatments(treatments []*entities.Treatment) error {
	if a.json {
		return a.printJSON(treatments)
	}
	rows := make([][]string, 0, len(treatments))
	for _, t := range treatments {
		duration, price := "-", "-"
		if t.Duration != nil {
			duration = strconv.Itoa(*t.Duration) + " min"
		}
		if t.Price != nil {
			price = strconv.FormatFloat(*t.Price, 'f', 2, 64)
		}
		rows = append(rows, []string{t.ID, t.Name, duration, price, orDash(t.Description)})
	}
	return a.table([]string{"ID", "NAME", "DURATION", "PRICE", "DESCRIPTION"}, rows)
}

func (a *App) printStats(s *entities.Stats) error {
	if a.json {
		return a.printJSON(s)
	}
	if err := a.table([]string{"PATIENTS", "DENTISTS", "TREATMENTS", "UPCOMING", "TODAY"}, [][]string{{
		strconv.Itoa(s.TotalPatients),
		strconv.Itoa(s.TotalDentists),
		strconv.Itoa(s.TotalTreatments),
		strconv.Itoa(s.TotalUpcomingAppointments),
		strconv.Itoa(s.TotalAppointmentsToday),
	}}); err != nil {
		return err
	}
	if len(s.RecentActivity) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "\nRecent activity:")
	rows := make([][]string, 0, len(s.RecentActivity))
	for _, item := range s.RecentActivity {
		rows = append(rows, []string{localTime(item.Timestamp), string(item.Type), item.Description})
	}
	return a.table([]string{"WHEN", "TYPE", "DESCRIPTION"}, rows)
}
