package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

var whenLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// parseWhen accepts RFC 3339 or a local "YYYY-MM-DD HH:MM"
func parseWhen(s string) (time.Time, error) {
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date and time (use RFC 3339 or \"YYYY-MM-DD HH:MM\")", s)
}

func (a *App) runAppointments(ctx context.Context, args []string) error {
	list := func(fetch func(context.Context) ([]*entities.Appointment, error)) func([]string) error {
		return func(args []string) error {
			if len(args) != 0 {
				return ErrUsage
			}
			appointments, err := fetch(ctx)
			if err != nil {
				return err
			}
			return a.printAppointments(appointments)
		}
	}

	status := func(change func(context.Context, string) (*entities.Appointment, error)) func([]string) error {
		return func(args []string) error {
			id, err := a.oneArg(args, "appointment id")
			if err != nil {
				return err
			}
			appointment, err := change(ctx, id)
			if err != nil {
				return err
			}
			return a.printAppointment(appointment)
		}
	}

	return a.subcommand("appointments", args, map[string]func([]string) error{
		"list":     list(a.Appointments.List),
		"upcoming": list(a.Appointments.ListUpcoming),
		"today":    list(a.Appointments.ListToday),
		"get": func(args []string) error {
			id, err := a.oneArg(args, "appointment id")
			if err != nil {
				return err
			}
			appointment, err := a.Appointments.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return a.printAppointment(appointment)
		},
		"patient": func(args []string) error {
			id, err := a.oneArg(args, "patient id")
			if err != nil {
				return err
			}
			detail, err := a.detail.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.printPatientDetail(detail)
		},
		"schedule": func(args []string) error {
			fs := a.flagSet("appointments schedule", "-patient ID -dentist ID -treatment ID -at WHEN [-notes TEXT]")
			patient := fs.String("patient", "", "patient id")
			dentist := fs.String("dentist", "", "dentist id")
			treatment := fs.String("treatment", "", "treatment id")
			at := fs.String("at", "", "date and time, RFC 3339 or \"YYYY-MM-DD HH:MM\" local")
			notes := fs.String("notes", "", "free-text notes")
			if err := fs.Parse(args); err != nil {
				return ErrUsage
			}

			req := &entities.CreateAppointmentRequest{
				PatientID:   *patient,
				DentistID:   *dentist,
				TreatmentID: *treatment,
				Notes:       *notes,
			}
			if *at != "" {
				when, err := parseWhen(*at)
				if err != nil {
					return err
				}
				req.DateTime = when
			}

			appointment, err := a.appointments.Schedule(ctx, req)
			if err != nil {
				return err
			}
			return a.printAppointment(appointment)
		},
		"reschedule": func(args []string) error {
			fs := a.flagSet("appointments reschedule", "ID -at WHEN")
			at := fs.String("at", "", "new date and time")
			if len(args) == 0 {
				fs.Usage()
				return ErrUsage
			}
			id := args[0]
			if err := fs.Parse(args[1:]); err != nil {
				return ErrUsage
			}
			when, err := parseWhen(*at)
			if err != nil {
				return err
			}
			appointment, err := a.appointments.Reschedule(ctx, id, when)
			if err != nil {
				return err
			}
			return a.printAppointment(appointment)
		},
		"cancel":   status(a.appointments.Cancel),
		"complete": status(a.appointments.Complete),
		"delete": func(args []string) error {
			id, err := a.oneArg(args, "appointment id")
			if err != nil {
				return err
			}
			if err := a.Appointments.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Appointment %s deleted\n", id)
			return nil
		},
	})
}

func (a *App) printPatientDetail(detail *services.PatientDetail) error {
	if a.json {
		return a.printJSON(detail)
	}

	fmt.Fprintf(a.out, "%s (%s)\n%s\nPatient since %s\n",
		detail.Patient.FullName, detail.Patient.ID, detail.Patient.Address, detail.Patient.CreatedAtUTC.Format("2006-01-02"))

	section := func(title, empty string, views []services.AppointmentView) error {
		fmt.Fprintf(a.out, "\n%s (%d)\n", title, len(views))
		if len(views) == 0 {
			fmt.Fprintln(a.out, empty)
			return nil
		}
		rows := make([][]string, 0, len(views))
		for _, v := range views {
			rows = append(rows, []string{v.ID, localTime(v.DateTime), string(v.Status), v.DentistName, v.TreatmentName, orDash(v.Notes)})
		}
		return a.table([]string{"ID", "WHEN", "STATUS", "DENTIST", "TREATMENT", "NOTES"}, rows)
	}

	if err := section("Upcoming appointments", "No upcoming appointments", detail.Upcoming); err != nil {
		return err
	}
	return section("Appointment history", "No appointment history", detail.Past)
}
