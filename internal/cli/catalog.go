package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

func (a *App) runDashboard(ctx context.Context, args []string) error {
	fs := a.flagSet("dashboard", "[-page N] [-date YYYY-MM-DD] [-dentist ID] [-treatment ID] [-q filter]")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", services.PatientsPerPage, "patients per page")
	date := fs.String("date", "", "only patients with an appointment on this day")
	dentist := fs.String("dentist", "", "only patients booked with this dentist")
	treatment := fs.String("treatment", "", "only patients booked for this treatment")
	query := fs.String("q", "", "case-insensitive filter on name or address")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	dashboard, err := a.dashboard.Load(ctx, services.DashboardFilter{Date: *date, DentistID: *dentist, TreatmentID: *treatment})
	if err != nil {
		return err
	}

	if *query != "" {
		kept := dashboard.Patients[:0]
		for _, summary := range dashboard.Patients {
			if summary.Patient.MatchesQuery(*query) {
				kept = append(kept, summary)
			}
		}
		dashboard.Patients = kept
	}

	current := dashboard.Page(*page, *size)
	if a.json {
		return a.printJSON(struct {
			Stats      *entities.Stats           `json:"stats"`
			Page       int                       `json:"page"`
			TotalPages int                       `json:"totalPages"`
			Patients   []services.PatientSummary `json:"patients"`
		}{dashboard.Stats, *page, dashboard.TotalPages(*size), current})
	}

	if err := a.printStats(dashboard.Stats); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nPatients (page %d of %d)\n", *page, max(dashboard.TotalPages(*size), 1))
	if len(current) == 0 {
		fmt.Fprintln(a.out, "No patients found")
		return nil
	}
	rows := make([][]string, 0, len(current))
	for _, summary := range current {
		next := "-"
		if len(summary.Scheduled) > 0 {
			next = localTime(summary.Scheduled[0].DateTime)
		}
		rows = append(rows, []string{
			summary.Patient.ID,
			summary.Patient.FullName,
			summary.Patient.Address,
			strconv.Itoa(len(summary.Scheduled)),
			next,
		})
	}
	return a.table([]string{"ID", "NAME", "ADDRESS", "SCHEDULED", "NEXT VISIT"}, rows)
}

func (a *App) runStats(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	stats, err := a.Stats.Get(ctx)
	if err != nil {
		return err
	}
	return a.printStats(stats)
}

func (a *App) runDentists(ctx context.Context, args []string) error {
	return a.subcommand("dentists", args, map[string]func([]string) error{
		"list": func(args []string) error {
			dentists, err := a.Dentists.List(ctx)
			if err != nil {
				return err
			}
			return a.printDentists(dentists)
		},
		"get": func(args []string) error {
			id, err := a.oneArg(args, "dentist id")
			if err != nil {
				return err
			}
			dentist, err := a.Dentists.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return a.printDentists([]*entities.Dentist{dentist})
		},
		"add": func(args []string) error {
			fs := a.flagSet("dentists add", "-name NAME [-specialization S] [-email E] [-phone P]")
			req := &entities.CreateDentistRequest{}
			fs.StringVar(&req.Name, "name", "", "display name")
			fs.StringVar(&req.Specialization, "specialization", "", "specialization")
			fs.StringVar(&req.Email, "email", "", "email address")
			fs.StringVar(&req.Phone, "phone", "", "phone number")
			if err := fs.Parse(args); err != nil {
				return ErrUsage
			}
			dentist, err := a.Dentists.Create(ctx, req)
			if err != nil {
				return err
			}
			return a.printDentists([]*entities.Dentist{dentist})
		},
	})
}

func (a *App) runTreatments(ctx context.Context, args []string) error {
	return a.subcommand("treatments", args, map[string]func([]string) error{
		"list": func(args []string) error {
			treatments, err := a.Treatments.List(ctx)
			if err != nil {
				return err
			}
			return a.printTreatments(treatments)
		},
		"get": func(args []string) error {
			id, err := a.oneArg(args, "treatment id")
			if err != nil {
				return err
			}
			treatment, err := a.Treatments.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return a.printTreatments([]*entities.Treatment{treatment})
		},
		"add": func(args []string) error {
			fs := a.flagSet("treatments add", "-name NAME [-description D] [-duration MIN] [-price P]")
			req := &entities.CreateTreatmentRequest{}
			fs.StringVar(&req.Name, "name", "", "treatment name")
			fs.StringVar(&req.Description, "description", "", "description")
			duration := fs.Int("duration", 0, "duration in minutes")
			price := fs.Float64("price", -1, "price")
			if err := fs.Parse(args); err != nil {
				return ErrUsage
			}
			if *duration != 0 {
				req.Duration = duration
			}
			if *price >= 0 {
				req.Price = price
			}
			treatment, err := a.Treatments.Create(ctx, req)
			if err != nil {
				return err
			}
			return a.printTreatments([]*entities.Treatment{treatment})
		},
	})
}
