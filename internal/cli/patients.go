package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

func (a *App) runPatients(ctx context.Context, args []string) error {
	return a.subcommand("patients", args, map[string]func([]string) error{
		"list": func(args []string) error {
			fs := a.flagSet("patients list", "[-q filter]")
			query := fs.String("q", "", "case-insensitive filter on name or address")
			if err := fs.Parse(args); err != nil {
				return ErrUsage
			}
			patients, err := a.Patients.List(ctx)
			if err != nil {
				return err
			}
			return a.printPatients(services.FilterPatients(patients, *query))
		},
		"get": func(args []string) error {
			id, err := a.oneArg(args, "patient id")
			if err != nil {
				return err
			}
			patient, err := a.Patients.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return a.printPatient(patient)
		},
		"search": func(args []string) error {
			query, err := a.oneArg(args, "search query")
			if err != nil {
				return err
			}
			patients, err := a.Patients.Search(ctx, query)
			if err != nil {
				return err
			}
			return a.printPatients(patients)
		},
		"add": func(args []string) error {
			fs := a.flagSet("patients add", "-name NAME -address ADDRESS [-photo FILE]")
			name := fs.String("name", "", "full name")
			address := fs.String("address", "", "postal address")
			photo := fs.String("photo", "", "path to a photo")
			if err := fs.Parse(args); err != nil {
				return ErrUsage
			}
			patient, err := a.intake.Register(ctx, services.PatientIntake{FullName: *name, Address: *address, PhotoPath: *photo})
			if err != nil {
				return err
			}
			return a.printPatient(patient)
		},
		"update": func(args []string) error {
			fs := a.flagSet("patients update", "ID [-name NAME] [-address ADDRESS] [-photo FILE]")
			name := fs.String("name", "", "new full name")
			address := fs.String("address", "", "new postal address")
			photo := fs.String("photo", "", "path to a new photo")
			if len(args) == 0 {
				fs.Usage()
				return ErrUsage
			}
			id := args[0]
			if err := fs.Parse(args[1:]); err != nil {
				return ErrUsage
			}

			req := &entities.UpdatePatientRequest{}
			fs.Visit(func(f *flag.Flag) {
				switch f.Name {
				case "name":
					req.FullName = name
				case "address":
					req.Address = address
				}
			})
			if *photo != "" {
				data, err := a.intake.PhotoFromFile(*photo)
				if err != nil {
					return err
				}
				req.Photo = data
			}
			if req.FullName == nil && req.Address == nil && req.Photo == nil {
				fmt.Fprintln(a.errOut, "nothing to update")
				return ErrUsage
			}

			patient, err := a.Patients.Update(ctx, id, req)
			if err != nil {
				return err
			}
			return a.printPatient(patient)
		},
		"delete": func(args []string) error {
			id, err := a.oneArg(args, "patient id")
			if err != nil {
				return err
			}
			if err := a.Patients.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Patient %s deleted\n", id)
			return nil
		},
	})
}
