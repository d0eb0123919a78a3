// Package cli implements dentalctl, a front-desk command line over the
// dental practice API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zatekoja/dentaldesk/internal/adapters/api"
	"github.com/zatekoja/dentaldesk/internal/adapters/credentials"
	"github.com/zatekoja/dentaldesk/internal/application/loaders"
	"github.com/zatekoja/dentaldesk/internal/application/services"
	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/clients/dentalapi"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

// ErrUsage is returned for malformed command lines
var ErrUsage = errors.New("usage error")

// Deps are the collaborators App works against
type Deps struct {
	Patients     repositories.PatientRepository
	Appointments repositories.AppointmentRepository
	Dentists     repositories.DentistRepository
	Treatments   repositories.TreatmentRepository
	Stats        repositories.StatsRepository
	Tokens       providers.TokenStore
	Now          func() time.Time
}

// App dispatches dentalctl commands
type App struct {
	Deps
	dashboard    *services.DashboardService
	detail       *services.PatientDetailService
	intake       *services.PatientIntakeService
	appointments *services.AppointmentService

	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	json   bool
}

type command struct {
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"dashboard":    {"practice overview: stats and patients with scheduled visits", (*App).runDashboard},
		"patients":     {"list|get|search|add|update|delete", (*App).runPatients},
		"appointments": {"list|get|patient|upcoming|today|schedule|cancel|complete|reschedule|delete", (*App).runAppointments},
		"dentists":     {"list|get|add", (*App).runDentists},
		"treatments":   {"list|get|add", (*App).runTreatments},
		"stats":        {"dashboard counters", (*App).runStats},
		"login":        {"store an access token", (*App).runLogin},
		"logout":       {"forget the stored access token", (*App).runLogout},
		"whoami":       {"show the stored token's claims", (*App).runWhoami},
	}
}

// NewApp creates an App writing to out and errOut and reading prompts from in
func NewApp(deps Deps, in io.Reader, out, errOut io.Writer) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &App{
		Deps:         deps,
		dashboard:    services.NewDashboardService(deps.Patients, deps.Appointments, deps.Stats),
		detail:       services.NewPatientDetailService(deps.Patients, deps.Appointments, deps.Dentists, deps.Treatments, deps.Now),
		intake:       services.NewPatientIntakeService(deps.Patients),
		appointments: services.NewAppointmentService(deps.Appointments),
		out:          out,
		errOut:       errOut,
		in:           bufio.NewReader(in),
	}
}

// Bootstrap wires the HTTP-backed App from configuration. The returned
// cleanup releases the token store and flushes telemetry.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			observability.GetLogger().Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			closers = append(closers, func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					observability.GetLogger().Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			})
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	tokens, closeTokens, err := credentials.NewTokenStoreFromConfig(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := closeTokens(); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("Failed to close token store")
		}
	})

	client := dentalapi.NewClientFromConfig(&cfg.API,
		dentalapi.WithTokenProvider(credentials.NewExpiryWarningProvider(tokens, time.Now)),
		dentalapi.WithMetrics(metrics),
		dentalapi.WithDefaultHeader("User-Agent", "dentalctl/"+cfg.OTEL.ServiceVersion),
	)

	deps := Deps{
		Patients:     api.NewPatientAdapter(client),
		Appointments: api.NewAppointmentAdapter(client),
		Dentists:     api.NewDentistAdapter(client),
		Treatments:   api.NewTreatmentAdapter(client),
		Stats:        api.NewStatsAdapter(client),
		Tokens:       tokens,
	}

	app := NewApp(deps, os.Stdin, os.Stdout, os.Stderr)

	return app, cleanup, nil
}

// Run parses global flags and dispatches args[0]
func (a *App) Run(ctx context.Context, args []string) error {
	fs := a.flagSet("dentalctl", "[global flags] <command> [args]")
	asJSON := fs.Bool("json", false, "print JSON instead of tables")
	timeout := fs.Duration("timeout", 0, "per-attempt request timeout (0 keeps the configured value)")
	retries := fs.Int("retries", -1, "retry count (-1 keeps the configured value)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	a.json = *asJSON

	var opts []dentalapi.RequestOption
	if *timeout > 0 {
		opts = append(opts, dentalapi.WithTimeout(*timeout))
	}
	if *retries >= 0 {
		opts = append(opts, dentalapi.WithRetries(*retries))
	}
	if len(opts) > 0 {
		ctx = dentalapi.ContextWithOptions(ctx, opts...)
	}

	rest := fs.Args()
	if len(rest) == 0 || rest[0] == "help" {
		a.usage()
		if len(rest) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n", rest[0])
		a.usage()
		return ErrUsage
	}

	// one command is one unit of work: name lookups share a batch
	ctx = loaders.WithLoaders(ctx, loaders.NewLoaders(a.Dentists, a.Treatments))
	return cmd.run(a, ctx, rest[1:])
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "Usage: dentalctl [-json] [-timeout d] [-retries n] <command> [args]")
	fmt.Fprintln(a.errOut, "\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %-13s %s\n", name, commands[name].summary)
	}
}

func (a *App) flagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: %s %s\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// subcommand splits "<verb> args..." and reports a usage error for unknown verbs
func (a *App) subcommand(group string, args []string, verbs map[string]func([]string) error) error {
	if len(args) == 0 {
		fmt.Fprintf(a.errOut, "Usage: dentalctl %s <%s>\n", group, strings.Join(sortedKeys(verbs), "|"))
		return ErrUsage
	}
	run, ok := verbs[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown %s command %q\n", group, args[0])
		return ErrUsage
	}
	return run(args[1:])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// oneArg returns the single positional argument named what
func (a *App) oneArg(args []string, what string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintf(a.errOut, "expected exactly one %s\n", what)
		return "", ErrUsage
	}
	return args[0], nil
}
