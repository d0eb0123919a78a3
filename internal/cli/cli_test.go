package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/adapters/credentials"
	"github.com/zatekoja/dentaldesk/internal/adapters/memory"
	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type harness struct {
	app    *App
	store  *memory.Store
	out    *bytes.Buffer
	errOut *bytes.Buffer
	in     *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := func() time.Time { return testNow }
	store := memory.NewStore(clock)
	store.Seed()

	h := &harness{store: store, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, in: &bytes.Buffer{}}
	h.app = NewApp(Deps{
		Patients:     store.Patients(),
		Appointments: store.Appointments(),
		Dentists:     store.Dentists(),
		Treatments:   store.Treatments(),
		Stats:        store.Stats(),
		Tokens:       credentials.NewFileStore(filepath.Join(t.TempDir(), "token")),
		Now:          clock,
	}, h.in, h.out, h.errOut)
	return h
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.errOut.Reset()
	return h.app.Run(context.Background(), args)
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.run(), ErrUsage)
	assert.Contains(t, h.errOut.String(), "appointments")

	assert.ErrorIs(t, h.run("bogus"), ErrUsage)
	assert.Contains(t, h.errOut.String(), `unknown command "bogus"`)

	assert.ErrorIs(t, h.run("patients"), ErrUsage)
	assert.Contains(t, h.errOut.String(), "add|delete|get|list|search|update")

	assert.ErrorIs(t, h.run("patients", "get"), ErrUsage)

	require.NoError(t, h.run("help"))
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("dashboard"))
	out := h.out.String()
	assert.Contains(t, out, "Patients (page 1 of 1)")
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "Michael Brown")

	require.NoError(t, h.run("dashboard", "-dentist", "2"))
	assert.Contains(t, h.out.String(), "Maria Garcia")
	assert.NotContains(t, h.out.String(), "John Smith")

	require.NoError(t, h.run("dashboard", "-q", "oak ave"))
	assert.Contains(t, h.out.String(), "Maria Garcia")
	assert.NotContains(t, h.out.String(), "Lisa Anderson")
}

func TestDashboard_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("-json", "dashboard", "-size", "2", "-page", "3"))

	var got struct {
		Stats      entities.Stats `json:"stats"`
		Page       int            `json:"page"`
		TotalPages int            `json:"totalPages"`
		Patients   []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	assert.Len(t, got.Patients, 1)
	assert.Equal(t, 5, got.Stats.TotalPatients)
}

func TestPatients_AddAndList(t *testing.T) {
	h := newHarness(t)

	err := h.run("patients", "add", "-name", "  ", "-address", "1 Harbour Rd")
	require.Error(t, err)
	assert.True(t, apierrors.IsValidation(err))
	assert.Contains(t, apierrors.FieldErrors(err), "fullName")

	require.NoError(t, h.run("patients", "add", "-name", "Ada Okafor", "-address", "1 Harbour Rd"))
	assert.Contains(t, h.out.String(), "Ada Okafor")

	require.NoError(t, h.run("patients", "list", "-q", "harbour"))
	assert.Contains(t, h.out.String(), "Ada Okafor")
	assert.NotContains(t, h.out.String(), "John Smith")
}

func TestPatients_GetUnknown(t *testing.T) {
	h := newHarness(t)

	err := h.run("patients", "get", "missing")
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeAPI, apierrors.KindOf(err))
	assert.Equal(t, 404, apierrors.StatusOf(err))
}

func TestAppointments_PatientDetail(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("appointments", "patient", "1"))
	out := h.out.String()
	assert.Contains(t, out, "John Smith (1)")
	assert.Contains(t, out, "Upcoming appointments (2)")
	assert.Contains(t, out, "Appointment history (1)")
	assert.Contains(t, out, "Dr. Sarah Johnson")
	assert.Contains(t, out, "Regular Cleaning")
}

func TestAppointments_StatusFlow(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("appointments", "cancel", "1"))
	assert.Contains(t, h.out.String(), "cancelled")

	err := h.run("appointments", "complete", "1")
	require.Error(t, err)

	require.NoError(t, h.run("appointments", "complete", "2"))
	assert.Contains(t, h.out.String(), "completed")

	got, err := h.store.Appointments().GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentStatusCompleted, got.Status)
}

func TestAppointments_ScheduleAndReschedule(t *testing.T) {
	h := newHarness(t)

	err := h.run("appointments", "schedule", "-patient", "3", "-dentist", "1")
	require.Error(t, err)
	fields := apierrors.FieldErrors(err)
	assert.Contains(t, fields, "treatmentId")
	assert.Contains(t, fields, "appointmentDateTime")

	require.NoError(t, h.run("-json", "appointments", "schedule",
		"-patient", "3", "-dentist", "1", "-treatment", "4", "-at", "2025-07-01T10:00:00Z", "-notes", "whitening"))
	var created entities.Appointment
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &created))
	assert.Equal(t, "3", created.PatientID)
	assert.True(t, created.DateTime.Equal(time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)))

	require.NoError(t, h.run("-json", "appointments", "reschedule", created.ID, "-at", "2025-07-02T11:30:00Z"))
	var moved entities.Appointment
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &moved))
	assert.True(t, moved.DateTime.Equal(time.Date(2025, 7, 2, 11, 30, 0, 0, time.UTC)))

	err = h.run("appointments", "reschedule", created.ID, "-at", "next tuesday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next tuesday")

	require.NoError(t, h.run("appointments", "delete", created.ID))
	assert.Contains(t, h.out.String(), "deleted")
}

func TestCatalog(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("dentists", "list"))
	assert.Contains(t, h.out.String(), "Orthodontics")

	require.NoError(t, h.run("treatments", "add", "-name", "Crown", "-duration", "75", "-price", "950"))
	assert.Contains(t, h.out.String(), "75 min")
	assert.Contains(t, h.out.String(), "950.00")

	require.NoError(t, h.run("stats"))
	lines := strings.Split(h.out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"5", "4", "5", "4", "0"}, strings.Fields(lines[1]))
}

func signed(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "dentaldesk-fakeapi",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "Not logged in")

	require.NoError(t, h.run("login", "-token", signed(t, "front-desk", testNow.Add(time.Hour))))
	assert.Contains(t, h.out.String(), "Token stored for front-desk")
	assert.Empty(t, h.errOut.String())

	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "front-desk")
	assert.Contains(t, h.out.String(), "dentaldesk-fakeapi")
	assert.NotContains(t, h.out.String(), "(expired)")

	require.NoError(t, h.run("logout"))
	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "Not logged in")
}

func TestLogin_ExpiredTokenWarns(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("login", "-token", signed(t, "night-shift", testNow.Add(-time.Hour))))
	assert.Contains(t, h.errOut.String(), "already expired")

	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "(expired)")
}

func TestLogin_Prompt(t *testing.T) {
	origTerminal, origRead := isTerminal, readSecret
	t.Cleanup(func() { isTerminal, readSecret = origTerminal, origRead })

	h := newHarness(t)

	isTerminal = func(int) bool { return true }
	readSecret = func(int) ([]byte, error) { return []byte("opaque-token\n"), nil }
	require.NoError(t, h.run("login"))
	assert.Contains(t, h.errOut.String(), "Access token:")
	assert.Contains(t, h.out.String(), "not a JWT")

	token, err := h.app.Tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)

	isTerminal = func(int) bool { return false }
	h.in.WriteString("piped-token\n")
	require.NoError(t, h.run("login"))
	token, err = h.app.Tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "piped-token", token)

	require.Error(t, h.run("login"))
}

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2025-07-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)))

	got, err = parseWhen("2025-07-01 10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())
	assert.Equal(t, 10, got.Hour())

	_, err = parseWhen("tomorrow")
	assert.Error(t, err)
}

func TestExitCodeAndReport(t *testing.T) {
	validation := apierrors.NewValidationError("Please fill in all required fields", map[string][]string{
		"fullName": {"Full name is required"},
		"address":  {"Address is required"},
	})
	notFound := apierrors.NewAPIError(404, "NOT_FOUND", "patient 9 not found", nil)
	exhausted := apierrors.NewNetworkError("max retries exceeded", apierrors.NewAPIError(503, "", "", nil))

	tests := []struct {
		name string
		err  error
		code int
		want []string
	}{
		{name: "nil", err: nil, code: ExitOK},
		{name: "usage", err: ErrUsage, code: ExitUsage},
		{name: "validation", err: validation, code: ExitValidation, want: []string{"  address: Address is required", "  fullName: Full name is required"}},
		{name: "api", err: notFound, code: ExitAPI, want: []string{"HTTP 404", "patient 9 not found"}},
		{name: "network", err: exhausted, code: ExitNetwork, want: []string{"Could not reach", "max retries exceeded"}},
		{name: "other", err: assert.AnError, code: ExitFailure, want: []string{"Error: "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))

			var buf bytes.Buffer
			Report(&buf, tt.err)
			if len(tt.want) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
